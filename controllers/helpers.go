package controllers

import (
	"errors"
	"strconv"

	"github.com/Aravind-813/GigSphere/services"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// currentActor pulls the acting party placed in context by the auth
// middleware.
func currentActor(c *gin.Context) (services.Actor, bool) {
	actorVal, exists := c.Get("actor")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return services.Actor{}, false
	}
	return actorVal.(services.Actor), true
}

// orderIDParam parses the :id path parameter.
func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid order id", nil)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service layer errors onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	var invalidState *services.InvalidStateError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		utils.Unauthorized(c, "Please login for access")
	case errors.Is(err, services.ErrUnauthorized):
		utils.Forbidden(c, "You are not permitted to perform this action on the order")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFound(c, "Order not found")
	case errors.Is(err, services.ErrPaymentNotFound):
		utils.NotFound(c, "No payment recorded for this order")
	case errors.As(err, &invalidState):
		utils.Conflict(c, "The order is not in a state that allows this action", gin.H{
			"current_status": invalidState.Current,
			"required":       invalidState.Expected,
		})
	case errors.As(err, &validation):
		utils.BadRequest(c, validation.Message, gin.H{"reason": validation.Reason})
	default:
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.InternalServerError(c, "Something went wrong", err.Error())
	}
}
