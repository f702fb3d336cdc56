package controllers

import (
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// GetChatRoom returns the order's chat room state to one of its parties.
// GET /v1/orders/:id/chat
func GetChatRoom(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	// Access control rides on order visibility.
	if _, err := orderService.Get(actor, orderID); err != nil {
		respondServiceError(c, err)
		return
	}

	room, err := chatService.RoomForOrder(orderID)
	if err != nil {
		utils.NotFound(c, "No chat room for this order yet")
		return
	}

	utils.Success(c, "Chat room retrieved successfully", gin.H{"room": room})
}
