package controllers

import (
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/services"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/orders
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		ServiceID        uint     `json:"service_id" binding:"required"`
		PlanTier         string   `json:"plan_tier" binding:"required"`
		Requirements     string   `json:"requirements"`
		RequirementFiles []string `json:"requirement_files"`
		RequirementLinks []string `json:"requirement_links"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create order request from user ID: %d: %v", actor.ID, err)
		utils.BadRequest(c, "Invalid request. service_id and plan_tier are required", err.Error())
		return
	}

	order, err := orderService.Create(actor, services.CreateOrderInput{
		ServiceID:        req.ServiceID,
		PlanTier:         req.PlanTier,
		Requirements:     utils.SanitizeString(req.Requirements),
		RequirementFiles: req.RequirementFiles,
		RequirementLinks: req.RequirementLinks,
	})
	if err != nil {
		utils.LogError("Failed to create order for user ID: %d: %v", actor.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Order placed. The freelancer has 48 hours to respond.", gin.H{
		"order":         order,
		"total_display": pricing.FormatINR(order.TotalAmount),
	})
}

// POST /v1/orders/:id/accept
func AcceptOrder(c *gin.Context) {
	utils.LogInfo("AcceptOrder called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.Accept(actor, orderID)
	if err != nil {
		utils.LogError("Failed to accept order ID: %d by user ID: %d: %v", orderID, actor.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Order accepted. The client has 48 hours to pay.", gin.H{"order": order})
}

// POST /v1/orders/:id/decline
func DeclineOrder(c *gin.Context) {
	utils.LogInfo("DeclineOrder called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.Decline(actor, orderID)
	if err != nil {
		utils.LogError("Failed to decline order ID: %d by user ID: %d: %v", orderID, actor.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Order declined.", gin.H{"order": order})
}

// POST /v1/orders/:id/start
func StartWork(c *gin.Context) {
	utils.LogInfo("StartWork called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.StartWork(actor, orderID)
	if err != nil {
		utils.LogError("Failed to start work on order ID: %d by user ID: %d: %v", orderID, actor.ID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Work started.", gin.H{"order": order})
}

// POST /v1/orders/:id/deliver
func SubmitDelivery(c *gin.Context) {
	utils.LogInfo("SubmitDelivery called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
		Links   []string `json:"links"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid delivery request for order ID: %d: %v", orderID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	order, err := orderService.SubmitDelivery(actor, orderID, services.DeliveryInput{
		Message: utils.SanitizeString(req.Message),
		Files:   req.Files,
		Links:   req.Links,
	})
	if err != nil {
		utils.LogError("Failed to submit delivery for order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Delivery submitted. The client can now review it.", gin.H{"order": order})
}

// POST /v1/orders/:id/revision
func RequestRevision(c *gin.Context) {
	utils.LogInfo("RequestRevision called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid revision request for order ID: %d: %v", orderID, err)
		utils.BadRequest(c, "Invalid request. message is required", err.Error())
		return
	}

	order, err := orderService.RequestRevision(actor, orderID, utils.SanitizeString(req.Message))
	if err != nil {
		utils.LogError("Failed to request revision for order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Revision requested.", gin.H{
		"order":             order,
		"revisions_used":    order.RevisionsUsed,
		"revisions_allowed": order.RevisionsAllowed,
	})
}

// POST /v1/orders/:id/complete
func CompleteOrder(c *gin.Context) {
	utils.LogInfo("CompleteOrder called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.Complete(actor, orderID)
	if err != nil {
		utils.LogError("Failed to complete order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Order completed. The freelancer's payout is being processed.", gin.H{"order": order})
}

// POST /v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	order, err := orderService.Cancel(actor, orderID, utils.SanitizeString(req.Reason))
	if err != nil {
		utils.LogError("Failed to cancel order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Order cancelled.", gin.H{"order": order})
}

// GET /v1/orders/:id
func GetOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := orderService.Get(actor, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	amounts := gin.H{
		"price":      pricing.FormatINR(order.Price),
		"commission": pricing.FormatINR(order.PlatformCommission),
		"gst":        pricing.FormatINR(order.GSTAmount),
	}
	// Each party sees the figure that concerns them: the client what they
	// paid, the freelancer what they will receive.
	if actor.ID == order.FreelancerID {
		amounts["payout"] = pricing.FormatINR(pricing.FreelancerPayout(order.Price))
	} else {
		amounts["total"] = pricing.FormatINR(order.TotalAmount)
	}

	utils.Success(c, "Order retrieved successfully", gin.H{
		"order":   order,
		"amounts": amounts,
	})
}

// GET /v1/orders
func ListOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	orders, err := orderService.ListForActor(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GET /v1/orders/:id/deliveries
func GetDeliveryHistory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	entries, err := orderService.DeliveryHistory(actor, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Delivery history retrieved successfully", gin.H{
		"deliveries": entries,
		"count":      len(entries),
	})
}
