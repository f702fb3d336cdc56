package controllers

import (
	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/orders/:id/payment/initiate
func InitiateOrderPayment(c *gin.Context) {
	utils.LogInfo("InitiateOrderPayment called")
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
	if order.ClientID != actor.ID {
		utils.LogError("User ID: %d attempted to pay for order ID: %d they do not own", actor.ID, orderID)
		utils.Forbidden(c, "Only the client can pay for this order")
		return
	}
	if order.Status != models.OrderStatusPendingPayment {
		utils.LogError("Payment initiation rejected for order ID: %d, status: %s", orderID, order.Status)
		utils.Conflict(c, "The order is not awaiting payment", gin.H{"current_status": order.Status})
		return
	}

	gatewayOrderID, err := paymentGateway.CreateCaptureOrder(order.ID, order.TotalAmount)
	if err != nil {
		utils.LogError("Failed to create gateway order for order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to initiate payment", err.Error())
		return
	}
	utils.LogInfo("Gateway order %s created for order ID: %d", gatewayOrderID, orderID)

	utils.Success(c, "Payment initiated successfully", gin.H{
		"order": gin.H{
			"id":                order.ID,
			"razorpay_order_id": gatewayOrderID,
			"amount":            order.TotalAmount,
			"amount_display":    pricing.FormatINR(order.TotalAmount),
		},
		"key": paymentGateway.KeyID(),
	})
}

// POST /v1/orders/:id/payment/verify
func VerifyOrderPayment(c *gin.Context) {
	utils.LogInfo("VerifyOrderPayment called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request for order ID: %d: %v", orderID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	order, err := orderService.Get(actor, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.ClientID != actor.ID {
		utils.Forbidden(c, "Only the client can pay for this order")
		return
	}

	if !paymentGateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		utils.LogError("Payment verification failed for order ID: %d, user ID: %d", orderID, actor.ID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}
	utils.LogInfo("Payment signature verified for order ID: %d", orderID)

	order, err = orderService.MarkPaymentCaptured(orderID, req.RazorpayOrderID, req.RazorpayPaymentID)
	if err != nil {
		utils.LogError("Failed to record captured payment for order ID: %d: %v", orderID, err)
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Payment confirmed. The freelancer can now start working.", gin.H{
		"order":         order,
		"total_display": pricing.FormatINR(order.TotalAmount),
		"due_date":      order.DueDate,
	})
}
