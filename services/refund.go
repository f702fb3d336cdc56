package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
)

// RefundEngine returns captured money to the client when an order ends in
// decline or cancellation. Declines refund the full captured amount with no
// fee; cancellations after capture withhold the processing fee, and the GST
// collected at capture is never refunded. A gateway failure is recorded on
// the payment and surfaced as an alert; it never blocks the order's terminal
// status.
type RefundEngine struct {
	payments PaymentRepository
	gateway  PaymentGateway
	now      func() time.Time
}

// NewRefundEngine wires the refund engine.
func NewRefundEngine(payments PaymentRepository, gateway PaymentGateway) *RefundEngine {
	return &RefundEngine{payments: payments, gateway: gateway, now: time.Now}
}

// Refund issues the refund owed for a declined or cancelled order. When no
// payment was ever captured there is nothing to return and the call is a
// successful no-op against the gateway. Already-refunded payments are
// likewise a no-op.
func (e *RefundEngine) Refund(order *models.Order, full bool) error {
	payment, err := e.payments.FindByOrderID(order.ID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			utils.LogInfo("Order %d: no payment captured, refund is a no-op", order.ID)
			return nil
		}
		return &RefundError{OrderID: order.ID, Err: err}
	}
	if payment.Status == models.PaymentStatusRefunded {
		utils.LogDebug("Order %d: payment already refunded", order.ID)
		return nil
	}
	if payment.Status != models.PaymentStatusCaptured {
		utils.LogInfo("Order %d: payment status %s, nothing to refund", order.ID, payment.Status)
		return nil
	}

	amount := pricing.RefundAmount(order.Price)
	if full {
		amount = payment.Amount
	}

	refundID, err := e.gateway.Refund(payment.RazorpayPaymentID, amount, fmt.Sprintf("refund-order-%d", order.ID))
	if err != nil {
		payment.RefundStatus = models.RefundStatusFailed
		payment.RefundFailureReason = err.Error()
		payment.RefundAmount = amount
		if updateErr := e.payments.Update(payment); updateErr != nil {
			utils.LogError("Order %d: FAILED to record refund failure: %v", order.ID, updateErr)
		}
		utils.LogError("Order %d: gateway refund of %s failed: %v", order.ID, pricing.FormatINR(amount), err)
		return &RefundError{OrderID: order.ID, Err: err}
	}

	refundedAt := e.now()
	payment.Status = models.PaymentStatusRefunded
	payment.RefundStatus = models.RefundStatusCompleted
	payment.RefundAmount = amount
	payment.RefundReference = refundID
	payment.RefundFailureReason = ""
	payment.RefundedAt = &refundedAt
	if err := e.payments.Update(payment); err != nil {
		utils.LogError("Order %d: refund succeeded at gateway (%s) but recording failed: %v", order.ID, refundID, err)
		return &RefundError{OrderID: order.ID, Err: err}
	}
	utils.LogInfo("Order %d: refunded %s, reference %s", order.ID, pricing.FormatINR(amount), refundID)
	return nil
}

// FailedRefunds lists payments whose refund attempt failed, for the operator
// queue. Nothing here is ever silently discarded; retry is re-running the
// triggering engine or acting manually.
func (e *RefundEngine) FailedRefunds() ([]models.Payment, error) {
	return e.payments.FailedRefunds()
}
