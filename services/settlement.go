package services

import (
	"fmt"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/google/uuid"
)

// SettlementEngine moves the freelancer's payout after an order completes.
// It first tries the automatic gateway transfer; any failure degrades to the
// manual-payout queue instead of rolling anything back. The completed status
// of the triggering order is never touched here.
type SettlementEngine struct {
	payments      PaymentRepository
	payoutDetails PayoutDetailsRepository
	gateway       PaymentGateway
	notifier      Notifier
	now           func() time.Time
}

// NewSettlementEngine wires the settlement engine.
func NewSettlementEngine(payments PaymentRepository, payoutDetails PayoutDetailsRepository, gateway PaymentGateway, notifier Notifier) *SettlementEngine {
	return &SettlementEngine{
		payments:      payments,
		payoutDetails: payoutDetails,
		gateway:       gateway,
		notifier:      notifier,
		now:           time.Now,
	}
}

// ManualPayoutEntry is one row of the operator queue: everything needed to
// execute the transfer unassisted.
type ManualPayoutEntry struct {
	OrderID         uint                            `json:"order_id"`
	PaymentID       uint                            `json:"payment_id"`
	FreelancerID    uint                            `json:"freelancer_id"`
	FreelancerName  string                          `json:"freelancer_name"`
	FreelancerEmail string                          `json:"freelancer_email"`
	PayoutAmount    int64                           `json:"payout_amount"`
	PayoutDisplay   string                          `json:"payout_display"`
	FailureReason   string                          `json:"failure_reason"`
	PayoutDetails   *models.FreelancerPayoutDetails `json:"payout_details"`
	QueuedAt        time.Time                       `json:"queued_at"`
}

// Settle attempts the automatic payout for a completed order. Success marks
// the payment transferred with the gateway's transfer id; failure or an
// unusable recipient queues the payment for manual transfer. Already
// transferred payments are a no-op.
func (e *SettlementEngine) Settle(order *models.Order) error {
	payment, err := e.payments.FindByOrderID(order.ID)
	if err != nil {
		return &SettlementError{OrderID: order.ID, Err: err}
	}
	if payment.TransferredToFreelancer {
		utils.LogDebug("Order %d: payout already transferred, nothing to settle", order.ID)
		return nil
	}

	payout := pricing.FreelancerPayout(order.Price)
	details, err := e.payoutDetails.FindByUserID(order.FreelancerID)
	if err != nil {
		return e.queueManual(payment, order, fmt.Sprintf("payout details lookup failed: %v", err))
	}
	if !details.HasLinkedAccount() {
		return e.queueManual(payment, order, "freelancer has no linked gateway account")
	}

	reference := fmt.Sprintf("payout-order-%d", order.ID)
	transferID, err := e.gateway.Transfer(details.RazorpayAccountID, payout, reference)
	if err != nil {
		return e.queueManual(payment, order, fmt.Sprintf("gateway transfer failed: %v", err))
	}

	transferredAt := e.now()
	payment.TransferredToFreelancer = true
	payment.TransferPendingManual = false
	payment.TransferFailureReason = ""
	payment.ExternalTransferID = &transferID
	payment.TransferredAt = &transferredAt
	if err := e.payments.Update(payment); err != nil {
		return &SettlementError{OrderID: order.ID, Err: err}
	}
	utils.LogInfo("Order %d: payout %s transferred automatically, transfer id %s",
		order.ID, pricing.FormatINR(payout), transferID)

	if err := e.notifier.Notify(order.FreelancerID, models.NotifyPayoutTransferred, order.ID,
		"Your payout of "+pricing.FormatINR(payout)+" has been transferred."); err != nil {
		utils.LogError("Order %d: payout notification failed: %v", order.ID, err)
	}
	return nil
}

// queueManual flags the payment for the operator queue. The order stays
// completed; the returned SettlementError is an operational alert, not a
// request failure.
func (e *SettlementEngine) queueManual(payment *models.Payment, order *models.Order, reason string) error {
	payment.TransferPendingManual = true
	payment.TransferFailureReason = reason
	if err := e.payments.Update(payment); err != nil {
		// Recorded nowhere is the one unacceptable outcome; surface loudly.
		utils.LogError("Order %d: FAILED to queue manual payout (%s): %v", order.ID, reason, err)
		return &SettlementError{OrderID: order.ID, Err: fmt.Errorf("queueing manual payout after %q: %w", reason, err)}
	}
	utils.LogError("Order %d: payout queued for manual transfer: %s", order.ID, reason)
	return &SettlementError{OrderID: order.ID, Err: fmt.Errorf("queued for manual transfer: %s", reason)}
}

// PendingManualPayouts lists every payment awaiting a manual transfer with
// the recipient details an operator needs to act.
func (e *SettlementEngine) PendingManualPayouts() ([]ManualPayoutEntry, error) {
	payments, err := e.payments.PendingManualTransfers()
	if err != nil {
		return nil, err
	}
	entries := make([]ManualPayoutEntry, 0, len(payments))
	for _, payment := range payments {
		order := payment.Order
		// The payout is derived from the money actually captured, inverted
		// back to the service price. The order snapshot should agree; if it
		// does not, the captured amount wins and the divergence is flagged.
		payout := pricing.FreelancerPayout(order.Price)
		if price, invErr := pricing.PriceFromTotal(payment.Amount); invErr != nil {
			utils.LogError("Order %d: captured total %s does not invert to a valid price: %v",
				order.ID, pricing.FormatINR(payment.Amount), invErr)
		} else if price != order.Price {
			utils.LogError("Order %d: captured total implies price %s but the order snapshot says %s",
				order.ID, pricing.FormatINR(price), pricing.FormatINR(order.Price))
			payout = pricing.FreelancerPayout(price)
		}
		details, err := e.payoutDetails.FindByUserID(order.FreelancerID)
		if err != nil {
			utils.LogError("Order %d: payout details lookup failed for queue listing: %v", order.ID, err)
		}
		entries = append(entries, ManualPayoutEntry{
			OrderID:         order.ID,
			PaymentID:       payment.ID,
			FreelancerID:    order.FreelancerID,
			FreelancerName:  order.Freelancer.Username,
			FreelancerEmail: order.Freelancer.Email,
			PayoutAmount:    payout,
			PayoutDisplay:   pricing.FormatINR(payout),
			FailureReason:   payment.TransferFailureReason,
			PayoutDetails:   details,
			QueuedAt:        payment.UpdatedAt,
		})
	}
	return entries, nil
}

// ConfirmManualPayout marks a queued payment as transferred by hand. The
// operation is idempotent: confirming an already-transferred payment returns
// it unchanged so a UI double-submit is harmless. It refuses to confirm when
// the freelancer has no recipient details on file.
func (e *SettlementEngine) ConfirmManualPayout(actor Actor, orderID uint, externalRef string) (*models.Payment, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if actor.Role != RoleOperator {
		return nil, ErrUnauthorized
	}

	payment, err := e.payments.FindByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment.TransferredToFreelancer {
		utils.LogInfo("Order %d: manual payout confirmation repeated, already transferred", orderID)
		return payment, nil
	}
	if !payment.TransferPendingManual {
		return nil, &ValidationError{Reason: ReasonBadInput, Message: "payment is not awaiting a manual transfer"}
	}

	details, err := e.payoutDetails.FindByUserID(payment.Order.FreelancerID)
	if err != nil {
		return nil, err
	}
	if !details.HasManualRecipient() {
		return nil, &ValidationError{
			Reason:  ReasonMissingPayoutDetails,
			Message: "freelancer has no bank or UPI details on file; the transfer cannot have been executed",
		}
	}

	reference := externalRef
	if reference == "" {
		reference = "manual-" + uuid.New().String()
	}
	transferredAt := e.now()
	payment.TransferredToFreelancer = true
	payment.TransferPendingManual = false
	payment.TransferFailureReason = ""
	payment.ExternalTransferID = &reference
	payment.TransferredAt = &transferredAt
	if err := e.payments.Update(payment); err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d: manual payout confirmed by operator %d, reference %s", orderID, actor.ID, reference)

	if err := e.notifier.Notify(payment.Order.FreelancerID, models.NotifyPayoutTransferred, orderID,
		"Your payout has been transferred."); err != nil {
		utils.LogError("Order %d: payout notification failed: %v", orderID, err)
	}
	return payment, nil
}
