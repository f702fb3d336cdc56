package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the request-fatal part of the taxonomy.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not permitted to perform this action on the order")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("no payment recorded for order")
)

// Validation reason codes carried by ValidationError.
const (
	ReasonEmptyDelivery         = "empty_delivery"
	ReasonRevisionQuotaExceeded = "revision_quota_exceeded"
	ReasonMissingPayoutDetails  = "missing_payout_details"
	ReasonInvalidPlan           = "invalid_plan"
	ReasonBadInput              = "bad_input"
)

// InvalidStateError is returned when an operation's status guard fails,
// usually because the UI is stale or the other party raced the caller. It
// names the order's actual status so the UI can refresh and retry.
type InvalidStateError struct {
	Current  string
	Expected []string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order is %s, operation requires %s", e.Current, strings.Join(e.Expected, " or "))
}

// ValidationError is a user-correctable rejection of a specific call.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SettlementError records a failed or degraded payout attempt. It is never
// fatal to the completion that triggered it; the payment row carries the
// pending-manual flag and the error only surfaces as an operational alert.
type SettlementError struct {
	OrderID uint
	Err     error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement for order %d: %v", e.OrderID, e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

// RefundError records a failed refund attempt, recorded on the payment and
// retried out of band. Like SettlementError it never blocks the lifecycle
// transition that triggered it.
type RefundError struct {
	OrderID uint
	Err     error
}

func (e *RefundError) Error() string {
	return fmt.Sprintf("refund for order %d: %v", e.OrderID, e.Err)
}

func (e *RefundError) Unwrap() error {
	return e.Err
}
