package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusCaptured = "captured"
	PaymentStatusRefunded = "refunded"
	PaymentStatusFailed   = "failed"
)

// Refund status constants. A failed refund stays visible to operators until
// retried.
const (
	RefundStatusNone      = ""
	RefundStatusPending   = "pending"
	RefundStatusCompleted = "completed"
	RefundStatusFailed    = "failed"
)

// Payment is the 1:1 financial record for an order, created when the gateway
// captures the client's money. Amounts are in paise.
//
// TransferredToFreelancer and TransferPendingManual are never both true, and
// once TransferredToFreelancer is set it never reverts.
type Payment struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	OrderID uint  `json:"order_id" gorm:"uniqueIndex;not null"`
	Order   Order `json:"-" gorm:"foreignKey:OrderID"`

	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`

	Amount      int64  `json:"amount"` // equals the order's TotalAmount at capture
	PlatformFee int64  `json:"platform_fee"`
	GSTAmount   int64  `json:"gst_amount"`
	Status      string `json:"status"`

	TransferredToFreelancer bool       `json:"transferred_to_freelancer" gorm:"default:false"`
	TransferPendingManual   bool       `json:"transfer_pending_manual" gorm:"default:false"`
	TransferFailureReason   string     `json:"transfer_failure_reason,omitempty"`
	ExternalTransferID      *string    `json:"external_transfer_id,omitempty"`
	TransferredAt           *time.Time `json:"transferred_at,omitempty"`

	RefundStatus        string     `json:"refund_status,omitempty"`
	RefundAmount        int64      `json:"refund_amount,omitempty"`
	RefundReference     string     `json:"refund_reference,omitempty"`
	RefundFailureReason string     `json:"refund_failure_reason,omitempty"`
	RefundedAt          *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
