package models

import (
	"time"
)

// Notification event types emitted by order transitions.
const (
	NotifyOrderCreated      = "order_created"
	NotifyOrderAccepted     = "order_accepted"
	NotifyOrderDeclined     = "order_declined"
	NotifyPaymentCaptured   = "payment_captured"
	NotifyWorkStarted       = "work_started"
	NotifyDeliverySubmitted = "delivery_submitted"
	NotifyRevisionRequested = "revision_requested"
	NotifyOrderCompleted    = "order_completed"
	NotifyOrderCancelled    = "order_cancelled"
	NotifyPayoutTransferred = "payout_transferred"
)

// Notification is one fire-and-forget event for a user. Delivery by email is
// best effort; the row is the durable record.
type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	EventType string     `json:"event_type" gorm:"not null"`
	OrderID   uint       `json:"order_id" gorm:"index"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
