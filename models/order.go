package models

import (
	"time"
)

// Order status constants. Status is the single source of truth for which
// actions are currently legal on an order.
const (
	OrderStatusPendingAcceptance = "pending_acceptance"
	OrderStatusPendingPayment    = "pending_payment"
	OrderStatusAccepted          = "accepted"
	OrderStatusInProgress        = "in_progress"
	OrderStatusDelivered         = "delivered"
	OrderStatusRevisionRequested = "revision_requested"
	OrderStatusCompleted         = "completed"
	OrderStatusDeclined          = "declined"
	OrderStatusCancelled         = "cancelled"
)

// Deadline windows granted on creation and acceptance.
const (
	AcceptWindow  = 48 * time.Hour
	PaymentWindow = 48 * time.Hour
)

// Order is a purchase of one service plan by a client from a freelancer.
// The financial snapshot (Price, PlatformCommission, GSTAmount, TotalAmount)
// is computed once at creation and immutable afterwards.
type Order struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ClientID     uint `json:"client_id" gorm:"index;not null"`
	Client       User `json:"-" gorm:"foreignKey:ClientID"`
	FreelancerID uint `json:"freelancer_id" gorm:"index;not null"`
	Freelancer   User `json:"-" gorm:"foreignKey:FreelancerID"`
	ServiceID    uint `json:"service_id" gorm:"index;not null"`

	// Plan snapshot, copied from the selected service plan at creation.
	PlanTier         string `json:"plan_tier"`
	ServiceTitle     string `json:"service_title"`
	DeliveryDays     int    `json:"delivery_days"`
	RevisionsAllowed int    `json:"revisions_allowed"`
	RevisionsUsed    int    `json:"revisions_used" gorm:"default:0"`

	Status string `json:"status" gorm:"index;not null"`

	// Financial snapshot, paise.
	Price              int64 `json:"price"`
	PlatformCommission int64 `json:"platform_commission"`
	GSTAmount          int64 `json:"gst_amount"`
	TotalAmount        int64 `json:"total_amount"`

	// Client brief, immutable after creation.
	Requirements     string   `json:"requirements"`
	RequirementFiles []string `json:"requirement_files" gorm:"serializer:json"`
	RequirementLinks []string `json:"requirement_links" gorm:"serializer:json"`

	// Most recent delivery payload; history is kept in DeliveryHistory rows.
	DeliveryFiles   []string `json:"delivery_files" gorm:"serializer:json"`
	DeliveryLinks   []string `json:"delivery_links" gorm:"serializer:json"`
	DeliveryMessage string   `json:"delivery_message"`

	CancellationReason string `json:"cancellation_reason,omitempty"`

	// Deadlines are passive data consulted by an external scheduler; the core
	// sets them but never polls them.
	AcceptDeadline  *time.Time `json:"accept_deadline,omitempty"`
	PaymentDeadline *time.Time `json:"payment_deadline,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CancellableStatuses returns the statuses from which a client may still cancel.
func CancellableStatuses() []string {
	return []string{
		OrderStatusPendingAcceptance,
		OrderStatusPendingPayment,
		OrderStatusAccepted,
		OrderStatusInProgress,
	}
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderStatusCompleted, OrderStatusDeclined, OrderStatusCancelled:
		return true
	}
	return false
}
