package models

import (
	"time"
)

// Delivery history status constants
const (
	DeliveryStatusDelivered         = "delivered"
	DeliveryStatusRevisionRequested = "revision_requested"
	DeliveryStatusApproved          = "approved"
)

// DeliveryHistory is the append-only record of delivery submissions and
// revision requests for an order. Versions are contiguous starting at 1 and
// the highest version always carries the order's current delivery payload.
type DeliveryHistory struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"order_id" gorm:"index;not null"`
	Version int  `json:"version" gorm:"not null"`

	Status          string   `json:"status" gorm:"not null"`
	Message         string   `json:"message"`
	DeliveryFiles   []string `json:"delivery_files" gorm:"serializer:json"`
	DeliveryLinks   []string `json:"delivery_links" gorm:"serializer:json"`
	RevisionMessage string   `json:"revision_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
