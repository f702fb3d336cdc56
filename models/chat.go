package models

import (
	"time"
)

// ChatRoom is the conversation opened between the two parties when payment is
// captured. Message transport lives outside this service; rooms here only
// track existence and the scheduled closure set at completion.
type ChatRoom struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OrderID      uint       `json:"order_id" gorm:"uniqueIndex;not null"`
	ClientID     uint       `json:"client_id" gorm:"index;not null"`
	FreelancerID uint       `json:"freelancer_id" gorm:"index;not null"`
	Active       bool       `json:"active" gorm:"default:true"`
	ClosesAt     *time.Time `json:"closes_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
