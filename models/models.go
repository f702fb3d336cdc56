package models

import (
	"time"

	"gorm.io/gorm"
)

// Role constants for marketplace users
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// User represents a marketplace user. A user signs up as either a client or a
// freelancer; the role decides which order operations they may perform.
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	Role         string    `gorm:"not null;default:client" json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"unique;default:null" json:"google_id"`

	// Lifetime counters, incremented when an order completes. Paise.
	LifetimeEarnings int64 `json:"lifetime_earnings" gorm:"default:0"`
	LifetimeSpend    int64 `json:"lifetime_spend" gorm:"default:0"`
	OrdersCompleted  int   `json:"orders_completed" gorm:"default:0"`
}

// Admin represents a platform operator. Operators work the manual payout
// queue and the failed refund list; they never act as a party to an order.
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
