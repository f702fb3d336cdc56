package models

import (
	"gorm.io/gorm"
)

// Plan tier constants
const (
	PlanTierBasic    = "basic"
	PlanTierStandard = "standard"
	PlanTierPremium  = "premium"
)

// Service is a freelancer's listed offering. Each service carries up to three
// plan tiers; an order snapshots one tier at creation so later plan edits
// never change existing orders.
type Service struct {
	gorm.Model
	FreelancerID uint          `json:"freelancer_id" gorm:"index;not null"`
	Freelancer   User          `json:"-" gorm:"foreignKey:FreelancerID"`
	Title        string        `json:"title" gorm:"not null"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Active       bool          `json:"active" gorm:"default:true"`
	Plans        []ServicePlan `json:"plans" gorm:"foreignKey:ServiceID"`
}

// ServicePlan fixes the price, delivery window and revision quota for one
// tier of a service. Price is in paise.
type ServicePlan struct {
	gorm.Model
	ServiceID        uint   `json:"service_id" gorm:"index;not null"`
	Tier             string `json:"tier" gorm:"not null"`
	Price            int64  `json:"price" gorm:"not null"`
	DeliveryDays     int    `json:"delivery_days" gorm:"not null"`
	RevisionsAllowed int    `json:"revisions_allowed" gorm:"not null"`
	Description      string `json:"description"`
}

// PlanForTier returns the plan matching the requested tier, if listed.
func (s *Service) PlanForTier(tier string) *ServicePlan {
	for i := range s.Plans {
		if s.Plans[i].Tier == tier {
			return &s.Plans[i]
		}
	}
	return nil
}

// ValidPlanTier reports whether tier is one of the closed tier set.
func ValidPlanTier(tier string) bool {
	switch tier {
	case PlanTierBasic, PlanTierStandard, PlanTierPremium:
		return true
	}
	return false
}
