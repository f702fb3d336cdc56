package stats

import (
	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/services"
	"gorm.io/gorm"
)

// Service maintains lifetime counters on user profiles. Increments ride on
// the completion transition, which fires exactly once per order.
type Service struct {
	db *gorm.DB
}

// NewService returns a stats service on the given connection.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IncrementFreelancerEarnings adds a completed order's payout to the
// freelancer's lifetime earnings and bumps their completion count.
func (s *Service) IncrementFreelancerEarnings(freelancerID uint, amount int64) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", freelancerID).
		Updates(map[string]interface{}{
			"lifetime_earnings": gorm.Expr("lifetime_earnings + ?", amount),
			"orders_completed":  gorm.Expr("orders_completed + 1"),
		}).Error
}

// IncrementClientSpend adds a completed order's total charge to the client's
// lifetime spend.
func (s *Service) IncrementClientSpend(clientID uint, amount int64) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", clientID).
		Update("lifetime_spend", gorm.Expr("lifetime_spend + ?", amount)).Error
}

var _ services.StatsService = (*Service)(nil)
