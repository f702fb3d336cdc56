package repository

import (
	"errors"

	"github.com/Aravind-813/GigSphere/models"
	"gorm.io/gorm"
)

// PayoutDetailsRepository stores freelancer settlement recipients.
type PayoutDetailsRepository struct {
	db *gorm.DB
}

// NewPayoutDetailsRepository returns a payout-details repository on the given
// connection.
func NewPayoutDetailsRepository(db *gorm.DB) *PayoutDetailsRepository {
	return &PayoutDetailsRepository{db: db}
}

// FindByUserID returns the freelancer's payout details, or (nil, nil) when
// none are on file yet.
func (r *PayoutDetailsRepository) FindByUserID(userID uint) (*models.FreelancerPayoutDetails, error) {
	var details models.FreelancerPayoutDetails
	err := r.db.Where("user_id = ?", userID).First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &details, nil
}

// Upsert creates or replaces the freelancer's payout details.
func (r *PayoutDetailsRepository) Upsert(details *models.FreelancerPayoutDetails) error {
	existing, err := r.FindByUserID(details.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		details.ID = existing.ID
		details.CreatedAt = existing.CreatedAt
	}
	return r.db.Save(details).Error
}
