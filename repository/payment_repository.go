package repository

import (
	"errors"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/services"
	"gorm.io/gorm"
)

// PaymentRepository persists the 1:1 payment record per order.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository returns a payment repository on the given connection.
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the capture record. The unique index on order_id keeps the
// relationship 1:1 even if the payment callback is replayed.
func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindByOrderID loads the payment for an order with its order attached.
func (r *PaymentRepository) FindByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Order").Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Update persists engine-side changes to a payment record.
func (r *PaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// PendingManualTransfers lists payments queued for a manual payout, oldest
// first, with the order and its freelancer attached for the operator view.
func (r *PaymentRepository) PendingManualTransfers() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Order").Preload("Order.Freelancer").
		Where("transfer_pending_manual = ?", true).
		Order("updated_at ASC").
		Find(&payments).Error
	return payments, err
}

// FailedRefunds lists payments whose refund attempt failed, oldest first.
func (r *PaymentRepository) FailedRefunds() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Order").
		Where("refund_status = ?", models.RefundStatusFailed).
		Order("updated_at ASC").
		Find(&payments).Error
	return payments, err
}
