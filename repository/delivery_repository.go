package repository

import (
	"github.com/Aravind-813/GigSphere/models"
	"gorm.io/gorm"
)

// DeliveryRepository persists the append-only delivery history of an order.
type DeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository returns a delivery repository on the given connection.
func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// NextVersion returns the version number the next appended row should carry.
// Versions are contiguous starting at 1.
func (r *DeliveryRepository) NextVersion(orderID uint) (int, error) {
	var maxVersion int
	err := r.db.Model(&models.DeliveryHistory{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}

// Append inserts a new history row. Rows are immutable after insertion,
// except for the single approval flip on completion.
func (r *DeliveryRepository) Append(entry *models.DeliveryHistory) error {
	return r.db.Create(entry).Error
}

// ApproveLatest marks the newest history row approved when the client
// completes the order.
func (r *DeliveryRepository) ApproveLatest(orderID uint) error {
	subquery := r.db.Model(&models.DeliveryHistory{}).
		Where("order_id = ?", orderID).
		Select("MAX(version)")
	return r.db.Model(&models.DeliveryHistory{}).
		Where("order_id = ? AND version = (?)", orderID, subquery).
		Update("status", models.DeliveryStatusApproved).Error
}

// ListByOrder returns the order's full delivery trail, oldest version first.
func (r *DeliveryRepository) ListByOrder(orderID uint) ([]models.DeliveryHistory, error) {
	var entries []models.DeliveryHistory
	err := r.db.Where("order_id = ?", orderID).Order("version ASC").Find(&entries).Error
	return entries, err
}
