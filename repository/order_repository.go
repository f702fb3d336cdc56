package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/services"
	"gorm.io/gorm"
)

// OrderRepository is the gorm-backed persistence boundary for orders. The
// database's conditional UPDATE is the sole concurrency primitive: the status
// guard and the status write happen in one statement, so two actors racing on
// the same order can never both win a transition.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns an order repository on the given connection.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindByID loads one order.
func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListByClient returns a client's orders, newest first.
func (r *OrderRepository) ListByClient(clientID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ListByFreelancer returns a freelancer's orders, newest first.
func (r *OrderRepository) ListByFreelancer(freelancerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("freelancer_id = ?", freelancerID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ExpiredAcceptance lists orders whose acceptance window lapsed without a
// freelancer response.
func (r *OrderRepository) ExpiredAcceptance(now time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status = ? AND accept_deadline IS NOT NULL AND accept_deadline < ?",
		models.OrderStatusPendingAcceptance, now).Find(&orders).Error
	return orders, err
}

// ExpiredPayment lists accepted orders whose payment window lapsed unpaid.
func (r *OrderRepository) ExpiredPayment(now time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status = ? AND payment_deadline IS NOT NULL AND payment_deadline < ?",
		models.OrderStatusPendingPayment, now).Find(&orders).Error
	return orders, err
}

// Transition updates the order's status to `to` only if its current status is
// one of `from`, applying `updates` in the same statement. A failed condition
// is reported as InvalidStateError with the order's actual status; a
// concurrent transition is never overwritten.
func (r *OrderRepository) Transition(orderID uint, from []string, to string, updates map[string]interface{}) (*models.Order, error) {
	values, err := encodeUpdates(updates)
	if err != nil {
		return nil, err
	}
	values["status"] = to

	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var current models.Order
		if err := r.db.First(&current, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, services.ErrOrderNotFound
			}
			return nil, err
		}
		return nil, &services.InvalidStateError{Current: current.Status, Expected: from}
	}

	return r.FindByID(orderID)
}

// encodeUpdates prepares raw column values for the map-based UPDATE. gorm
// only runs the JSON serializer on struct field writes, so slice values
// passed through a map would reach the statement unserialized; marshal them
// here so the delivery columns always hold JSON text.
func encodeUpdates(updates map[string]interface{}) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(updates)+1)
	for column, value := range updates {
		switch v := value.(type) {
		case []string:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding column %s: %w", column, err)
			}
			values[column] = string(data)
		default:
			values[column] = value
		}
	}
	return values, nil
}
