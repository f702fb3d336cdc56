package chat

import (
	"errors"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/services"
	"gorm.io/gorm"
)

// Service manages order chat rooms. A room opens when payment is captured and
// is scheduled to close a day after completion.
type Service struct {
	db *gorm.DB
}

// NewService returns a chat service on the given connection.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateRoom opens the room for an order. Creating an already existing room
// is a no-op, so a replayed payment callback stays harmless.
func (s *Service) CreateRoom(orderID, clientID, freelancerID uint) error {
	var existing models.ChatRoom
	err := s.db.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	room := models.ChatRoom{
		OrderID:      orderID,
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Active:       true,
	}
	return s.db.Create(&room).Error
}

// ScheduleClosure records when the order's room should stop accepting
// messages.
func (s *Service) ScheduleClosure(orderID uint, closesAt time.Time) error {
	result := s.db.Model(&models.ChatRoom{}).
		Where("order_id = ?", orderID).
		Update("closes_at", &closesAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("chat room not found")
	}
	return nil
}

// RoomForOrder loads the order's room.
func (s *Service) RoomForOrder(orderID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.Where("order_id = ?", orderID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// CloseDue deactivates rooms whose closure time has passed. Meant to run
// periodically.
func (s *Service) CloseDue(now time.Time) (int64, error) {
	result := s.db.Model(&models.ChatRoom{}).
		Where("active = ? AND closes_at IS NOT NULL AND closes_at <= ?", true, now).
		Update("active", false)
	return result.RowsAffected, result.Error
}

var _ services.ChatService = (*Service)(nil)
