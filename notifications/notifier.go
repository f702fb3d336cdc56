package notifications

import (
	"fmt"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/services"
	"github.com/Aravind-813/GigSphere/utils"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// EmailConfig holds SMTP settings for the best-effort email copy.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Notifier records notifications as rows and mails a copy when SMTP is
// configured. The row is the durable record; email failure is logged and
// swallowed.
type Notifier struct {
	db    *gorm.DB
	email *EmailConfig
}

// NewNotifier returns a notifier. Pass a nil email config to skip email
// delivery entirely.
func NewNotifier(db *gorm.DB, email *EmailConfig) *Notifier {
	return &Notifier{db: db, email: email}
}

// Notify stores the notification and sends the email copy.
func (n *Notifier) Notify(userID uint, eventType string, orderID uint, message string) error {
	notification := models.Notification{
		UserID:    userID,
		EventType: eventType,
		OrderID:   orderID,
		Message:   message,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to store notification: %v", err)
	}

	if n.email != nil {
		if err := n.sendEmail(userID, eventType, message); err != nil {
			utils.LogError("Failed to send notification email to user ID: %d: %v", userID, err)
		}
	}
	return nil
}

// ListForUser returns a user's notifications, newest first.
func (n *Notifier) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	var rows []models.Notification
	err := n.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// MarkRead stamps a notification as read for its owner.
func (n *Notifier) MarkRead(userID, notificationID uint) error {
	now := time.Now()
	result := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (n *Notifier) sendEmail(userID uint, eventType, message string) error {
	var user models.User
	if err := n.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user lookup failed: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.email.From)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", subjectFor(eventType))
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>GigSphere</h2>
		<p>%s</p>
		<p>Log in to your dashboard for details.</p>
	`, message))

	d := gomail.NewDialer(n.email.Host, n.email.Port, n.email.Username, n.email.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

func subjectFor(eventType string) string {
	switch eventType {
	case models.NotifyOrderCreated:
		return "New order request"
	case models.NotifyOrderAccepted:
		return "Your order was accepted"
	case models.NotifyOrderDeclined:
		return "Your order was declined"
	case models.NotifyPaymentCaptured:
		return "Payment received"
	case models.NotifyWorkStarted:
		return "Work has started on your order"
	case models.NotifyDeliverySubmitted:
		return "A delivery is waiting for your review"
	case models.NotifyRevisionRequested:
		return "A revision was requested"
	case models.NotifyOrderCompleted:
		return "Order completed"
	case models.NotifyOrderCancelled:
		return "Order cancelled"
	case models.NotifyPayoutTransferred:
		return "Your payout is on its way"
	default:
		return "GigSphere update"
	}
}

var _ services.Notifier = (*Notifier)(nil)
