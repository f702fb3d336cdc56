package services

import (
	"time"

	"github.com/Aravind-813/GigSphere/models"
)

// OrderRepository is the persistence boundary for orders. Transition must
// perform the status guard and the status write as one atomic conditional
// update; when the guard fails it returns *InvalidStateError carrying the
// order's actual status, never overwriting a concurrent transition.
type OrderRepository interface {
	Create(order *models.Order) error
	FindByID(id uint) (*models.Order, error)
	ListByClient(clientID uint) ([]models.Order, error)
	ListByFreelancer(freelancerID uint) ([]models.Order, error)
	Transition(orderID uint, from []string, to string, updates map[string]interface{}) (*models.Order, error)
}

// DeliveryRepository persists the append-only delivery history.
type DeliveryRepository interface {
	NextVersion(orderID uint) (int, error)
	Append(entry *models.DeliveryHistory) error
	ApproveLatest(orderID uint) error
	ListByOrder(orderID uint) ([]models.DeliveryHistory, error)
}

// PaymentRepository persists the 1:1 payment record per order. Loaded
// payments carry their Order (and its Freelancer on queue listings) so the
// engines can act without extra lookups.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByOrderID(orderID uint) (*models.Payment, error)
	Update(payment *models.Payment) error
	PendingManualTransfers() ([]models.Payment, error)
	FailedRefunds() ([]models.Payment, error)
}

// PayoutDetailsRepository stores freelancer settlement recipients.
// FindByUserID returns (nil, nil) when the freelancer has none on file.
type PayoutDetailsRepository interface {
	FindByUserID(userID uint) (*models.FreelancerPayoutDetails, error)
	Upsert(details *models.FreelancerPayoutDetails) error
}

// ServiceCatalog resolves the service plan an order snapshots at creation.
type ServiceCatalog interface {
	FindService(serviceID uint) (*models.Service, error)
}

// PaymentGateway is the public contract of the external payment provider.
// Calls are synchronous network operations; callers must treat failure as
// recoverable and never hold an order-status write open waiting on them.
type PaymentGateway interface {
	CreateCaptureOrder(orderID uint, amount int64) (gatewayOrderID string, err error)
	Transfer(recipientAccountID string, amount int64, reference string) (transferID string, err error)
	Refund(gatewayPaymentID string, amount int64, reference string) (refundID string, err error)
}

// ChatService is the chat subsystem boundary: the core only asks for rooms
// to exist and to close, it does not manage chat state.
type ChatService interface {
	CreateRoom(orderID, clientID, freelancerID uint) error
	ScheduleClosure(orderID uint, closesAt time.Time) error
}

// Notifier delivers fire-and-forget transition notifications. A notify
// failure must never fail the transition that emitted it.
type Notifier interface {
	Notify(userID uint, eventType string, orderID uint, message string) error
}

// StatsService aggregates lifetime counters on completion. The calls are
// additive and not idempotent; the single-transition guarantee of the state
// machine is what prevents double counting.
type StatsService interface {
	IncrementFreelancerEarnings(freelancerID uint, amount int64) error
	IncrementClientSpend(clientID uint, amount int64) error
}
