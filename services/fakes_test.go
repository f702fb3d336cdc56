package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/Aravind-813/GigSphere/models"
)

// In-memory fakes for the repository and collaborator ports so the state
// machine and engines run without postgres or the gateway.

type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*models.Order

	// beforeTransition, when set, runs before the conditional write. Tests
	// use it to interleave a concurrent actor between an operation's read
	// and its status write.
	beforeTransition func()
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[uint]*models.Order{}}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) FindByID(id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByClient(clientID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByFreelancer(freelancerID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.FreelancerID == freelancerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Transition(orderID uint, from []string, to string, updates map[string]interface{}) (*models.Order, error) {
	if r.beforeTransition != nil {
		r.beforeTransition()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	allowed := false
	for _, status := range from {
		if order.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, &InvalidStateError{Current: order.Status, Expected: from}
	}
	order.Status = to
	for column, value := range updates {
		switch column {
		case "payment_deadline":
			order.PaymentDeadline = value.(*time.Time)
		case "due_date":
			order.DueDate = value.(*time.Time)
		case "delivered_at":
			order.DeliveredAt = value.(*time.Time)
		case "completed_at":
			order.CompletedAt = value.(*time.Time)
		case "revisions_used":
			order.RevisionsUsed = value.(int)
		case "cancellation_reason":
			order.CancellationReason = value.(string)
		case "delivery_files":
			order.DeliveryFiles = value.([]string)
		case "delivery_links":
			order.DeliveryLinks = value.([]string)
		case "delivery_message":
			order.DeliveryMessage = value.(string)
		default:
			return nil, fmt.Errorf("fake repo: unknown column %s", column)
		}
	}
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

type fakeDeliveryRepo struct {
	mu      sync.Mutex
	entries map[uint][]models.DeliveryHistory
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{entries: map[uint][]models.DeliveryHistory{}}
}

func (r *fakeDeliveryRepo) NextVersion(orderID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[orderID]) + 1, nil
}

func (r *fakeDeliveryRepo) Append(entry *models.DeliveryHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.entries[entry.OrderID]) + 1)
	entry.CreatedAt = time.Now()
	r.entries[entry.OrderID] = append(r.entries[entry.OrderID], *entry)
	return nil
}

func (r *fakeDeliveryRepo) ApproveLatest(orderID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.entries[orderID]
	if len(rows) == 0 {
		return fmt.Errorf("no delivery history for order %d", orderID)
	}
	rows[len(rows)-1].Status = models.DeliveryStatusApproved
	return nil
}

func (r *fakeDeliveryRepo) ListByOrder(orderID uint) ([]models.DeliveryHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.DeliveryHistory(nil), r.entries[orderID]...), nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	nextID   uint
	payments map[uint]*models.Payment // keyed by order id
	orders   *fakeOrderRepo
}

func newFakePaymentRepo(orders *fakeOrderRepo) *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, payments: map[uint]*models.Payment{}, orders: orders}
}

func (r *fakePaymentRepo) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[payment.OrderID]; exists {
		return fmt.Errorf("payment for order %d already recorded", payment.OrderID)
	}
	payment.ID = r.nextID
	r.nextID++
	payment.CreatedAt = time.Now()
	copied := *payment
	r.payments[payment.OrderID] = &copied
	return nil
}

func (r *fakePaymentRepo) FindByOrderID(orderID uint) (*models.Payment, error) {
	r.mu.Lock()
	payment, ok := r.payments[orderID]
	r.mu.Unlock()
	if !ok {
		return nil, ErrPaymentNotFound
	}
	copied := *payment
	if order, err := r.orders.FindByID(orderID); err == nil {
		copied.Order = *order
	}
	return &copied, nil
}

func (r *fakePaymentRepo) Update(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.payments[payment.OrderID]
	if !ok {
		return ErrPaymentNotFound
	}
	copied := *payment
	copied.UpdatedAt = time.Now()
	copied.CreatedAt = stored.CreatedAt
	r.payments[payment.OrderID] = &copied
	return nil
}

func (r *fakePaymentRepo) PendingManualTransfers() ([]models.Payment, error) {
	r.mu.Lock()
	ids := []uint{}
	for orderID, p := range r.payments {
		if p.TransferPendingManual {
			ids = append(ids, orderID)
		}
	}
	r.mu.Unlock()
	var out []models.Payment
	for _, id := range ids {
		p, err := r.FindByOrderID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) FailedRefunds() ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.RefundStatus == models.RefundStatusFailed {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakePayoutDetailsRepo struct {
	mu      sync.Mutex
	details map[uint]*models.FreelancerPayoutDetails
}

func newFakePayoutDetailsRepo() *fakePayoutDetailsRepo {
	return &fakePayoutDetailsRepo{details: map[uint]*models.FreelancerPayoutDetails{}}
}

func (r *fakePayoutDetailsRepo) FindByUserID(userID uint) (*models.FreelancerPayoutDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.details[userID]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *fakePayoutDetailsRepo) Upsert(details *models.FreelancerPayoutDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *details
	r.details[details.UserID] = &copied
	return nil
}

type fakeCatalog struct {
	services map[uint]*models.Service
}

func (c *fakeCatalog) FindService(serviceID uint) (*models.Service, error) {
	service, ok := c.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %d not found", serviceID)
	}
	return service, nil
}

type gatewayCall struct {
	kind      string // "transfer" or "refund"
	target    string
	amount    int64
	reference string
}

type fakeGateway struct {
	mu          sync.Mutex
	calls       []gatewayCall
	transferErr error
	refundErr   error
	nextID      int
}

func (g *fakeGateway) CreateCaptureOrder(orderID uint, amount int64) (string, error) {
	return fmt.Sprintf("rzp_order_%d", orderID), nil
}

func (g *fakeGateway) Transfer(accountID string, amount int64, reference string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{kind: "transfer", target: accountID, amount: amount, reference: reference})
	if g.transferErr != nil {
		return "", g.transferErr
	}
	g.nextID++
	return fmt.Sprintf("trf_%d", g.nextID), nil
}

func (g *fakeGateway) Refund(paymentID string, amount int64, reference string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{kind: "refund", target: paymentID, amount: amount, reference: reference})
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.nextID++
	return fmt.Sprintf("rfnd_%d", g.nextID), nil
}

func (g *fakeGateway) callsOf(kind string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayCall
	for _, call := range g.calls {
		if call.kind == kind {
			out = append(out, call)
		}
	}
	return out
}

type fakeChat struct {
	mu       sync.Mutex
	rooms    []uint
	closures map[uint]time.Time
	err      error
}

func newFakeChat() *fakeChat {
	return &fakeChat{closures: map[uint]time.Time{}}
}

func (c *fakeChat) CreateRoom(orderID, clientID, freelancerID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.rooms = append(c.rooms, orderID)
	return nil
}

func (c *fakeChat) ScheduleClosure(orderID uint, closesAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.closures[orderID] = closesAt
	return nil
}

type notifiedEvent struct {
	userID    uint
	eventType string
	orderID   uint
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
	err    error
}

func (n *fakeNotifier) Notify(userID uint, eventType string, orderID uint, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{userID: userID, eventType: eventType, orderID: orderID})
	return n.err
}

func (n *fakeNotifier) eventsOf(eventType string) []notifiedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifiedEvent
	for _, e := range n.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeStats struct {
	mu       sync.Mutex
	earnings map[uint]int64
	spend    map[uint]int64
}

func newFakeStats() *fakeStats {
	return &fakeStats{earnings: map[uint]int64{}, spend: map[uint]int64{}}
}

func (s *fakeStats) IncrementFreelancerEarnings(freelancerID uint, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earnings[freelancerID] += amount
	return nil
}

func (s *fakeStats) IncrementClientSpend(clientID uint, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spend[clientID] += amount
	return nil
}
