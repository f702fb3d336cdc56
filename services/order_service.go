package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/Aravind-813/GigSphere/pricing"
	"github.com/Aravind-813/GigSphere/utils"
)

// OrderService enforces the order lifecycle: every mutating operation
// validates the caller, performs a single atomic conditional status write
// through the repository, and then runs an ordered list of side effects.
// Side effects are independently fallible and independently logged; none of
// them can undo the status write.
type OrderService struct {
	orders     OrderRepository
	deliveries DeliveryRepository
	payments   PaymentRepository
	catalog    ServiceCatalog
	settlement *SettlementEngine
	refunds    *RefundEngine
	chat       ChatService
	notifier   Notifier
	stats      StatsService
	now        func() time.Time
}

// NewOrderService wires the state machine to its collaborators.
func NewOrderService(
	orders OrderRepository,
	deliveries DeliveryRepository,
	payments PaymentRepository,
	catalog ServiceCatalog,
	settlement *SettlementEngine,
	refunds *RefundEngine,
	chat ChatService,
	notifier Notifier,
	stats StatsService,
) *OrderService {
	return &OrderService{
		orders:     orders,
		deliveries: deliveries,
		payments:   payments,
		catalog:    catalog,
		settlement: settlement,
		refunds:    refunds,
		chat:       chat,
		notifier:   notifier,
		stats:      stats,
		now:        time.Now,
	}
}

type sideEffect struct {
	name string
	run  func() error
}

func (s *OrderService) runSideEffects(orderID uint, effects []sideEffect) {
	for _, effect := range effects {
		if err := effect.run(); err != nil {
			utils.LogError("Order %d: side effect %s failed: %v", orderID, effect.name, err)
		} else {
			utils.LogDebug("Order %d: side effect %s done", orderID, effect.name)
		}
	}
}

func (s *OrderService) notify(userID uint, eventType string, orderID uint, message string) sideEffect {
	return sideEffect{
		name: "notify " + eventType,
		run: func() error {
			return s.notifier.Notify(userID, eventType, orderID, message)
		},
	}
}

// CreateOrderInput is the client's brief for a new order.
type CreateOrderInput struct {
	ServiceID        uint
	PlanTier         string
	Requirements     string
	RequirementFiles []string
	RequirementLinks []string
}

// Create places a new order for one plan tier of a service. The plan's
// price, delivery window and revision quota and the derived financial
// snapshot are copied onto the order and are immutable from then on.
func (s *OrderService) Create(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if actor.Role != models.RoleClient {
		return nil, ErrUnauthorized
	}
	if !models.ValidPlanTier(input.PlanTier) {
		return nil, &ValidationError{Reason: ReasonInvalidPlan, Message: "unknown plan tier: " + input.PlanTier}
	}

	service, err := s.catalog.FindService(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, &ValidationError{Reason: ReasonInvalidPlan, Message: "service is no longer available"}
	}
	if service.FreelancerID == actor.ID {
		return nil, &ValidationError{Reason: ReasonBadInput, Message: "cannot order your own service"}
	}
	plan := service.PlanForTier(input.PlanTier)
	if plan == nil {
		return nil, &ValidationError{Reason: ReasonInvalidPlan, Message: "service does not offer the " + input.PlanTier + " plan"}
	}

	breakdown := pricing.Compute(plan.Price)
	acceptBy := s.now().Add(models.AcceptWindow)
	order := &models.Order{
		ClientID:           actor.ID,
		FreelancerID:       service.FreelancerID,
		ServiceID:          service.ID,
		ServiceTitle:       service.Title,
		PlanTier:           plan.Tier,
		DeliveryDays:       plan.DeliveryDays,
		RevisionsAllowed:   plan.RevisionsAllowed,
		Status:             models.OrderStatusPendingAcceptance,
		Price:              breakdown.Price,
		PlatformCommission: breakdown.Commission,
		GSTAmount:          breakdown.GST,
		TotalAmount:        breakdown.Total,
		Requirements:       input.Requirements,
		RequirementFiles:   input.RequirementFiles,
		RequirementLinks:   input.RequirementLinks,
		AcceptDeadline:     &acceptBy,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d created: client %d, freelancer %d, %s plan, total %s",
		order.ID, order.ClientID, order.FreelancerID, order.PlanTier, pricing.FormatINR(order.TotalAmount))

	s.runSideEffects(order.ID, []sideEffect{
		s.notify(order.FreelancerID, models.NotifyOrderCreated, order.ID,
			fmt.Sprintf("New %s plan order for %q", order.PlanTier, order.ServiceTitle)),
	})
	return order, nil
}

// Accept moves a pending order into the payment window. Freelancer only.
func (s *OrderService) Accept(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleFreelancer)
	if err != nil {
		return nil, err
	}

	payBy := s.now().Add(models.PaymentWindow)
	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusPendingAcceptance},
		models.OrderStatusPendingPayment,
		map[string]interface{}{"payment_deadline": &payBy},
	)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d accepted by freelancer %d, payment due by %s", orderID, actor.ID, payBy.Format(time.RFC3339))

	s.runSideEffects(orderID, []sideEffect{
		s.notify(order.ClientID, models.NotifyOrderAccepted, orderID,
			"Your order was accepted. Complete the payment within 48 hours."),
	})
	return order, nil
}

// Decline rejects a pending order. Freelancer owner, or the scheduler when
// the acceptance deadline lapsed. Any captured money is refunded in full; in
// the normal flow nothing was captured yet and the refund is a no-op.
func (s *OrderService) Decline(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleFreelancer)
	if err != nil {
		return nil, err
	}

	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusPendingAcceptance},
		models.OrderStatusDeclined,
		nil,
	)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d declined", orderID)

	s.runSideEffects(orderID, []sideEffect{
		{name: "refund", run: func() error { return s.refunds.Refund(order, true) }},
		s.notify(order.ClientID, models.NotifyOrderDeclined, orderID,
			"The freelancer declined your order. Any payment will be refunded in full."),
	})
	return order, nil
}

// MarkPaymentCaptured records a successful gateway capture and moves the
// order into work. It is invoked by the verified payment callback, not by a
// marketplace user; the capture itself already happened at the gateway, so
// the status write comes first and is never held open on collaborator calls.
func (s *OrderService) MarkPaymentCaptured(orderID uint, gatewayOrderID, gatewayPaymentID string) (*models.Order, error) {
	current, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	due := s.now().AddDate(0, 0, current.DeliveryDays)
	order, err := s.orders.Transition(orderID,
		[]string{models.OrderStatusPendingPayment},
		models.OrderStatusAccepted,
		map[string]interface{}{"due_date": &due},
	)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		OrderID:           order.ID,
		RazorpayOrderID:   gatewayOrderID,
		RazorpayPaymentID: gatewayPaymentID,
		Amount:            order.TotalAmount,
		PlatformFee:       order.PlatformCommission,
		GSTAmount:         order.GSTAmount,
		Status:            models.PaymentStatusCaptured,
	}
	if err := s.payments.Create(payment); err != nil {
		// The order already advanced; the callback retries and the unique
		// order_id index keeps the record 1:1.
		utils.LogError("Order %d: failed to record captured payment: %v", orderID, err)
		return nil, err
	}
	utils.LogInfo("Order %d: payment %s captured, %s", orderID, gatewayPaymentID, pricing.FormatINR(payment.Amount))

	s.runSideEffects(orderID, []sideEffect{
		{name: "create chat room", run: func() error {
			return s.chat.CreateRoom(order.ID, order.ClientID, order.FreelancerID)
		}},
		s.notify(order.FreelancerID, models.NotifyPaymentCaptured, orderID,
			"Payment received. You can start working on the order."),
		s.notify(order.ClientID, models.NotifyPaymentCaptured, orderID,
			"Payment confirmed. A chat room with your freelancer is now open."),
	})
	return order, nil
}

// StartWork marks the freelancer as actively working. Freelancer only.
func (s *OrderService) StartWork(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleFreelancer)
	if err != nil {
		return nil, err
	}

	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusAccepted},
		models.OrderStatusInProgress,
		nil,
	)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d: work started", orderID)

	s.runSideEffects(orderID, []sideEffect{
		s.notify(order.ClientID, models.NotifyWorkStarted, orderID, "The freelancer started working on your order."),
	})
	return order, nil
}

// DeliveryInput is a delivery submission payload.
type DeliveryInput struct {
	Message string
	Files   []string
	Links   []string
}

func (d DeliveryInput) empty() bool {
	if len(d.Files) > 0 {
		return false
	}
	for _, link := range d.Links {
		if strings.TrimSpace(link) != "" {
			return false
		}
	}
	return true
}

// SubmitDelivery records a delivery and puts the order in the client's hands.
// At least one file or non-empty link is required. Each submission appends a
// new delivery history version; DeliveredAt is set on the first one only.
func (s *OrderService) SubmitDelivery(actor Actor, orderID uint, input DeliveryInput) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleFreelancer)
	if err != nil {
		return nil, err
	}
	if input.empty() {
		return nil, &ValidationError{Reason: ReasonEmptyDelivery, Message: "delivery must include at least one file or link"}
	}

	updates := map[string]interface{}{
		"delivery_files":   input.Files,
		"delivery_links":   input.Links,
		"delivery_message": input.Message,
	}
	if order.DeliveredAt == nil {
		deliveredAt := s.now()
		updates["delivered_at"] = &deliveredAt
	}
	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusInProgress, models.OrderStatusRevisionRequested},
		models.OrderStatusDelivered,
		updates,
	)
	if err != nil {
		return nil, err
	}

	version, err := s.deliveries.NextVersion(orderID)
	if err != nil {
		return nil, err
	}
	entry := &models.DeliveryHistory{
		OrderID:       orderID,
		Version:       version,
		Status:        models.DeliveryStatusDelivered,
		Message:       input.Message,
		DeliveryFiles: input.Files,
		DeliveryLinks: input.Links,
	}
	if err := s.deliveries.Append(entry); err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d: delivery v%d submitted with %d files, %d links", orderID, version, len(input.Files), len(input.Links))

	s.runSideEffects(orderID, []sideEffect{
		s.notify(order.ClientID, models.NotifyDeliverySubmitted, orderID,
			"Your order was delivered. Review it to approve or request a revision."),
	})
	return order, nil
}

// RequestRevision sends a delivery back to the freelancer, consuming one
// revision from the quota fixed at creation. Client only.
func (s *OrderService) RequestRevision(actor Actor, orderID uint, message string) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleClient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Reason: ReasonBadInput, Message: "a revision message is required"}
	}
	if order.RevisionsUsed >= order.RevisionsAllowed {
		return nil, &ValidationError{
			Reason:  ReasonRevisionQuotaExceeded,
			Message: fmt.Sprintf("all %d included revisions have been used", order.RevisionsAllowed),
		}
	}

	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusDelivered},
		models.OrderStatusRevisionRequested,
		map[string]interface{}{"revisions_used": order.RevisionsUsed + 1},
	)
	if err != nil {
		return nil, err
	}

	version, err := s.deliveries.NextVersion(orderID)
	if err != nil {
		return nil, err
	}
	// The revision row carries the current payload forward so the highest
	// version always mirrors the order's delivery fields.
	entry := &models.DeliveryHistory{
		OrderID:         orderID,
		Version:         version,
		Status:          models.DeliveryStatusRevisionRequested,
		Message:         order.DeliveryMessage,
		DeliveryFiles:   order.DeliveryFiles,
		DeliveryLinks:   order.DeliveryLinks,
		RevisionMessage: message,
	}
	if err := s.deliveries.Append(entry); err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d: revision %d of %d requested", orderID, order.RevisionsUsed, order.RevisionsAllowed)

	s.runSideEffects(orderID, []sideEffect{
		s.notify(order.FreelancerID, models.NotifyRevisionRequested, orderID,
			"The client requested a revision: "+message),
	})
	return order, nil
}

// Complete accepts the delivery and closes the order. Client only. The
// completed status is written first; settlement, stats, chat closure and
// notifications follow and none of them can roll it back.
func (s *OrderService) Complete(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleClient)
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	order, err = s.orders.Transition(orderID,
		[]string{models.OrderStatusDelivered},
		models.OrderStatusCompleted,
		map[string]interface{}{"completed_at": &completedAt},
	)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d completed, payout %s due to freelancer %d",
		orderID, pricing.FormatINR(pricing.FreelancerPayout(order.Price)), order.FreelancerID)

	payout := pricing.FreelancerPayout(order.Price)
	s.runSideEffects(orderID, []sideEffect{
		{name: "approve delivery", run: func() error { return s.deliveries.ApproveLatest(orderID) }},
		{name: "increment freelancer earnings", run: func() error {
			return s.stats.IncrementFreelancerEarnings(order.FreelancerID, payout)
		}},
		{name: "increment client spend", run: func() error {
			return s.stats.IncrementClientSpend(order.ClientID, order.TotalAmount)
		}},
		{name: "schedule chat closure", run: func() error {
			return s.chat.ScheduleClosure(orderID, completedAt.Add(24*time.Hour))
		}},
		{name: "settlement", run: func() error { return s.settlement.Settle(order) }},
		s.notify(order.FreelancerID, models.NotifyOrderCompleted, orderID,
			"The client approved your delivery. Your payout is on its way."),
		s.notify(order.ClientID, models.NotifyOrderCompleted, orderID,
			"Order completed. Thanks for using the platform."),
	})
	return order, nil
}

// Cancel withdraws an order before delivery. Client owner, or the scheduler
// when the payment deadline lapsed. If money was captured the fee-bearing
// refund runs after the status write and cannot undo it.
func (s *OrderService) Cancel(actor Actor, orderID uint, reason string) (*models.Order, error) {
	order, err := s.loadForParty(actor, orderID, models.RoleClient)
	if err != nil {
		return nil, err
	}
	order, err = s.orders.Transition(orderID,
		models.CancellableStatuses(),
		models.OrderStatusCancelled,
		map[string]interface{}{"cancellation_reason": reason},
	)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Order %d cancelled", orderID)

	// The refund runs unconditionally and no-ops when nothing was captured.
	// Deciding from a pre-transition read would let a capture landing in the
	// race window keep the money with no refund recorded anywhere.
	s.runSideEffects(orderID, []sideEffect{
		{name: "refund", run: func() error { return s.refunds.Refund(order, false) }},
		s.notify(order.FreelancerID, models.NotifyOrderCancelled, orderID, "The order was cancelled."),
		s.notify(order.ClientID, models.NotifyOrderCancelled, orderID, "Your order was cancelled."),
	})
	return order, nil
}

// Get returns an order to one of its parties or an operator.
func (s *OrderService) Get(actor Actor, orderID uint) (*models.Order, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role == RoleOperator || actor.IsSystem() {
		return order, nil
	}
	if order.ClientID != actor.ID && order.FreelancerID != actor.ID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// DeliveryHistory returns the order's delivery trail to a legitimate viewer.
func (s *OrderService) DeliveryHistory(actor Actor, orderID uint) ([]models.DeliveryHistory, error) {
	if _, err := s.Get(actor, orderID); err != nil {
		return nil, err
	}
	return s.deliveries.ListByOrder(orderID)
}

// ListForActor returns the orders the actor is a party to.
func (s *OrderService) ListForActor(actor Actor) ([]models.Order, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	switch actor.Role {
	case models.RoleClient:
		return s.orders.ListByClient(actor.ID)
	case models.RoleFreelancer:
		return s.orders.ListByFreelancer(actor.ID)
	}
	return nil, ErrUnauthorized
}

// loadForParty fetches the order and verifies the actor is the required
// party. The scheduler identity passes the ownership check (it drives
// deadline expiry) but still hits every status guard downstream.
func (s *OrderService) loadForParty(actor Actor, orderID uint, requiredRole string) (*models.Order, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if actor.IsSystem() {
		return order, nil
	}
	if actor.Role != requiredRole {
		return nil, ErrUnauthorized
	}
	switch requiredRole {
	case models.RoleClient:
		if order.ClientID != actor.ID {
			return nil, ErrUnauthorized
		}
	case models.RoleFreelancer:
		if order.FreelancerID != actor.ID {
			return nil, ErrUnauthorized
		}
	}
	return order, nil
}
