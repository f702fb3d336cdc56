package services

import (
	"testing"
	"time"

	"github.com/Aravind-813/GigSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	client     = Actor{ID: 1, Role: models.RoleClient}
	freelancer = Actor{ID: 2, Role: models.RoleFreelancer}
	stranger   = Actor{ID: 9, Role: models.RoleClient}
	nobody     = Actor{}
)

type testEnv struct {
	orders        *fakeOrderRepo
	deliveries    *fakeDeliveryRepo
	payments      *fakePaymentRepo
	payoutDetails *fakePayoutDetailsRepo
	gateway       *fakeGateway
	chat          *fakeChat
	notifier      *fakeNotifier
	stats         *fakeStats
	settlement    *SettlementEngine
	refunds       *RefundEngine
	svc           *OrderService
}

func newTestEnv() *testEnv {
	orders := newFakeOrderRepo()
	payments := newFakePaymentRepo(orders)
	payoutDetails := newFakePayoutDetailsRepo()
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{services: map[uint]*models.Service{
		1: {
			FreelancerID: freelancer.ID,
			Title:        "Logo design",
			Active:       true,
			Plans: []models.ServicePlan{
				{Tier: models.PlanTierStandard, Price: 1000000, DeliveryDays: 7, RevisionsAllowed: 2},
				{Tier: models.PlanTierPremium, Price: 2500000, DeliveryDays: 5, RevisionsAllowed: 4},
			},
		},
	}}
	catalog.services[1].ID = 1

	_ = payoutDetails.Upsert(&models.FreelancerPayoutDetails{
		UserID:            freelancer.ID,
		RazorpayAccountID: "acc_frlnc01",
		BankAccountName:   "A Freelancer",
		BankAccountNumber: "002301000012",
		BankIFSC:          "HDFC0000123",
		UPIID:             "freelancer@upi",
	})

	env := &testEnv{
		orders:        orders,
		deliveries:    newFakeDeliveryRepo(),
		payments:      payments,
		payoutDetails: payoutDetails,
		gateway:       gateway,
		chat:          newFakeChat(),
		notifier:      notifier,
		stats:         newFakeStats(),
	}
	env.settlement = NewSettlementEngine(payments, payoutDetails, gateway, notifier)
	env.refunds = NewRefundEngine(payments, gateway)
	env.svc = NewOrderService(orders, env.deliveries, payments, catalog, env.settlement, env.refunds, env.chat, notifier, env.stats)
	return env
}

func (env *testEnv) place(t *testing.T) *models.Order {
	t.Helper()
	order, err := env.svc.Create(client, CreateOrderInput{
		ServiceID:        1,
		PlanTier:         models.PlanTierStandard,
		Requirements:     "A minimal logo, blue palette",
		RequirementFiles: []string{"briefs/logo-brief.pdf"},
	})
	require.NoError(t, err)
	return order
}

func (env *testEnv) placePaid(t *testing.T) *models.Order {
	t.Helper()
	order := env.place(t)
	_, err := env.svc.Accept(freelancer, order.ID)
	require.NoError(t, err)
	order, err = env.svc.MarkPaymentCaptured(order.ID, "rzp_order_1", "pay_abc123")
	require.NoError(t, err)
	return order
}

func (env *testEnv) placeDelivered(t *testing.T) *models.Order {
	t.Helper()
	order := env.placePaid(t)
	_, err := env.svc.StartWork(freelancer, order.ID)
	require.NoError(t, err)
	order, err = env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{
		Message: "First draft attached",
		Files:   []string{"deliveries/logo-v1.zip"},
	})
	require.NoError(t, err)
	return order
}

func TestCreateSnapshotsPlanAndFinancials(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	assert.Equal(t, models.OrderStatusPendingAcceptance, order.Status)
	assert.Equal(t, client.ID, order.ClientID)
	assert.Equal(t, freelancer.ID, order.FreelancerID)
	assert.Equal(t, models.PlanTierStandard, order.PlanTier)
	assert.Equal(t, 7, order.DeliveryDays)
	assert.Equal(t, 2, order.RevisionsAllowed)

	// ₹10,000 price: commission ₹1,400, GST ₹252, total ₹10,252.
	assert.Equal(t, int64(1000000), order.Price)
	assert.Equal(t, int64(140000), order.PlatformCommission)
	assert.Equal(t, int64(25200), order.GSTAmount)
	assert.Equal(t, int64(1025200), order.TotalAmount)

	require.NotNil(t, order.AcceptDeadline)
	assert.True(t, order.AcceptDeadline.After(order.CreatedAt))

	created := env.notifier.eventsOf(models.NotifyOrderCreated)
	require.Len(t, created, 1)
	assert.Equal(t, freelancer.ID, created[0].userID)
}

func TestCreateGuards(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(nobody, CreateOrderInput{ServiceID: 1, PlanTier: models.PlanTierStandard})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.svc.Create(freelancer, CreateOrderInput{ServiceID: 1, PlanTier: models.PlanTierStandard})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.svc.Create(client, CreateOrderInput{ServiceID: 1, PlanTier: "platinum"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonInvalidPlan, vErr.Reason)

	// basic tier is not listed on this service
	_, err = env.svc.Create(client, CreateOrderInput{ServiceID: 1, PlanTier: models.PlanTierBasic})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonInvalidPlan, vErr.Reason)
}

func TestFullLifecycle(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	order, err := env.svc.Accept(freelancer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	require.NotNil(t, order.PaymentDeadline)

	order, err = env.svc.MarkPaymentCaptured(order.ID, "rzp_order_1", "pay_abc123")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)
	require.NotNil(t, order.DueDate)
	assert.Contains(t, env.chat.rooms, order.ID, "chat room opens on capture")

	payment, err := env.payments.FindByOrderID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCaptured, payment.Status)
	assert.Equal(t, order.TotalAmount, payment.Amount)

	order, err = env.svc.StartWork(freelancer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, order.Status)

	order, err = env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{
		Message: "Final files",
		Files:   []string{"deliveries/logo-final.zip"},
		Links:   []string{"https://example.com/preview"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)

	order, err = env.svc.Complete(client, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)

	// Settlement: payout ₹8,600 transferred to the linked account.
	transfers := env.gateway.callsOf("transfer")
	require.Len(t, transfers, 1)
	assert.Equal(t, "acc_frlnc01", transfers[0].target)
	assert.Equal(t, int64(860000), transfers[0].amount)

	payment, err = env.payments.FindByOrderID(order.ID)
	require.NoError(t, err)
	assert.True(t, payment.TransferredToFreelancer)
	assert.False(t, payment.TransferPendingManual)
	require.NotNil(t, payment.ExternalTransferID)

	// Stats: freelancer earns the payout, client spend is the full total.
	assert.Equal(t, int64(860000), env.stats.earnings[freelancer.ID])
	assert.Equal(t, int64(1025200), env.stats.spend[client.ID])

	// Chat closure scheduled 24h after completion.
	closesAt, ok := env.chat.closures[order.ID]
	require.True(t, ok)
	assert.Equal(t, order.CompletedAt.Add(24*time.Hour), closesAt)

	// Latest delivery history row approved.
	history, err := env.deliveries.ListByOrder(order.ID)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, models.DeliveryStatusApproved, history[len(history)-1].Status)
}

func TestOffGraphTransitionsRejected(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	cases := []struct {
		name string
		op   func() error
	}{
		{"start work before acceptance", func() error {
			_, err := env.svc.StartWork(freelancer, order.ID)
			return err
		}},
		{"deliver before acceptance", func() error {
			_, err := env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{Files: []string{"x.zip"}})
			return err
		}},
		{"complete before delivery", func() error {
			_, err := env.svc.Complete(client, order.ID)
			return err
		}},
		{"revision before delivery", func() error {
			_, err := env.svc.RequestRevision(client, order.ID, "please adjust")
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			var stateErr *InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, models.OrderStatusPendingAcceptance, stateErr.Current)

			stored, err := env.orders.FindByID(order.ID)
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusPendingAcceptance, stored.Status, "stored order unchanged")
		})
	}

	// Accepting twice: the second attempt finds the order already past the
	// guard state.
	_, err := env.svc.Accept(freelancer, order.ID)
	require.NoError(t, err)
	_, err = env.svc.Accept(freelancer, order.ID)
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.OrderStatusPendingPayment, stateErr.Current)
}

func TestOwnershipGuards(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	_, err := env.svc.Accept(Actor{ID: 77, Role: models.RoleFreelancer}, order.ID)
	assert.ErrorIs(t, err, ErrUnauthorized, "another freelancer cannot accept")

	_, err = env.svc.Accept(client, order.ID)
	assert.ErrorIs(t, err, ErrUnauthorized, "the client cannot accept")

	_, err = env.svc.Cancel(stranger, order.ID, "not mine")
	assert.ErrorIs(t, err, ErrUnauthorized, "another client cannot cancel")

	delivered := env.placeDelivered(t)
	_, err = env.svc.Complete(freelancer, delivered.ID)
	assert.ErrorIs(t, err, ErrUnauthorized, "the freelancer cannot complete")

	_, err = env.svc.Get(stranger, order.ID)
	assert.ErrorIs(t, err, ErrUnauthorized, "non-parties cannot view")
}

func TestSystemActorDrivesDeadlineExpiry(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	// The scheduler declines an order whose acceptance deadline lapsed.
	expired, err := env.svc.Decline(SystemActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDeclined, expired.Status)

	// Status guards still apply to the scheduler.
	paid := env.placePaid(t)
	_, err = env.svc.StartWork(freelancer, paid.ID)
	require.NoError(t, err)
	_, err = env.svc.Decline(SystemActor, paid.ID)
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestSubmitDeliveryRequiresContent(t *testing.T) {
	env := newTestEnv()
	order := env.placePaid(t)
	_, err := env.svc.StartWork(freelancer, order.ID)
	require.NoError(t, err)

	_, err = env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{Message: "done", Links: []string{"  ", ""}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonEmptyDelivery, vErr.Reason)

	stored, err := env.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, stored.Status)
}

func TestRevisionQuota(t *testing.T) {
	env := newTestEnv()
	order := env.placeDelivered(t) // plan allows 2 revisions

	redeliver := func() {
		_, err := env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{Files: []string{"deliveries/next.zip"}})
		require.NoError(t, err)
	}

	updated, err := env.svc.RequestRevision(client, order.ID, "tweak the colours")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RevisionsUsed)
	redeliver()

	updated, err = env.svc.RequestRevision(client, order.ID, "larger wordmark")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.RevisionsUsed)
	redeliver()

	_, err = env.svc.RequestRevision(client, order.ID, "one more change")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonRevisionQuotaExceeded, vErr.Reason)

	stored, err := env.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.RevisionsUsed, "revisions used never exceeds the quota")
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}

func TestDeliveredAtSetExactlyOnce(t *testing.T) {
	env := newTestEnv()
	order := env.placeDelivered(t)
	firstDeliveredAt := *order.DeliveredAt

	_, err := env.svc.RequestRevision(client, order.ID, "adjust spacing")
	require.NoError(t, err)
	order, err = env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{Files: []string{"deliveries/logo-v2.zip"}})
	require.NoError(t, err)

	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, firstDeliveredAt, *order.DeliveredAt)
}

func TestDeliveryHistoryVersionsContiguous(t *testing.T) {
	env := newTestEnv()
	order := env.placeDelivered(t)

	_, err := env.svc.RequestRevision(client, order.ID, "adjust spacing")
	require.NoError(t, err)
	_, err = env.svc.SubmitDelivery(freelancer, order.ID, DeliveryInput{
		Message: "Spacing adjusted",
		Files:   []string{"deliveries/logo-v2.zip"},
	})
	require.NoError(t, err)

	history, err := env.svc.DeliveryHistory(client, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, row := range history {
		assert.Equal(t, i+1, row.Version)
	}
	assert.Equal(t, models.DeliveryStatusDelivered, history[0].Status)
	assert.Equal(t, models.DeliveryStatusRevisionRequested, history[1].Status)
	assert.Equal(t, "adjust spacing", history[1].RevisionMessage)
	assert.Equal(t, history[0].DeliveryFiles, history[1].DeliveryFiles, "revision row carries the payload forward")

	// Highest version mirrors the order's current delivery.
	stored, err := env.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.DeliveryFiles, history[2].DeliveryFiles)
}

func TestDeclineBeforeCaptureIsGatewayNoop(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	declined, err := env.svc.Decline(freelancer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDeclined, declined.Status)
	assert.Empty(t, env.gateway.callsOf("refund"), "nothing was charged, nothing to refund")
}

func TestCancelBeforeCaptureSkipsRefund(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)

	cancelled, err := env.svc.Cancel(client, order.ID, "found someone else")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "found someone else", cancelled.CancellationReason)
	assert.Empty(t, env.gateway.callsOf("refund"))
}

func TestCancelAfterCaptureRefundsWithFee(t *testing.T) {
	env := newTestEnv()
	order := env.placePaid(t)
	_, err := env.svc.StartWork(freelancer, order.ID)
	require.NoError(t, err)

	cancelled, err := env.svc.Cancel(client, order.ID, "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// ₹10,000 order: refund ₹9,600; the client paid ₹10,252 so the total
	// loss is ₹652 (₹400 fee + ₹252 GST).
	refunds := env.gateway.callsOf("refund")
	require.Len(t, refunds, 1)
	assert.Equal(t, int64(960000), refunds[0].amount)
	assert.Equal(t, "pay_abc123", refunds[0].target)

	payment, err := env.payments.FindByOrderID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
	assert.Equal(t, int64(960000), payment.RefundAmount)
	assert.Equal(t, int64(65200), payment.Amount-payment.RefundAmount)
}

func TestCancelRefundsCaptureLandingMidCancellation(t *testing.T) {
	env := newTestEnv()
	order := env.place(t)
	_, err := env.svc.Accept(freelancer, order.ID)
	require.NoError(t, err)

	// The capture callback lands between Cancel's read (which still sees
	// pending_payment) and its conditional status write. The cancel wins the
	// write from accepted; the captured money must still come back.
	captured := false
	env.orders.beforeTransition = func() {
		if captured {
			return
		}
		captured = true
		_, err := env.svc.MarkPaymentCaptured(order.ID, "rzp_order_1", "pay_abc123")
		require.NoError(t, err)
	}

	cancelled, err := env.svc.Cancel(client, order.ID, "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	refunds := env.gateway.callsOf("refund")
	require.Len(t, refunds, 1, "the racing capture must be refunded")
	assert.Equal(t, int64(960000), refunds[0].amount)

	payment, err := env.payments.FindByOrderID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
}

func TestCancelNotAllowedAfterDelivery(t *testing.T) {
	env := newTestEnv()
	order := env.placeDelivered(t)

	_, err := env.svc.Cancel(client, order.ID, "changed my mind")
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.OrderStatusDelivered, stateErr.Current)
}

func TestSettlementFailureNeverRollsBackCompletion(t *testing.T) {
	env := newTestEnv()
	env.gateway.transferErr = assert.AnError
	order := env.placeDelivered(t)

	completed, err := env.svc.Complete(client, order.ID)
	require.NoError(t, err, "completion succeeds regardless of the gateway")
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)

	payment, err := env.payments.FindByOrderID(order.ID)
	require.NoError(t, err)
	assert.False(t, payment.TransferredToFreelancer)
	assert.True(t, payment.TransferPendingManual)
	assert.NotEmpty(t, payment.TransferFailureReason)

	// Operator confirms the manual transfer; a second confirmation is a
	// no-op, not an error.
	operator := Actor{ID: 5, Role: RoleOperator}
	confirmed, err := env.settlement.ConfirmManualPayout(operator, order.ID, "NEFT-20260830-0042")
	require.NoError(t, err)
	assert.True(t, confirmed.TransferredToFreelancer)
	assert.False(t, confirmed.TransferPendingManual)
	require.NotNil(t, confirmed.ExternalTransferID)
	assert.Equal(t, "NEFT-20260830-0042", *confirmed.ExternalTransferID)

	again, err := env.settlement.ConfirmManualPayout(operator, order.ID, "NEFT-duplicate")
	require.NoError(t, err)
	assert.Equal(t, *confirmed.ExternalTransferID, *again.ExternalTransferID, "second confirmation changes nothing")
}

func TestNotifierFailureDoesNotFailTransition(t *testing.T) {
	env := newTestEnv()
	env.notifier.err = assert.AnError
	order := env.place(t)

	accepted, err := env.svc.Accept(freelancer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, accepted.Status)
}

func TestListForActor(t *testing.T) {
	env := newTestEnv()
	env.place(t)
	env.place(t)

	clientOrders, err := env.svc.ListForActor(client)
	require.NoError(t, err)
	assert.Len(t, clientOrders, 2)

	freelancerOrders, err := env.svc.ListForActor(freelancer)
	require.NoError(t, err)
	assert.Len(t, freelancerOrders, 2)

	_, err = env.svc.ListForActor(nobody)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
