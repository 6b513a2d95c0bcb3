package dispatchsvc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/analytics"
	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/effect"
	"github.com/eatech/platform/internal/service/models/event"
	"github.com/eatech/platform/internal/service/models/ledger"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/service/models/refund"
	"github.com/eatech/platform/internal/service/models/staff"
	"github.com/eatech/platform/internal/service/models/tenant"
)

type fakeOrders struct {
	order        *order.Order
	getErr       error
	estimateMins int
	reviewReason string
	outcomes     []effect.Outcome
}

func (f *fakeOrders) Get(_ context.Context, _, _ uuid.UUID) (*order.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.order

	return &cp, nil
}

func (f *fakeOrders) SetEstimatedReady(_ context.Context, _, _ uuid.UUID, _ time.Time, minutes int) (*order.Order, error) {
	f.estimateMins = minutes

	return f.order, nil
}

func (f *fakeOrders) SetReviewFlag(_ context.Context, _, _ uuid.UUID, reason string) (*order.Order, error) {
	f.reviewReason = reason

	return f.order, nil
}

func (f *fakeOrders) RecordEffectOutcomes(_ context.Context, outcomes []effect.Outcome) error {
	f.outcomes = append(f.outcomes, outcomes...)

	return nil
}

type fakeInventory struct {
	decremented map[uuid.UUID]int
	restocked   map[uuid.UUID]int
}

func (f *fakeInventory) Decrement(_ context.Context, _, productID uuid.UUID, qty int) (*product.Product, error) {
	if f.decremented == nil {
		f.decremented = make(map[uuid.UUID]int)
	}
	f.decremented[productID] += qty

	return &product.Product{}, nil
}

func (f *fakeInventory) Restock(_ context.Context, _, productID uuid.UUID, qty int) (*product.Product, error) {
	if f.restocked == nil {
		f.restocked = make(map[uuid.UUID]int)
	}
	f.restocked[productID] += qty

	return &product.Product{}, nil
}

type fakeMailer struct {
	confirmErr    error
	confirmations int
	statusUpdates int
	cancellations int
	feedbacks     int
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, _ *tenant.Tenant, _ *order.Order) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmations++

	return nil
}

func (f *fakeMailer) SendStatusUpdate(_ context.Context, _ *tenant.Tenant, _ *order.Order) error {
	f.statusUpdates++

	return nil
}

func (f *fakeMailer) SendCancellation(_ context.Context, _ *tenant.Tenant, _ *order.Order) error {
	f.cancellations++

	return nil
}

func (f *fakeMailer) SendFeedbackRequest(_ context.Context, _ *tenant.Tenant, _ *order.Order) error {
	f.feedbacks++

	return nil
}

type fakePusher struct {
	pushes [][]string
	titles []string
}

func (f *fakePusher) Push(_ context.Context, tokens []string, title, _ string, _ map[string]string) error {
	f.pushes = append(f.pushes, tokens)
	f.titles = append(f.titles, title)

	return nil
}

type fakeScheduler struct {
	at   []time.Time
	jobs []func()
}

func (f *fakeScheduler) ScheduleAt(at time.Time, _ string, job func()) error {
	f.at = append(f.at, at)
	f.jobs = append(f.jobs, job)

	return nil
}

type fakeOrderRepo struct {
	hourlyCount int
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	return o, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _, _ uuid.UUID) (*order.Order, error) {
	return nil, order.ErrNotFound
}

func (f *fakeOrderRepo) Update(_ context.Context, _ *order.Order) error {
	return nil
}

func (f *fakeOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) CountSince(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeOrderRepo) CountByContactSince(_ context.Context, _ uuid.UUID, _, _ string, _ time.Time) (int, error) {
	return f.hourlyCount, nil
}

func (f *fakeOrderRepo) NextNumber(_ context.Context, _ uuid.UUID, _ time.Time) (string, error) {
	return "E-260821-0001", nil
}

func (f *fakeOrderRepo) Stats(_ context.Context, _ uuid.UUID, _ time.Time) (order.Stats, error) {
	return order.Stats{}, nil
}

type fakeTenantRepo struct {
	t *tenant.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, _ uuid.UUID) (*tenant.Tenant, error) {
	return f.t, nil
}

type fakeCustomerRepo struct {
	accruals      int
	accruedPoints int64
	mailingList   []string
}

func (f *fakeCustomerRepo) AccrueOnOrder(_ context.Context, _ uuid.UUID, _ order.Contact, _, points int64, _ time.Time) error {
	f.accruals++
	f.accruedPoints += points

	return nil
}

func (f *fakeCustomerRepo) UpsertMailingList(_ context.Context, _ uuid.UUID, email, _ string, _ time.Time) error {
	if email != "" {
		f.mailingList = append(f.mailingList, email)
	}

	return nil
}

type fakeStaffRepo struct {
	tokens []string
	driver *staff.Member
}

func (f *fakeStaffRepo) GetByID(_ context.Context, _, _ uuid.UUID) (*staff.Member, error) {
	if f.driver == nil {
		return nil, staff.ErrNotFound
	}

	return f.driver, nil
}

func (f *fakeStaffRepo) ActiveDeviceTokens(_ context.Context, _ uuid.UUID, _ []staff.Role) ([]string, error) {
	return f.tokens, nil
}

type fakeAnalyticsRepo struct {
	events  []analytics.Event
	metrics []analytics.OrderMetrics
}

func (f *fakeAnalyticsRepo) InsertEvent(_ context.Context, e analytics.Event) error {
	f.events = append(f.events, e)

	return nil
}

func (f *fakeAnalyticsRepo) UpsertOrderMetrics(_ context.Context, m analytics.OrderMetrics) error {
	f.metrics = append(f.metrics, m)

	return nil
}

type fakeLedgerRepo struct {
	entries []ledger.Entry
}

func (f *fakeLedgerRepo) Insert(_ context.Context, e ledger.Entry) error {
	f.entries = append(f.entries, e)

	return nil
}

type fakeKitchenRepo struct {
	tickets map[uuid.UUID]bool
}

func (f *fakeKitchenRepo) PutTicket(_ context.Context, o *order.Order) error {
	if f.tickets == nil {
		f.tickets = make(map[uuid.UUID]bool)
	}
	f.tickets[o.ID] = true

	return nil
}

func (f *fakeKitchenRepo) RemoveTicket(_ context.Context, _, orderID uuid.UUID) error {
	delete(f.tickets, orderID)

	return nil
}

type fakeRefundQueue struct {
	requests []refund.Request
}

func (f *fakeRefundQueue) Enqueue(_ context.Context, req refund.Request) error {
	f.requests = append(f.requests, req)

	return nil
}

type dispatchEnv struct {
	service   *DispatchService
	orders    *fakeOrders
	inventory *fakeInventory
	mailer    *fakeMailer
	pusher    *fakePusher
	scheduler *fakeScheduler
	orderRepo *fakeOrderRepo
	customers *fakeCustomerRepo
	staff     *fakeStaffRepo
	analytics *fakeAnalyticsRepo
	ledger    *fakeLedgerRepo
	kitchen   *fakeKitchenRepo
	refunds   *fakeRefundQueue
}

func newDispatchEnv(t *testing.T, o *order.Order) *dispatchEnv {
	t.Helper()

	env := &dispatchEnv{
		orders:    &fakeOrders{order: o},
		inventory: &fakeInventory{},
		mailer:    &fakeMailer{},
		pusher:    &fakePusher{},
		scheduler: &fakeScheduler{},
		orderRepo: &fakeOrderRepo{},
		customers: &fakeCustomerRepo{},
		staff:     &fakeStaffRepo{tokens: []string{"staff-device-1"}},
		analytics: &fakeAnalyticsRepo{},
		ledger:    &fakeLedgerRepo{},
		kitchen:   &fakeKitchenRepo{},
		refunds:   &fakeRefundQueue{},
	}

	env.service = MustNewDispatchService(
		WithOrderService(env.orders),
		WithInventoryService(env.inventory),
		WithMailer(env.mailer),
		WithPusher(env.pusher),
		WithScheduler(env.scheduler),
		WithOrderRepository(env.orderRepo),
		WithTenantRepository(&fakeTenantRepo{t: testTenant(o.TenantID)}),
		WithCustomerRepository(env.customers),
		WithStaffRepository(env.staff),
		WithAnalyticsRepository(env.analytics),
		WithLedgerRepository(env.ledger),
		WithKitchenRepository(env.kitchen),
		WithRefundQueue(env.refunds),
	)

	return env
}

func testTenant(id uuid.UUID) *tenant.Tenant {
	return &tenant.Tenant{
		ID:             id,
		Slug:           "zum-adler",
		Name:           "Zum Adler",
		Currency:       currency.CurrencyCHF,
		PlatformFeeBps: 250,
		Timezone:       "Europe/Zurich",
	}
}

func testOrder() *order.Order {
	return &order.Order{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		Number:     "E-260821-0007",
		TotalCents: 4250,
		Currency:   currency.CurrencyCHF,
		Type:       order.TypeTakeaway,
		Status:     order.StatusPending,
		Contact: order.Contact{
			Name:  "Mia Keller",
			Email: "mia@example.ch",
			Phone: "+41790000001",
		},
		Items: []orderitem.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Name: "Rösti", Quantity: 2, PriceCents: 1500},
			{ID: uuid.New(), ProductID: uuid.New(), Name: "Apfelschorle", Quantity: 1, PriceCents: 450},
		},
		CreatedAt: time.Now(),
	}
}

func createdEvent(o *order.Order) event.OrderEvent {
	return event.OrderEvent{
		ID:         uuid.New(),
		Kind:       event.KindOrderCreated,
		TenantID:   o.TenantID,
		OrderID:    o.ID,
		NewStatus:  order.StatusPending,
		OccurredAt: time.Now(),
	}
}

func statusEvent(o *order.Order, from, to order.Status) event.OrderEvent {
	return event.OrderEvent{
		ID:         uuid.New(),
		Kind:       event.KindOrderStatusChanged,
		TenantID:   o.TenantID,
		OrderID:    o.ID,
		OldStatus:  from,
		NewStatus:  to,
		OccurredAt: time.Now(),
	}
}

func TestHandleEventCreatedRunsAllHandlers(t *testing.T) {
	o := testOrder()
	env := newDispatchEnv(t, o)

	if err := env.service.HandleEvent(context.Background(), createdEvent(o)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if env.mailer.confirmations != 1 {
		t.Errorf("confirmations = %d, want 1", env.mailer.confirmations)
	}
	if len(env.pusher.pushes) != 1 {
		t.Fatalf("staff pushes = %d, want 1", len(env.pusher.pushes))
	}
	if env.inventory.decremented[o.Items[0].ProductID] != 2 {
		t.Errorf("decremented %d units of first item, want 2", env.inventory.decremented[o.Items[0].ProductID])
	}
	if env.inventory.decremented[o.Items[1].ProductID] != 1 {
		t.Errorf("decremented %d units of second item, want 1", env.inventory.decremented[o.Items[1].ProductID])
	}
	if len(env.analytics.events) != 1 || env.analytics.events[0].Type != "order_created" {
		t.Errorf("analytics events = %+v, want one order_created", env.analytics.events)
	}
	if env.customers.accruedPoints != 42 {
		t.Errorf("accrued points = %d, want 42", env.customers.accruedPoints)
	}
	if !env.kitchen.tickets[o.ID] {
		t.Error("kitchen ticket missing after create")
	}
	if len(env.customers.mailingList) != 1 {
		t.Errorf("mailing list entries = %d, want 1", len(env.customers.mailingList))
	}
	if env.orders.reviewReason != "" {
		t.Errorf("unflagged order got review reason %q", env.orders.reviewReason)
	}

	if len(env.orders.outcomes) != 8 {
		t.Fatalf("outcomes recorded = %d, want 8", len(env.orders.outcomes))
	}
	for _, outcome := range env.orders.outcomes {
		if !outcome.OK {
			t.Errorf("handler %s failed: %s", outcome.Handler, outcome.Error)
		}
	}
}

func TestHandleEventSettlesDespiteFailingHandler(t *testing.T) {
	o := testOrder()
	env := newDispatchEnv(t, o)
	env.mailer.confirmErr = errors.New("smtp unreachable")

	if err := env.service.HandleEvent(context.Background(), createdEvent(o)); err != nil {
		t.Fatalf("HandleEvent should settle, got %v", err)
	}

	if len(env.pusher.pushes) != 1 {
		t.Error("staff push skipped after email failure")
	}
	if len(env.inventory.decremented) != 2 {
		t.Error("inventory decrement skipped after email failure")
	}
	if !env.kitchen.tickets[o.ID] {
		t.Error("kitchen ticket skipped after email failure")
	}

	var emailOutcome *effect.Outcome
	for i := range env.orders.outcomes {
		if env.orders.outcomes[i].Handler == "confirmation_email" {
			emailOutcome = &env.orders.outcomes[i]
		}
	}
	if emailOutcome == nil {
		t.Fatal("confirmation_email outcome not recorded")
	}
	if emailOutcome.OK || !strings.Contains(emailOutcome.Error, "smtp unreachable") {
		t.Errorf("confirmation_email outcome = %+v, want failure with cause", emailOutcome)
	}
}

func TestHandleEventLoadFailureIsReturned(t *testing.T) {
	o := testOrder()
	env := newDispatchEnv(t, o)
	env.orders.getErr = order.ErrNotFound

	err := env.service.HandleEvent(context.Background(), createdEvent(o))
	if !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("HandleEvent error = %v, want wrapped ErrNotFound", err)
	}
	if len(env.orders.outcomes) != 0 {
		t.Errorf("outcomes recorded on load failure: %+v", env.orders.outcomes)
	}
}

func TestHandleEventFraudFlags(t *testing.T) {
	tests := []struct {
		name        string
		totalCents  int64
		hourlyCount int
		wantFlag    bool
	}{
		{name: "normal order", totalCents: 4250, hourlyCount: 1, wantFlag: false},
		{name: "total over threshold", totalCents: 50001, hourlyCount: 1, wantFlag: true},
		{name: "too many orders per hour", totalCents: 4250, hourlyCount: 6, wantFlag: true},
		{name: "at thresholds exactly", totalCents: 50000, hourlyCount: 5, wantFlag: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOrder()
			o.TotalCents = tt.totalCents
			env := newDispatchEnv(t, o)
			env.orderRepo.hourlyCount = tt.hourlyCount

			if err := env.service.HandleEvent(context.Background(), createdEvent(o)); err != nil {
				t.Fatalf("HandleEvent: %v", err)
			}

			flagged := env.orders.reviewReason != ""
			if flagged != tt.wantFlag {
				t.Errorf("flagged = %v (reason %q), want %v", flagged, env.orders.reviewReason, tt.wantFlag)
			}
		})
	}
}

func TestHandleEventConfirmedSetsEstimate(t *testing.T) {
	o := testOrder()
	o.Status = order.StatusConfirmed
	o.SpecialInstructions = "no onions"
	env := newDispatchEnv(t, o)

	ev := statusEvent(o, order.StatusPending, order.StatusConfirmed)
	if err := env.service.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	// 15 base + 2x3 units + 5 for instructions.
	if env.orders.estimateMins != 26 {
		t.Errorf("estimate = %d minutes, want 26", env.orders.estimateMins)
	}
}

func TestHandleEventReadyNotifiesByOrderType(t *testing.T) {
	t.Run("takeaway notifies customer", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusReady
		o.Contact.PushToken = "customer-device"
		env := newDispatchEnv(t, o)

		ev := statusEvent(o, order.StatusPreparing, order.StatusReady)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}

		if len(env.pusher.pushes) != 1 || env.pusher.pushes[0][0] != "customer-device" {
			t.Fatalf("pushes = %+v, want one to customer-device", env.pusher.pushes)
		}
	})

	t.Run("takeaway falls back to email without token", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusReady
		env := newDispatchEnv(t, o)

		ev := statusEvent(o, order.StatusPreparing, order.StatusReady)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}

		if env.mailer.statusUpdates != 1 {
			t.Errorf("status update emails = %d, want 1", env.mailer.statusUpdates)
		}
		if len(env.pusher.pushes) != 0 {
			t.Errorf("unexpected pushes %+v", env.pusher.pushes)
		}
	})

	t.Run("delivery pushes assigned driver", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusReady
		o.Type = order.TypeDelivery
		o.DeliveryAddress = "Bahnhofstrasse 1, Zürich"
		driverID := uuid.New()
		o.StaffID = &driverID
		env := newDispatchEnv(t, o)
		env.staff.driver = &staff.Member{
			ID:           driverID,
			Role:         staff.RoleDriver,
			DeviceTokens: []string{"driver-device"},
			Active:       true,
		}

		ev := statusEvent(o, order.StatusPreparing, order.StatusReady)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}

		if len(env.pusher.pushes) != 1 || env.pusher.pushes[0][0] != "driver-device" {
			t.Fatalf("pushes = %+v, want one to driver-device", env.pusher.pushes)
		}
	})

	t.Run("delivery without driver records failure", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusReady
		o.Type = order.TypeDelivery
		env := newDispatchEnv(t, o)

		ev := statusEvent(o, order.StatusPreparing, order.StatusReady)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent should settle, got %v", err)
		}

		if len(env.orders.outcomes) != 1 || env.orders.outcomes[0].OK {
			t.Fatalf("outcomes = %+v, want one failed ready_notify", env.orders.outcomes)
		}
	})
}

func TestHandleEventDeliveredSchedulesFeedback(t *testing.T) {
	o := testOrder()
	o.Status = order.StatusDelivered
	env := newDispatchEnv(t, o)

	before := time.Now()
	ev := statusEvent(o, order.StatusReady, order.StatusDelivered)
	if err := env.service.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(env.scheduler.jobs) != 1 {
		t.Fatalf("scheduled jobs = %d, want 1", len(env.scheduler.jobs))
	}
	delay := env.scheduler.at[0].Sub(before)
	if delay < 59*time.Minute || delay > 61*time.Minute {
		t.Errorf("feedback scheduled %v out, want about an hour", delay)
	}

	env.scheduler.jobs[0]()
	if env.mailer.feedbacks != 1 {
		t.Errorf("feedback emails after job run = %d, want 1", env.mailer.feedbacks)
	}
}

func TestHandleEventCompletedRecordsMetricsAndClearsTicket(t *testing.T) {
	o := testOrder()
	o.Status = order.StatusCompleted
	created := time.Now().Add(-50 * time.Minute)
	confirmed := created.Add(5 * time.Minute)
	ready := confirmed.Add(20 * time.Minute)
	delivered := ready.Add(10 * time.Minute)
	completed := delivered.Add(15 * time.Minute)
	o.CreatedAt = created
	o.ConfirmedAt = &confirmed
	o.ReadyAt = &ready
	o.DeliveredAt = &delivered
	o.CompletedAt = &completed

	env := newDispatchEnv(t, o)
	env.kitchen.tickets = map[uuid.UUID]bool{o.ID: true}

	ev := statusEvent(o, order.StatusDelivered, order.StatusCompleted)
	if err := env.service.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(env.analytics.metrics) != 1 {
		t.Fatalf("metrics rows = %d, want 1", len(env.analytics.metrics))
	}
	m := env.analytics.metrics[0]
	if m.ConfirmationSeconds != 300 || m.PreparationSeconds != 1200 || m.DeliverySeconds != 600 || m.TotalSeconds != 3000 {
		t.Errorf("metrics = %+v, want 300/1200/600/3000 seconds", m)
	}
	if env.kitchen.tickets[o.ID] {
		t.Error("kitchen ticket still present after completion")
	}
}

func TestHandleEventCancelledRestocksAndRefunds(t *testing.T) {
	t.Run("paid order enqueues refund", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusCancelled
		o.PaymentStatus = order.PaymentPaid
		o.CancelReason = "customer no-show"
		env := newDispatchEnv(t, o)

		ev := statusEvent(o, order.StatusReady, order.StatusCancelled)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}

		if env.inventory.restocked[o.Items[0].ProductID] != 2 {
			t.Errorf("restocked %d units of first item, want 2", env.inventory.restocked[o.Items[0].ProductID])
		}
		if len(env.refunds.requests) != 1 {
			t.Fatalf("refund requests = %d, want 1", len(env.refunds.requests))
		}
		req := env.refunds.requests[0]
		if req.AmountCents != o.TotalCents || req.Reason != "customer no-show" {
			t.Errorf("refund request = %+v", req)
		}
		if env.mailer.cancellations != 1 {
			t.Errorf("cancellation emails = %d, want 1", env.mailer.cancellations)
		}
	})

	t.Run("unpaid order skips refund", func(t *testing.T) {
		o := testOrder()
		o.Status = order.StatusCancelled
		o.PaymentStatus = order.PaymentPending
		env := newDispatchEnv(t, o)

		ev := statusEvent(o, order.StatusPending, order.StatusCancelled)
		if err := env.service.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}

		if len(env.refunds.requests) != 0 {
			t.Errorf("refund requests = %+v, want none", env.refunds.requests)
		}
		if len(env.inventory.restocked) != 2 {
			t.Error("items not restocked for unpaid cancellation")
		}
	})
}

func TestHandleEventRefundedWritesLedger(t *testing.T) {
	o := testOrder()
	o.Status = order.StatusRefunded
	o.TotalCents = 10000
	env := newDispatchEnv(t, o)

	ev := statusEvent(o, order.StatusCompleted, order.StatusRefunded)
	if err := env.service.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(env.ledger.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(env.ledger.entries))
	}
	entry := env.ledger.entries[0]
	if entry.GrossCents != 10000 {
		t.Errorf("gross = %d, want 10000", entry.GrossCents)
	}
	// 2.5% platform fee, half-up.
	if entry.PlatformFeeCents != 250 {
		t.Errorf("platform fee = %d, want 250", entry.PlatformFeeCents)
	}
	if entry.NetCents != 9750 {
		t.Errorf("net = %d, want 9750", entry.NetCents)
	}
}
