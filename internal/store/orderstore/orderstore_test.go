package orderstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/event"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

type fakeLoader struct {
	orders    []order.Order
	err       error
	gotFilter *order.QueryOrdersModel
}

func (f *fakeLoader) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}

	return f.orders, nil
}

type fakeMutator struct {
	err    error
	result *order.Order
	calls  []string
}

func (f *fakeMutator) settle(call string) (*order.Order, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}

	return f.result, nil
}

func (f *fakeMutator) UpdateStatus(_ context.Context, _, _ uuid.UUID, _ order.Status, _ string) (*order.Order, error) {
	return f.settle("UpdateStatus")
}

func (f *fakeMutator) Cancel(_ context.Context, _, _ uuid.UUID, _ string) (*order.Order, error) {
	return f.settle("Cancel")
}

func (f *fakeMutator) Refund(_ context.Context, _, _ uuid.UUID, _ string) (*order.Order, error) {
	return f.settle("Refund")
}

func (f *fakeMutator) AssignStaff(_ context.Context, _, _, _ uuid.UUID) (*order.Order, error) {
	return f.settle("AssignStaff")
}

func (f *fakeMutator) UpdatePreparationTime(_ context.Context, _, _ uuid.UUID, _ int) (*order.Order, error) {
	return f.settle("UpdatePreparationTime")
}

func (f *fakeMutator) UpdateItemStatus(_ context.Context, _, _, _ uuid.UUID, _ orderitem.Status) (*order.Order, error) {
	return f.settle("UpdateItemStatus")
}

func (f *fakeMutator) AddNote(_ context.Context, _, _ uuid.UUID, _ order.Note) (*order.Order, error) {
	return f.settle("AddNote")
}

type fakeSubscription struct {
	ch chan event.ChangeRecord
}

func (f *fakeSubscription) Records() <-chan event.ChangeRecord {
	return f.ch
}

func (f *fakeSubscription) Close() error {
	close(f.ch)

	return nil
}

type fakeFeed struct {
	sub *fakeSubscription
}

func (f *fakeFeed) Subscribe(_ context.Context, _ uuid.UUID) (Subscription, error) {
	return f.sub, nil
}

func mirrorOrder(name, email string, status order.Status, createdAt time.Time) order.Order {
	return order.Order{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		Number:        "E-260821-0001",
		Status:        status,
		Type:          order.TypeTakeaway,
		PaymentStatus: order.PaymentPending,
		TotalCents:    2000,
		Currency:      currency.CurrencyCHF,
		Contact:       order.Contact{Name: name, Email: email},
		CreatedAt:     createdAt,
	}
}

func TestLoadCapsPageSize(t *testing.T) {
	loader := &fakeLoader{}
	s := MustNewStore(WithLoader(loader), WithTenantID(uuid.New()))

	if err := s.Load(context.Background(), &order.QueryOrdersModel{Limit: 500}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loader.gotFilter.Limit != 100 {
		t.Errorf("limit sent = %d, want 100", loader.gotFilter.Limit)
	}

	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load with nil filter: %v", err)
	}
	if loader.gotFilter.Limit != 100 {
		t.Errorf("default limit = %d, want 100", loader.gotFilter.Limit)
	}
	if loader.gotFilter.TenantID == uuid.Nil {
		t.Error("tenant id not set on filter")
	}
}

func TestFilteredOrdersAppliesAllFiltersTogether(t *testing.T) {
	now := time.Now()
	var seed []order.Order

	// Ten orders; exactly two are pending or confirmed AND match "mia".
	match1 := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusPending, now.Add(-10*time.Minute))
	match2 := mirrorOrder("Jeremias Roth", "jr@example.ch", order.StatusConfirmed, now.Add(-5*time.Minute))
	seed = append(seed, match1, match2)
	seed = append(seed,
		mirrorOrder("Mia Keller", "mia@example.ch", order.StatusCompleted, now.Add(-1*time.Hour)),
		mirrorOrder("Mia Keller", "mia@example.ch", order.StatusCancelled, now.Add(-2*time.Hour)),
		mirrorOrder("Nils Weber", "nils@example.ch", order.StatusPending, now.Add(-3*time.Minute)),
		mirrorOrder("Nils Weber", "nils@example.ch", order.StatusConfirmed, now.Add(-4*time.Minute)),
		mirrorOrder("Sara Blum", "sara@example.ch", order.StatusPreparing, now.Add(-6*time.Minute)),
		mirrorOrder("Sara Blum", "sara@example.ch", order.StatusReady, now.Add(-7*time.Minute)),
		mirrorOrder("Tom Frei", "tom@example.ch", order.StatusDelivered, now.Add(-8*time.Minute)),
		mirrorOrder("Tom Frei", "tom@example.ch", order.StatusRefunded, now.Add(-9*time.Minute)),
	)

	s := MustNewStore(WithLoader(&fakeLoader{orders: seed}), WithTenantID(uuid.New()))
	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s.SetFilters(Filters{
		Statuses: []order.Status{order.StatusPending, order.StatusConfirmed},
		Search:   "mia",
	})

	got := s.FilteredOrders()
	if len(got) != 2 {
		t.Fatalf("filtered = %d orders, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != match2.ID || got[1].ID != match1.ID {
		t.Errorf("order of results wrong: got %s then %s", got[0].Contact.Name, got[1].Contact.Name)
	}

	s.ClearFilters()
	if len(s.FilteredOrders()) != len(seed) {
		t.Errorf("after ClearFilters got %d orders, want %d", len(s.FilteredOrders()), len(seed))
	}
}

func TestFilteredOrdersDateRangeInclusive(t *testing.T) {
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	inside := mirrorOrder("A", "a@example.ch", order.StatusPending, base)
	before := mirrorOrder("B", "b@example.ch", order.StatusPending, base.Add(-48*time.Hour))
	after := mirrorOrder("C", "c@example.ch", order.StatusPending, base.Add(48*time.Hour))

	s := MustNewStore(WithLoader(&fakeLoader{orders: []order.Order{inside, before, after}}), WithTenantID(uuid.New()))
	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	from := base.Add(-time.Hour)
	to := base.Add(time.Hour)
	s.SetFilters(Filters{From: &from, To: &to})

	got := s.FilteredOrders()
	if len(got) != 1 || got[0].ID != inside.ID {
		t.Fatalf("filtered = %+v, want only the in-range order", got)
	}

	// Bounds are inclusive.
	s.SetFilters(Filters{From: &base, To: &base})
	if got := s.FilteredOrders(); len(got) != 1 {
		t.Errorf("exact-bound filter matched %d, want 1", len(got))
	}
}

func TestApplyChangeNotifiesOncePerPendingOrder(t *testing.T) {
	var notified []order.Order
	s := MustNewStore(WithNotifier(func(o order.Order) {
		notified = append(notified, o)
	}))

	o := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusPending, time.Now())
	s.applyChange(event.ChangeRecord{Kind: event.ChangeCreated, Order: o, SentAt: time.Now()})
	s.applyChange(event.ChangeRecord{Kind: event.ChangeUpdated, Order: o, SentAt: time.Now()})

	if len(notified) != 1 {
		t.Fatalf("notified %d times for one pending order, want 1", len(notified))
	}

	o.Status = order.StatusConfirmed
	s.applyChange(event.ChangeRecord{Kind: event.ChangeUpdated, Order: o, SentAt: time.Now()})
	if len(notified) != 1 {
		t.Fatalf("status change re-notified, want still 1")
	}

	second := mirrorOrder("Nils Weber", "nils@example.ch", order.StatusPending, time.Now())
	s.applyChange(event.ChangeRecord{Kind: event.ChangeCreated, Order: second, SentAt: time.Now()})
	if len(notified) != 2 {
		t.Fatalf("notified %d times after second pending order, want 2", len(notified))
	}
}

func TestApplyChangeIgnoresOlderDays(t *testing.T) {
	s := MustNewStore()

	old := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusPending, time.Now().Add(-48*time.Hour))
	s.applyChange(event.ChangeRecord{Kind: event.ChangeUpdated, Order: old, SentAt: time.Now()})

	if _, ok := s.Get(old.ID); ok {
		t.Error("feed record for an older day landed in the mirror")
	}
}

func TestMutationKeepsOptimisticStateAndFlagsStale(t *testing.T) {
	o := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusReady, time.Now())
	mutator := &fakeMutator{err: errors.New("api unreachable")}
	s := MustNewStore(
		WithLoader(&fakeLoader{orders: []order.Order{o}}),
		WithMutator(mutator),
		WithTenantID(o.TenantID),
	)
	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := s.Cancel(context.Background(), o.ID, "guest left")
	if err == nil {
		t.Fatal("Cancel should surface the remote error")
	}

	got, ok := s.Get(o.ID)
	if !ok {
		t.Fatal("order gone from mirror")
	}
	if got.Status != order.StatusCancelled || got.CancelReason != "guest left" {
		t.Errorf("optimistic state dropped: %+v", got)
	}
	if !s.IsStale(o.ID) {
		t.Error("order not marked stale after remote failure")
	}

	// The next feed record reconciles and clears the flag.
	o.Status = order.StatusReady
	s.applyChange(event.ChangeRecord{Kind: event.ChangeUpdated, Order: o, SentAt: time.Now()})
	if s.IsStale(o.ID) {
		t.Error("stale flag survived feed reconciliation")
	}
	got, _ = s.Get(o.ID)
	if got.Status != order.StatusReady {
		t.Errorf("status = %s after reconciliation, want ready", got.Status)
	}
}

func TestMutationReconcilesFromRemoteResult(t *testing.T) {
	o := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusReady, time.Now())
	o.Items = []orderitem.OrderItem{{ID: uuid.New(), Name: "Rösti", Quantity: 1, Status: orderitem.StatusDone}}

	authoritative := o
	authoritative.Status = order.StatusCompleted
	completedAt := time.Now()
	authoritative.CompletedAt = &completedAt
	authoritative.Items = nil

	mutator := &fakeMutator{result: &authoritative}
	s := MustNewStore(
		WithLoader(&fakeLoader{orders: []order.Order{o}}),
		WithMutator(mutator),
		WithTenantID(o.TenantID),
	)
	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.UpdateStatus(context.Background(), o.ID, order.StatusCompleted, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, _ := s.Get(o.ID)
	if got.CompletedAt == nil {
		t.Error("server timestamps not taken over")
	}
	if len(got.Items) != 1 {
		t.Error("mirror items dropped when remote result came without them")
	}
	if s.IsStale(o.ID) {
		t.Error("order stale after successful mutation")
	}
	if len(mutator.calls) != 1 || mutator.calls[0] != "UpdateStatus" {
		t.Errorf("remote calls = %v", mutator.calls)
	}
}

func TestStatsTrackTodayOnly(t *testing.T) {
	now := time.Now()
	paidToday := mirrorOrder("A", "a@example.ch", order.StatusCompleted, now)
	paidToday.PaymentStatus = order.PaymentPaid
	paidToday.TotalCents = 3000

	unpaidToday := mirrorOrder("B", "b@example.ch", order.StatusPending, now)
	unpaidToday.TotalCents = 1500

	paidYesterday := mirrorOrder("C", "c@example.ch", order.StatusCompleted, now.Add(-48*time.Hour))
	paidYesterday.PaymentStatus = order.PaymentPaid
	paidYesterday.TotalCents = 9999

	s := MustNewStore(
		WithLoader(&fakeLoader{orders: []order.Order{paidToday, unpaidToday, paidYesterday}}),
		WithTenantID(uuid.New()),
	)
	if err := s.Load(context.Background(), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	stats := s.Stats()
	if stats.TodayCount != 2 {
		t.Errorf("today count = %d, want 2", stats.TodayCount)
	}
	if stats.TodayRevenueCents != 3000 {
		t.Errorf("today revenue = %d, want 3000", stats.TodayRevenueCents)
	}
	if stats.ByStatus[order.StatusCompleted] != 2 {
		t.Errorf("completed count = %d, want 2 across all days", stats.ByStatus[order.StatusCompleted])
	}
	if stats.ByStatus[order.StatusPending] != 1 {
		t.Errorf("pending count = %d, want 1", stats.ByStatus[order.StatusPending])
	}
}

func TestSubscribeLifecycle(t *testing.T) {
	feed := &fakeFeed{sub: &fakeSubscription{ch: make(chan event.ChangeRecord, 4)}}
	s := MustNewStore(WithFeed(feed), WithTenantID(uuid.New()))

	if err := s.Subscribe(context.Background()); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := s.Subscribe(context.Background()); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("second Subscribe = %v, want ErrAlreadySubscribed", err)
	}

	o := mirrorOrder("Mia Keller", "mia@example.ch", order.StatusPending, time.Now())
	feed.sub.ch <- event.ChangeRecord{Kind: event.ChangeCreated, Order: o, SentAt: time.Now()}

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := s.Get(o.ID); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("feed record never reached the mirror")
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.Unsubscribe()

	// A fresh subscription must work after unsubscribing.
	feed.sub = &fakeSubscription{ch: make(chan event.ChangeRecord)}
	if err := s.Subscribe(context.Background()); err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	s.Unsubscribe()
}
