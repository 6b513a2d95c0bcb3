package orderstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/event"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

// maxPageSize caps one-shot loads.
const maxPageSize = 100

var ErrAlreadySubscribed = errors.New("store is already subscribed")

// Loader performs the one-shot query behind Load. The HTTP API client and
// the order repository both satisfy it.
type Loader interface {
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// Mutator performs the remote half of every order mutation.
type Mutator interface {
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status order.Status, reason string) (*order.Order, error)
	Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error)
	Refund(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error)
	AssignStaff(ctx context.Context, tenantID, orderID, staffID uuid.UUID) (*order.Order, error)
	UpdatePreparationTime(ctx context.Context, tenantID, orderID uuid.UUID, minutes int) (*order.Order, error)
	UpdateItemStatus(ctx context.Context, tenantID, orderID, itemID uuid.UUID, status orderitem.Status) (*order.Order, error)
	AddNote(ctx context.Context, tenantID, orderID uuid.UUID, note order.Note) (*order.Order, error)
}

// Subscription is one live feed attachment. Closing it ends the record
// channel.
type Subscription interface {
	Records() <-chan event.ChangeRecord
	Close() error
}

// Feed attaches the store to the tenant's live order feed.
type Feed interface {
	Subscribe(ctx context.Context, tenantID uuid.UUID) (Subscription, error)
}

// Filters narrow FilteredOrders. Zero members do not constrain; set members
// combine with AND.
type Filters struct {
	Statuses        []order.Status
	Types           []order.Type
	PaymentStatuses []order.PaymentStatus

	// From and To bound the creation time, inclusive.
	From *time.Time
	To   *time.Time

	// Search matches the order number and the contact's name, email and
	// phone, case-insensitively.
	Search string
}

func (f Filters) matches(o *order.Order) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, o.Type) {
		return false
	}
	if len(f.PaymentStatuses) > 0 && !slices.Contains(f.PaymentStatuses, o.PaymentStatus) {
		return false
	}
	if f.From != nil && o.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && o.CreatedAt.After(*f.To) {
		return false
	}

	return o.MatchesSearch(f.Search)
}

// Store mirrors one tenant's orders on the client. Load fills it, the feed
// keeps it fresh, mutations apply optimistically before the remote call.
// All methods are safe for concurrent use.
type Store struct {
	loader   Loader
	mutator  Mutator
	feed     Feed
	tenantID uuid.UUID

	// notify fires once per newly seen pending order.
	notify func(o order.Order)

	mu          sync.RWMutex
	orders      map[uuid.UUID]order.Order
	stale       map[uuid.UUID]bool
	seenPending map[uuid.UUID]bool
	filters     Filters
	stats       order.Stats

	subMu   sync.Mutex
	sub     Subscription
	subDone chan struct{}
}

// option is a function that configures the Store.
type option func(*Store)

// MustNewStore creates a new Store.
func MustNewStore(opts ...option) *Store {
	s := &Store{
		orders:      make(map[uuid.UUID]order.Order),
		stale:       make(map[uuid.UUID]bool),
		seenPending: make(map[uuid.UUID]bool),
		stats:       order.Stats{ByStatus: make(map[order.Status]int)},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithLoader sets the one-shot loader for the Store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLoader(loader Loader) option {
	return func(s *Store) {
		s.loader = loader
	}
}

// WithMutator sets the remote mutator for the Store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMutator(mutator Mutator) option {
	return func(s *Store) {
		s.mutator = mutator
	}
}

// WithFeed sets the live feed for the Store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFeed(feed Feed) option {
	return func(s *Store) {
		s.feed = feed
	}
}

// WithTenantID scopes the Store to one tenant.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTenantID(tenantID uuid.UUID) option {
	return func(s *Store) {
		s.tenantID = tenantID
	}
}

// WithNotifier sets the new-order notifier for the Store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(notify func(o order.Order)) option {
	return func(s *Store) {
		s.notify = notify
	}
}

// Load replaces the mirror with a one-shot query result. Pending orders
// already present count as seen, so the notifier stays quiet for history.
func (s *Store) Load(ctx context.Context, filter *order.QueryOrdersModel) error {
	if filter == nil {
		filter = &order.QueryOrdersModel{}
	}
	filter.TenantID = s.tenantID
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	orders, err := s.loader.Query(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[uuid.UUID]order.Order, len(orders))
	s.stale = make(map[uuid.UUID]bool)
	for _, o := range orders {
		s.orders[o.ID] = o
		if o.Status == order.StatusPending {
			s.seenPending[o.ID] = true
		}
	}
	s.recomputeStatsLocked()

	return nil
}

// Subscribe attaches the store to the live feed and keeps the mirror fresh
// until Unsubscribe.
func (s *Store) Subscribe(ctx context.Context) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.sub != nil {
		return ErrAlreadySubscribed
	}

	sub, err := s.feed.Subscribe(ctx, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to subscribe to order feed: %w", err)
	}

	done := make(chan struct{})
	s.sub = sub
	s.subDone = done

	go func() {
		defer close(done)
		for rec := range sub.Records() {
			s.applyChange(rec)
		}
	}()

	return nil
}

// Unsubscribe detaches from the feed and waits for in-flight records to be
// applied.
func (s *Store) Unsubscribe() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.sub == nil {
		return
	}

	_ = s.sub.Close()
	<-s.subDone
	s.sub = nil
	s.subDone = nil
}

// applyChange upserts one feed record. The live view is scoped to today's
// orders; anything older is ignored.
func (s *Store) applyChange(rec event.ChangeRecord) {
	o := rec.Order
	if !sameDay(o.CreatedAt, time.Now()) {
		return
	}

	s.mu.Lock()
	s.orders[o.ID] = o
	delete(s.stale, o.ID)

	firstPending := o.Status == order.StatusPending && !s.seenPending[o.ID]
	if firstPending {
		s.seenPending[o.ID] = true
	}
	s.recomputeStatsLocked()
	notify := s.notify
	s.mu.Unlock()

	if firstPending && notify != nil {
		notify(o)
	}
}

// Get returns a copy of one mirrored order.
func (s *Store) Get(orderID uuid.UUID) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]

	return o, ok
}

// IsStale reports whether the order's last optimistic mutation failed
// remotely and has not been reconciled by the feed yet.
func (s *Store) IsStale(orderID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stale[orderID]
}

// SetFilters replaces the client-side filter set.
func (s *Store) SetFilters(f Filters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// ClearFilters drops every filter.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filters = Filters{}
	s.mu.Unlock()
}

// FilteredOrders returns the mirrored orders passing the current filters,
// newest first.
func (s *Store) FilteredOrders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if s.filters.matches(&o) {
			matched = append(matched, o)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched
}

// Stats returns the derived statistics snapshot.
func (s *Store) Stats() order.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := order.Stats{
		ByStatus:          make(map[order.Status]int, len(s.stats.ByStatus)),
		TodayCount:        s.stats.TodayCount,
		TodayRevenueCents: s.stats.TodayRevenueCents,
	}
	for status, count := range s.stats.ByStatus {
		stats.ByStatus[status] = count
	}

	return stats
}

// UpdateStatus moves the order to the status optimistically, then remotely.
func (s *Store) UpdateStatus(ctx context.Context, orderID uuid.UUID, status order.Status, reason string) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		o.Status = status
		switch status {
		case order.StatusCancelled:
			o.CancelReason = reason
		case order.StatusRefunded:
			o.RefundReason = reason
			o.PaymentStatus = order.PaymentRefunded
		}
	})

	updated, err := s.mutator.UpdateStatus(ctx, s.tenantID, orderID, status, reason)

	return s.settle(orderID, updated, err)
}

// Cancel cancels the order with a reason.
func (s *Store) Cancel(ctx context.Context, orderID uuid.UUID, reason string) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		o.Status = order.StatusCancelled
		o.CancelReason = reason
	})

	updated, err := s.mutator.Cancel(ctx, s.tenantID, orderID, reason)

	return s.settle(orderID, updated, err)
}

// Refund refunds the order with a reason.
func (s *Store) Refund(ctx context.Context, orderID uuid.UUID, reason string) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		o.Status = order.StatusRefunded
		o.RefundReason = reason
		o.PaymentStatus = order.PaymentRefunded
	})

	updated, err := s.mutator.Refund(ctx, s.tenantID, orderID, reason)

	return s.settle(orderID, updated, err)
}

// AssignStaff assigns a staff member to the order.
func (s *Store) AssignStaff(ctx context.Context, orderID, staffID uuid.UUID) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		o.StaffID = &staffID
	})

	updated, err := s.mutator.AssignStaff(ctx, s.tenantID, orderID, staffID)

	return s.settle(orderID, updated, err)
}

// UpdatePreparationTime sets the kitchen's own ready estimate.
func (s *Store) UpdatePreparationTime(ctx context.Context, orderID uuid.UUID, minutes int) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		readyAt := time.Now().Add(time.Duration(minutes) * time.Minute)
		o.PrepTimeMinutes = minutes
		o.EstimatedReadyAt = &readyAt
	})

	updated, err := s.mutator.UpdatePreparationTime(ctx, s.tenantID, orderID, minutes)

	return s.settle(orderID, updated, err)
}

// UpdateItemStatus moves one line item to the status.
func (s *Store) UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status orderitem.Status) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].Status = status
			}
		}
	})

	updated, err := s.mutator.UpdateItemStatus(ctx, s.tenantID, orderID, itemID, status)

	return s.settle(orderID, updated, err)
}

// AddNote appends a staff note to the order.
func (s *Store) AddNote(ctx context.Context, orderID uuid.UUID, note order.Note) error {
	s.applyOptimistic(orderID, func(o *order.Order) {
		o.Notes = append(o.Notes, note)
	})

	updated, err := s.mutator.AddNote(ctx, s.tenantID, orderID, note)

	return s.settle(orderID, updated, err)
}

// applyOptimistic mutates the local copy ahead of the remote call. Orders
// not in the mirror are left alone; the remote call still goes out.
func (s *Store) applyOptimistic(orderID uuid.UUID, mutate func(*order.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return
	}

	mutate(&o)
	o.UpdatedAt = time.Now()
	s.orders[orderID] = o
	s.recomputeStatsLocked()
}

// settle finishes a mutation. On failure the optimistic state is kept and
// the order is marked stale for the feed to reconcile; on success the
// authoritative copy replaces it.
func (s *Store) settle(orderID uuid.UUID, updated *order.Order, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.stale[orderID] = true

		return err
	}

	if updated != nil {
		// items may be carried by the mirror only
		if len(updated.Items) == 0 {
			if prev, ok := s.orders[updated.ID]; ok {
				updated.Items = prev.Items
			}
		}
		s.orders[updated.ID] = *updated
		delete(s.stale, updated.ID)
		s.recomputeStatsLocked()
	}

	return nil
}

func (s *Store) recomputeStatsLocked() {
	stats := order.Stats{ByStatus: make(map[order.Status]int)}
	dayStart := startOfToday()

	for _, o := range s.orders {
		stats.ByStatus[o.Status]++
		if o.CreatedAt.Before(dayStart) {
			continue
		}
		stats.TodayCount++
		if o.PaymentStatus == order.PaymentPaid {
			stats.TodayRevenueCents += o.TotalCents
		}
	}

	s.stats = stats
}

func startOfToday() time.Time {
	now := time.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()

	return ay == by && am == bm && ad == bd
}
