package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/interfaces/ieffectrepo"
	"github.com/eatech/platform/internal/dal/interfaces/ifeedrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iorderitemrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iorderrepo"
	"github.com/eatech/platform/internal/dal/interfaces/ioutboxrepo"
	"github.com/eatech/platform/internal/dal/interfaces/itenantrepo"
	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/dal/uow"
	"github.com/eatech/platform/internal/service/models/effect"
	"github.com/eatech/platform/internal/service/models/event"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/service/models/outbox"
)

// maxPageSize caps order listings.
const maxPageSize = 100

var (
	ErrNoItems                  = errors.New("order has no items")
	ErrNotAcceptingOrders       = errors.New("tenant is not accepting orders")
	ErrPaymentMethodNotAccepted = errors.New("payment method not accepted")
	ErrNotRefundable            = errors.New("order payment is not refundable")
)

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient   *postgres.Client
	tenantRepo itenantrepo.ITenantRepository
	effectRepo ieffectrepo.IEffectRepository
	feed       ifeedrepo.IFeedPublisher
}

func (s *OrderService) newUOW() unitOfWork {
	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithTenantRepository sets the tenant repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTenantRepository(tenantRepo itenantrepo.ITenantRepository) option {
	return func(s *OrderService) {
		s.tenantRepo = tenantRepo
	}
}

// WithEffectRepository sets the side-effect outcome repository for the
// OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEffectRepository(effectRepo ieffectrepo.IEffectRepository) option {
	return func(s *OrderService) {
		s.effectRepo = effectRepo
	}
}

// WithFeedPublisher sets the live feed publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFeedPublisher(feed ifeedrepo.IFeedPublisher) option {
	return func(s *OrderService) {
		s.feed = feed
	}
}

// UpdateStatusModel carries one status change request.
type UpdateStatusModel struct {
	TenantID  uuid.UUID
	OrderID   uuid.UUID
	NewStatus order.Status

	// StaffID is the acting staff member, when known.
	StaffID *uuid.UUID

	// Reason lands in CancelReason or RefundReason depending on the target
	// status.
	Reason string

	// EstimatedReadyAt and PrepTimeMinutes are set by the dispatcher when
	// confirming an order.
	EstimatedReadyAt *time.Time
	PrepTimeMinutes  int
}

// Create validates and persists a new order with its items and an
// order.created outbox event in one transaction, then publishes a change
// record to the live feed.
func (s *OrderService) Create(ctx context.Context, o order.Order) (order.Order, error) {
	now := time.Now()

	if len(o.Items) == 0 {
		return order.Order{}, ErrNoItems
	}

	t, err := s.tenantRepo.GetByID(ctx, o.TenantID)
	if err != nil {
		return order.Order{}, err
	}

	if o.PaymentMethod == "" {
		o.PaymentMethod = order.PaymentCash
	}
	if !t.AcceptsPaymentMethod(o.PaymentMethod) {
		return order.Order{}, ErrPaymentMethodNotAccepted
	}

	work := s.newUOW()

	localNow := now.In(t.Location())
	monthStart := time.Date(localNow.Year(), localNow.Month(), 1, 0, 0, 0, 0, t.Location())
	monthlyOrders, err := work.OrderRepository().CountSince(ctx, o.TenantID, monthStart)
	if err != nil {
		return order.Order{}, err
	}
	if !t.CanAcceptOrders(now, monthlyOrders) {
		return order.Order{}, ErrNotAcceptingOrders
	}

	o.Currency = t.Currency
	o.ComputeTotals(t.TaxRateBps, t.ServiceFeeBps)
	o.Status = order.StatusPending
	o.PaymentStatus = order.PaymentPending
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	number, err := work.OrderRepository().NextNumber(ctx, o.TenantID, localNow)
	if err != nil {
		return order.Order{}, err
	}
	o.Number = number

	o, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if o.Items[i].Status == "" {
			o.Items[i].Status = orderitem.StatusQueued
		}
	}
	items, err := work.OrderItemRepository().BulkInsert(ctx, o.Items)
	if err != nil {
		return order.Order{}, err
	}
	o.Items = items

	msg, err := newOutboxEvent(event.OrderEvent{
		ID:         uuid.New(),
		Kind:       event.KindOrderCreated,
		TenantID:   o.TenantID,
		OrderID:    o.ID,
		NewStatus:  o.Status,
		OccurredAt: now,
	}, now)
	if err != nil {
		return order.Order{}, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	s.publishChange(ctx, event.ChangeCreated, &o)

	return o, nil
}

// UpdateStatus runs the transition validator against the stored order and,
// when the move is legal, persists the new status and its timestamp together
// with an order.status_changed outbox event. A request for the status the
// order already has returns the order untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, model UpdateStatusModel) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	o, err := work.OrderRepository().GetByID(ctx, model.TenantID, model.OrderID)
	if err != nil {
		return nil, err
	}

	if model.NewStatus == order.StatusRefunded && o.PaymentStatus != order.PaymentPaid {
		return nil, ErrNotRefundable
	}

	oldStatus := o.Status
	if err := o.Transition(model.NewStatus, now); err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items

	if o.Status == oldStatus {
		return o, nil
	}

	if model.StaffID != nil {
		o.StaffID = model.StaffID
	}
	switch o.Status {
	case order.StatusCancelled:
		o.CancelReason = model.Reason
	case order.StatusRefunded:
		o.RefundReason = model.Reason
		o.PaymentStatus = order.PaymentRefunded
	}
	if model.EstimatedReadyAt != nil {
		o.EstimatedReadyAt = model.EstimatedReadyAt
		o.PrepTimeMinutes = model.PrepTimeMinutes
	}
	o.UpdatedAt = now

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	msg, err := newOutboxEvent(event.OrderEvent{
		ID:         uuid.New(),
		Kind:       event.KindOrderStatusChanged,
		TenantID:   o.TenantID,
		OrderID:    o.ID,
		OldStatus:  oldStatus,
		NewStatus:  o.Status,
		OccurredAt: now,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishChange(ctx, event.ChangeUpdated, o)

	return o, nil
}

// Cancel moves the order to cancelled with a reason.
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error) {
	return s.UpdateStatus(ctx, UpdateStatusModel{
		TenantID:  tenantID,
		OrderID:   orderID,
		NewStatus: order.StatusCancelled,
		Reason:    reason,
		StaffID:   staffID,
	})
}

// Refund moves the order to refunded with a reason. The payment must have
// been captured first.
func (s *OrderService) Refund(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error) {
	return s.UpdateStatus(ctx, UpdateStatusModel{
		TenantID:  tenantID,
		OrderID:   orderID,
		NewStatus: order.StatusRefunded,
		Reason:    reason,
		StaffID:   staffID,
	})
}

// AssignStaff attaches a staff member to the order.
func (s *OrderService) AssignStaff(ctx context.Context, tenantID, orderID, staffID uuid.UUID) (*order.Order, error) {
	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.StaffID = &staffID
	})
}

// UpdatePreparationTime overrides the kitchen's estimate.
func (s *OrderService) UpdatePreparationTime(ctx context.Context, tenantID, orderID uuid.UUID, minutes int) (*order.Order, error) {
	readyAt := time.Now().Add(time.Duration(minutes) * time.Minute)

	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.PrepTimeMinutes = minutes
		o.EstimatedReadyAt = &readyAt
	})
}

// SetEstimatedReady persists the dispatcher's ready-time estimate.
func (s *OrderService) SetEstimatedReady(ctx context.Context, tenantID, orderID uuid.UUID, readyAt time.Time, minutes int) (*order.Order, error) {
	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.EstimatedReadyAt = &readyAt
		o.PrepTimeMinutes = minutes
	})
}

// SetReviewFlag marks the order for manual review.
func (s *OrderService) SetReviewFlag(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error) {
	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.RequiresReview = true
		o.ReviewReason = reason
	})
}

// MarkPaid records a captured payment, normally from the payment webhook.
func (s *OrderService) MarkPaid(ctx context.Context, tenantID, orderID uuid.UUID, method order.PaymentMethod) (*order.Order, error) {
	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.PaymentStatus = order.PaymentPaid
		if method != "" {
			o.PaymentMethod = method
		}
	})
}

// AddNote appends a free-text note to the order.
func (s *OrderService) AddNote(ctx context.Context, tenantID, orderID uuid.UUID, note order.Note) (*order.Order, error) {
	note.CreatedAt = time.Now()

	return s.applyPartial(ctx, tenantID, orderID, func(o *order.Order) {
		o.Notes = append(o.Notes, note)
	})
}

// UpdateItemStatus moves one line item through the kitchen.
func (s *OrderService) UpdateItemStatus(ctx context.Context, tenantID, orderID, itemID uuid.UUID, status orderitem.Status) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := work.OrderItemRepository().UpdateStatus(ctx, orderID, itemID, status); err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = items

	s.publishChange(ctx, event.ChangeUpdated, o)

	return o, nil
}

// Get retrieves one order with its items.
func (s *OrderService) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

// Query retrieves orders with their items based on filter criteria, newest
// first. The page size is capped at 100.
func (s *OrderService) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := work.OrderItemRepository().Query(ctx, ids)
	if err != nil {
		return nil, err
	}
	attachItems(orders, items)

	return orders, nil
}

// Stats aggregates today's per-status counts and paid revenue on the
// tenant's local clock.
func (s *OrderService) Stats(ctx context.Context, tenantID uuid.UUID) (order.Stats, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return order.Stats{}, err
	}

	localNow := time.Now().In(t.Location())
	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, t.Location())

	work := s.newUOW()

	return work.OrderRepository().Stats(ctx, tenantID, dayStart)
}

// RecordEffectOutcomes persists the dispatcher's per-handler results.
func (s *OrderService) RecordEffectOutcomes(ctx context.Context, outcomes []effect.Outcome) error {
	return s.effectRepo.BulkInsert(ctx, outcomes)
}

// applyPartial loads the order, applies the mutation and persists it, then
// publishes a feed record. Partial updates carry no outbox event.
func (s *OrderService) applyPartial(ctx context.Context, tenantID, orderID uuid.UUID, mutate func(*order.Order)) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	o, err := work.OrderRepository().GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	mutate(o)
	o.UpdatedAt = now

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishChange(ctx, event.ChangeUpdated, o)

	return o, nil
}

// publishChange pushes the order snapshot to the tenant's live feed. The
// feed is best-effort: failures are logged, never returned.
func (s *OrderService) publishChange(ctx context.Context, kind string, o *order.Order) {
	if s.feed == nil {
		return
	}

	rec := event.ChangeRecord{
		Kind:   kind,
		Order:  *o,
		SentAt: time.Now(),
	}
	if err := s.feed.PublishChange(ctx, rec); err != nil {
		slog.Error("Failed to publish order change", "order_id", o.ID, "error", err)
	}
}

func newOutboxEvent(ev event.OrderEvent, now time.Time) (outbox.OutboxMessage, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return outbox.OutboxMessage{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	return outbox.OutboxMessage{
		ExchangeName: event.ExchangeOrders,
		RoutingKey:   ev.RoutingKey(),
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   5,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}

func attachItems(orders []order.Order, items []orderitem.OrderItem) {
	byOrder := make(map[uuid.UUID][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
}
