package dispatchsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/eatech/platform/internal/dal/interfaces/ianalyticsrepo"
	"github.com/eatech/platform/internal/dal/interfaces/icustomerrepo"
	"github.com/eatech/platform/internal/dal/interfaces/ikitchenrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iledgerrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iorderrepo"
	"github.com/eatech/platform/internal/dal/interfaces/irefundqueue"
	"github.com/eatech/platform/internal/dal/interfaces/istaffrepo"
	"github.com/eatech/platform/internal/dal/interfaces/itenantrepo"
	"github.com/eatech/platform/internal/service/models/analytics"
	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/customer"
	"github.com/eatech/platform/internal/service/models/effect"
	"github.com/eatech/platform/internal/service/models/event"
	"github.com/eatech/platform/internal/service/models/ledger"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/service/models/refund"
	"github.com/eatech/platform/internal/service/models/tenant"
)

// DispatchService runs the side effects behind order lifecycle events. One
// event fans out to a fixed handler sequence; every handler runs, failures
// are captured per handler and recorded, none aborts the batch.
type DispatchService struct {
	orders    orderService
	inventory inventoryService
	mailer    mailer
	pusher    pusher
	scheduler scheduler

	orderRepo     iorderrepo.IOrderRepository
	tenantRepo    itenantrepo.ITenantRepository
	customerRepo  icustomerrepo.ICustomerRepository
	staffRepo     istaffrepo.IStaffRepository
	analyticsRepo ianalyticsrepo.IAnalyticsRepository
	ledgerRepo    iledgerrepo.ILedgerRepository
	kitchenRepo   ikitchenrepo.IKitchenRepository
	refundQueue   irefundqueue.IRefundQueue

	fraudTotalCents      int64
	fraudMaxHourlyOrders int
}

// orderService is the slice of the order service the dispatcher calls back
// into.
type orderService interface {
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error)
	SetEstimatedReady(ctx context.Context, tenantID, orderID uuid.UUID, readyAt time.Time, minutes int) (*order.Order, error)
	SetReviewFlag(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error)
	RecordEffectOutcomes(ctx context.Context, outcomes []effect.Outcome) error
}

type inventoryService interface {
	Decrement(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error)
	Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error)
}

type mailer interface {
	SendOrderConfirmation(ctx context.Context, t *tenant.Tenant, o *order.Order) error
	SendStatusUpdate(ctx context.Context, t *tenant.Tenant, o *order.Order) error
	SendCancellation(ctx context.Context, t *tenant.Tenant, o *order.Order) error
	SendFeedbackRequest(ctx context.Context, t *tenant.Tenant, o *order.Order) error
}

type pusher interface {
	Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// scheduler runs a named job once at a point in time.
type scheduler interface {
	ScheduleAt(at time.Time, name string, job func()) error
}

// option is a function that configures the DispatchService.
type option func(*DispatchService)

// MustNewDispatchService creates a new DispatchService. Fraud thresholds
// come from the dispatcher config section.
func MustNewDispatchService(opts ...option) *DispatchService {
	s := &DispatchService{
		fraudTotalCents:      viper.GetInt64("dispatcher.fraud_total_cents"),
		fraudMaxHourlyOrders: viper.GetInt("dispatcher.fraud_max_hourly_orders"),
	}

	if s.fraudTotalCents == 0 {
		s.fraudTotalCents = 50000
	}
	if s.fraudMaxHourlyOrders == 0 {
		s.fraudMaxHourlyOrders = 5
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderService sets the order service for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderService(orders orderService) option {
	return func(s *DispatchService) {
		s.orders = orders
	}
}

// WithInventoryService sets the inventory service for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithInventoryService(inventory inventoryService) option {
	return func(s *DispatchService) {
		s.inventory = inventory
	}
}

// WithMailer sets the customer mailer for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m mailer) option {
	return func(s *DispatchService) {
		s.mailer = m
	}
}

// WithPusher sets the device pusher for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPusher(p pusher) option {
	return func(s *DispatchService) {
		s.pusher = p
	}
}

// WithScheduler sets the one-time job scheduler for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithScheduler(sched scheduler) option {
	return func(s *DispatchService) {
		s.scheduler = sched
	}
}

// WithOrderRepository sets the order repository for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(orderRepo iorderrepo.IOrderRepository) option {
	return func(s *DispatchService) {
		s.orderRepo = orderRepo
	}
}

// WithTenantRepository sets the tenant repository for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTenantRepository(tenantRepo itenantrepo.ITenantRepository) option {
	return func(s *DispatchService) {
		s.tenantRepo = tenantRepo
	}
}

// WithCustomerRepository sets the customer repository for the
// DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(customerRepo icustomerrepo.ICustomerRepository) option {
	return func(s *DispatchService) {
		s.customerRepo = customerRepo
	}
}

// WithStaffRepository sets the staff repository for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStaffRepository(staffRepo istaffrepo.IStaffRepository) option {
	return func(s *DispatchService) {
		s.staffRepo = staffRepo
	}
}

// WithAnalyticsRepository sets the analytics repository for the
// DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAnalyticsRepository(analyticsRepo ianalyticsrepo.IAnalyticsRepository) option {
	return func(s *DispatchService) {
		s.analyticsRepo = analyticsRepo
	}
}

// WithLedgerRepository sets the ledger repository for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLedgerRepository(ledgerRepo iledgerrepo.ILedgerRepository) option {
	return func(s *DispatchService) {
		s.ledgerRepo = ledgerRepo
	}
}

// WithKitchenRepository sets the kitchen display repository for the
// DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithKitchenRepository(kitchenRepo ikitchenrepo.IKitchenRepository) option {
	return func(s *DispatchService) {
		s.kitchenRepo = kitchenRepo
	}
}

// WithRefundQueue sets the refund request queue for the DispatchService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRefundQueue(refundQueue irefundqueue.IRefundQueue) option {
	return func(s *DispatchService) {
		s.refundQueue = refundQueue
	}
}

// effectHandler is one named side effect of an event.
type effectHandler struct {
	name string
	run  func(ctx context.Context, t *tenant.Tenant, o *order.Order) error
}

// HandleEvent loads the order and tenant behind the event and runs the
// matching handler sequence. Only a load failure is returned to the caller;
// handler failures are logged and recorded but the event still settles.
func (s *DispatchService) HandleEvent(ctx context.Context, ev event.OrderEvent) error {
	ctx, span := otel.Tracer("service").Start(ctx, "DispatchService.HandleEvent")
	defer span.End()

	o, err := s.orders.Get(ctx, ev.TenantID, ev.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", ev.OrderID, err)
	}

	t, err := s.tenantRepo.GetByID(ctx, ev.TenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant %s: %w", ev.TenantID, err)
	}

	handlers := s.handlersFor(ev)
	outcomes := make([]effect.Outcome, 0, len(handlers))
	now := time.Now()

	for _, h := range handlers {
		outcome := effect.Outcome{
			EventID:   ev.ID,
			TenantID:  ev.TenantID,
			OrderID:   ev.OrderID,
			Handler:   h.name,
			OK:        true,
			CreatedAt: now,
		}

		if err := h.run(ctx, t, o); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			slog.Error("Side effect failed", "handler", h.name, "order", o.ID, "error", err)
		}

		outcomes = append(outcomes, outcome)
	}

	if err := s.orders.RecordEffectOutcomes(ctx, outcomes); err != nil {
		slog.Error("Failed to record effect outcomes", "event", ev.ID, "error", err)
	}

	return nil
}

func (s *DispatchService) handlersFor(ev event.OrderEvent) []effectHandler {
	switch ev.Kind {
	case event.KindOrderCreated:
		return []effectHandler{
			{name: "confirmation_email", run: s.sendConfirmationEmail},
			{name: "staff_push", run: s.pushNewOrderToStaff},
			{name: "inventory_decrement", run: s.decrementInventory},
			{name: "analytics_event", run: s.recordOrderCreated},
			{name: "fraud_check", run: s.flagSuspiciousOrder},
			{name: "loyalty_accrual", run: s.accrueLoyalty},
			{name: "kitchen_ticket", run: s.writeKitchenTicket},
			{name: "mailing_list", run: s.upsertMailingList},
		}
	case event.KindOrderStatusChanged:
		return s.statusHandlers(ev.NewStatus)
	default:
		return nil
	}
}

func (s *DispatchService) statusHandlers(newStatus order.Status) []effectHandler {
	switch newStatus {
	case order.StatusConfirmed:
		return []effectHandler{
			{name: "estimate_ready", run: s.setReadyEstimate},
		}
	case order.StatusPreparing:
		return []effectHandler{
			{name: "customer_notify", run: s.notifyPreparing},
		}
	case order.StatusReady:
		return []effectHandler{
			{name: "ready_notify", run: s.notifyReady},
		}
	case order.StatusDelivered:
		return []effectHandler{
			{name: "schedule_feedback", run: s.scheduleFeedbackEmail},
		}
	case order.StatusCompleted:
		return []effectHandler{
			{name: "order_metrics", run: s.recordOrderMetrics},
			{name: "kitchen_remove", run: s.removeKitchenTicket},
		}
	case order.StatusCancelled:
		return []effectHandler{
			{name: "restock_items", run: s.restockItems},
			{name: "refund_request", run: s.requestRefund},
			{name: "cancellation_email", run: s.sendCancellationEmail},
		}
	case order.StatusRefunded:
		return []effectHandler{
			{name: "ledger_entry", run: s.recordRefundLedger},
		}
	default:
		return nil
	}
}

func (s *DispatchService) sendConfirmationEmail(ctx context.Context, t *tenant.Tenant, o *order.Order) error {
	if o.Contact.Email == "" {
		return nil
	}

	return s.mailer.SendOrderConfirmation(ctx, t, o)
}

func (s *DispatchService) pushNewOrderToStaff(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	tokens, err := s.staffRepo.ActiveDeviceTokens(ctx, o.TenantID, nil)
	if err != nil {
		return fmt.Errorf("failed to collect staff device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	title := fmt.Sprintf("New order %s", o.Number)
	body := fmt.Sprintf("%d items, %s", o.ItemUnits(), formatCents(o.TotalCents, o.Currency))

	return s.pusher.Push(ctx, tokens, title, body, map[string]string{
		"orderId": o.ID.String(),
		"number":  o.Number,
	})
}

func (s *DispatchService) decrementInventory(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	var errs []error
	for _, item := range o.Items {
		if _, err := s.inventory.Decrement(ctx, o.TenantID, item.ProductID, item.Units()); err != nil {
			errs = append(errs, fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err))
		}
	}

	return errors.Join(errs...)
}

func (s *DispatchService) recordOrderCreated(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	payload, err := json.Marshal(map[string]any{
		"number":     o.Number,
		"totalCents": o.TotalCents,
		"orderType":  o.Type,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal analytics payload: %w", err)
	}

	return s.analyticsRepo.InsertEvent(ctx, analytics.Event{
		TenantID:  o.TenantID,
		OrderID:   o.ID,
		Type:      "order_created",
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}

// flagSuspiciousOrder applies the fraud heuristic. A flagged order is never
// blocked, only marked for manual review.
func (s *DispatchService) flagSuspiciousOrder(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	var reasons []string

	if o.TotalCents > s.fraudTotalCents {
		reasons = append(reasons, fmt.Sprintf("total %d exceeds %d cents", o.TotalCents, s.fraudTotalCents))
	}

	count, err := s.orderRepo.CountByContactSince(ctx, o.TenantID, o.Contact.Email, o.Contact.Phone, time.Now().Add(-time.Hour))
	if err != nil {
		return fmt.Errorf("failed to count recent orders by contact: %w", err)
	}
	if count > s.fraudMaxHourlyOrders {
		reasons = append(reasons, fmt.Sprintf("%d orders from the same contact within an hour", count))
	}

	if len(reasons) == 0 {
		return nil
	}

	if _, err := s.orders.SetReviewFlag(ctx, o.TenantID, o.ID, strings.Join(reasons, "; ")); err != nil {
		return fmt.Errorf("failed to flag order for review: %w", err)
	}

	return nil
}

func (s *DispatchService) accrueLoyalty(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	points := customer.PointsForTotal(o.TotalCents)
	if err := s.customerRepo.AccrueOnOrder(ctx, o.TenantID, o.Contact, o.TotalCents, points, time.Now()); err != nil {
		return fmt.Errorf("failed to accrue loyalty: %w", err)
	}

	return nil
}

func (s *DispatchService) writeKitchenTicket(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	return s.kitchenRepo.PutTicket(ctx, o)
}

func (s *DispatchService) upsertMailingList(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	return s.customerRepo.UpsertMailingList(ctx, o.TenantID, o.Contact.Email, o.Contact.Name, time.Now())
}

func (s *DispatchService) setReadyEstimate(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	minutes := order.EstimatePrepMinutes(o.ItemUnits(), o.SpecialInstructions != "")
	readyAt := time.Now().Add(time.Duration(minutes) * time.Minute)

	if _, err := s.orders.SetEstimatedReady(ctx, o.TenantID, o.ID, readyAt, minutes); err != nil {
		return fmt.Errorf("failed to set ready estimate: %w", err)
	}

	return nil
}

func (s *DispatchService) notifyPreparing(ctx context.Context, t *tenant.Tenant, o *order.Order) error {
	return s.notifyCustomer(ctx, t, o, fmt.Sprintf("Order %s is being prepared", o.Number))
}

func (s *DispatchService) notifyReady(ctx context.Context, t *tenant.Tenant, o *order.Order) error {
	if o.Type == order.TypeDelivery {
		return s.pushDriver(ctx, o)
	}

	return s.notifyCustomer(ctx, t, o, fmt.Sprintf("Order %s is ready for pickup", o.Number))
}

// notifyCustomer pushes when the contact left a device token and falls back
// to email otherwise. A contact with neither is skipped.
func (s *DispatchService) notifyCustomer(ctx context.Context, t *tenant.Tenant, o *order.Order, title string) error {
	if o.Contact.PushToken != "" {
		data := map[string]string{
			"orderId": o.ID.String(),
			"status":  string(o.Status),
		}

		return s.pusher.Push(ctx, []string{o.Contact.PushToken}, t.Name, title, data)
	}

	if o.Contact.Email != "" {
		return s.mailer.SendStatusUpdate(ctx, t, o)
	}

	return nil
}

func (s *DispatchService) pushDriver(ctx context.Context, o *order.Order) error {
	if o.StaffID == nil {
		return errors.New("no driver assigned to delivery order")
	}

	driver, err := s.staffRepo.GetByID(ctx, o.TenantID, *o.StaffID)
	if err != nil {
		return fmt.Errorf("failed to load assigned driver: %w", err)
	}
	if len(driver.DeviceTokens) == 0 {
		return nil
	}

	title := fmt.Sprintf("Order %s ready for delivery", o.Number)

	return s.pusher.Push(ctx, driver.DeviceTokens, title, o.DeliveryAddress, map[string]string{
		"orderId": o.ID.String(),
	})
}

// scheduleFeedbackEmail books the feedback request an hour out. The job is
// fire and forget; there is no cancellation path.
func (s *DispatchService) scheduleFeedbackEmail(_ context.Context, t *tenant.Tenant, o *order.Order) error {
	if o.Contact.Email == "" {
		return nil
	}

	name := fmt.Sprintf("feedback-%s", o.ID)

	return s.scheduler.ScheduleAt(time.Now().Add(time.Hour), name, func() {
		if err := s.mailer.SendFeedbackRequest(context.Background(), t, o); err != nil {
			slog.Error("Failed to send feedback request", "order", o.ID, "error", err)
		}
	})
}

func (s *DispatchService) recordOrderMetrics(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	return s.analyticsRepo.UpsertOrderMetrics(ctx, analytics.MetricsFromOrder(o))
}

func (s *DispatchService) removeKitchenTicket(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	return s.kitchenRepo.RemoveTicket(ctx, o.TenantID, o.ID)
}

func (s *DispatchService) restockItems(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	var errs []error
	for _, item := range o.Items {
		if _, err := s.inventory.Restock(ctx, o.TenantID, item.ProductID, item.Units()); err != nil {
			errs = append(errs, fmt.Errorf("failed to restock product %s: %w", item.ProductID, err))
		}
	}

	return errors.Join(errs...)
}

func (s *DispatchService) requestRefund(ctx context.Context, _ *tenant.Tenant, o *order.Order) error {
	if o.PaymentStatus != order.PaymentPaid {
		return nil
	}

	return s.refundQueue.Enqueue(ctx, refund.Request{
		TenantID:    o.TenantID,
		OrderID:     o.ID,
		OrderNumber: o.Number,
		AmountCents: o.TotalCents,
		Currency:    o.Currency,
		Reason:      o.CancelReason,
		RequestedAt: time.Now(),
	})
}

func (s *DispatchService) sendCancellationEmail(ctx context.Context, t *tenant.Tenant, o *order.Order) error {
	if o.Contact.Email == "" {
		return nil
	}

	return s.mailer.SendCancellation(ctx, t, o)
}

func (s *DispatchService) recordRefundLedger(ctx context.Context, t *tenant.Tenant, o *order.Order) error {
	entry := ledger.RefundEntry(o.TenantID, o.ID, o.TotalCents, t.PlatformFeeBps, o.Currency, time.Now())

	return s.ledgerRepo.Insert(ctx, entry)
}

func formatCents(cents int64, cur currency.Currency) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, cur.String())
}
