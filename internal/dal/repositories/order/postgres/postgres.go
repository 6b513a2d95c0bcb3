package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

var orderColumns = []string{
	"id",
	"tenant_id",
	"number",
	"subtotal_cents",
	"tax_cents",
	"service_fee_cents",
	"discount_cents",
	"total_cents",
	"currency",
	"order_type",
	"table_number",
	"delivery_address",
	"status",
	"payment_method",
	"payment_status",
	"contact",
	"staff_id",
	"notes",
	"special_instructions",
	"requires_review",
	"review_reason",
	"estimated_ready_at",
	"prep_time_minutes",
	"cancel_reason",
	"refund_reason",
	"created_at",
	"updated_at",
	"confirmed_at",
	"preparing_at",
	"ready_at",
	"delivered_at",
	"completed_at",
	"cancelled_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID                  uuid.UUID
	TenantID            uuid.UUID
	Number              string
	SubtotalCents       int64
	TaxCents            int64
	ServiceFeeCents     int64
	DiscountCents       int64
	TotalCents          int64
	Currency            string
	OrderType           string
	TableNumber         string
	DeliveryAddress     string
	Status              string
	PaymentMethod       string
	PaymentStatus       string
	Contact             []byte
	StaffID             *uuid.UUID
	Notes               []byte
	SpecialInstructions string
	RequiresReview      bool
	ReviewReason        string
	EstimatedReadyAt    *time.Time
	PrepTimeMinutes     int
	CancelReason        string
	RefundReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ConfirmedAt         *time.Time
	PreparingAt         *time.Time
	ReadyAt             *time.Time
	DeliveredAt         *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
}

// ToModel converts OrderDal to the service layer Order model.
func (d *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	orderType, err := order.ParseType(d.OrderType)
	if err != nil {
		return nil, err
	}

	var contact order.Contact
	if len(d.Contact) > 0 {
		if err := json.Unmarshal(d.Contact, &contact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order contact: %w", err)
		}
	}
	var notes []order.Note
	if len(d.Notes) > 0 {
		if err := json.Unmarshal(d.Notes, &notes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order notes: %w", err)
		}
	}

	return &order.Order{
		ID:                  d.ID,
		TenantID:            d.TenantID,
		Number:              d.Number,
		Items:               []orderitem.OrderItem{},
		SubtotalCents:       d.SubtotalCents,
		TaxCents:            d.TaxCents,
		ServiceFeeCents:     d.ServiceFeeCents,
		DiscountCents:       d.DiscountCents,
		TotalCents:          d.TotalCents,
		Currency:            cur,
		Type:                orderType,
		TableNumber:         d.TableNumber,
		DeliveryAddress:     d.DeliveryAddress,
		Status:              status,
		PaymentMethod:       order.PaymentMethod(d.PaymentMethod),
		PaymentStatus:       order.PaymentStatus(d.PaymentStatus),
		Contact:             contact,
		StaffID:             d.StaffID,
		Notes:               notes,
		SpecialInstructions: d.SpecialInstructions,
		RequiresReview:      d.RequiresReview,
		ReviewReason:        d.ReviewReason,
		EstimatedReadyAt:    d.EstimatedReadyAt,
		PrepTimeMinutes:     d.PrepTimeMinutes,
		CancelReason:        d.CancelReason,
		RefundReason:        d.RefundReason,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		ConfirmedAt:         d.ConfirmedAt,
		PreparingAt:         d.PreparingAt,
		ReadyAt:             d.ReadyAt,
		DeliveredAt:         d.DeliveredAt,
		CompletedAt:         d.CompletedAt,
		CancelledAt:         d.CancelledAt,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	contact, err := json.Marshal(o.Contact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order contact: %w", err)
	}
	notes := []byte("[]")
	if len(o.Notes) > 0 {
		notes, err = json.Marshal(o.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal order notes: %w", err)
		}
	}

	return &OrderDal{
		ID:                  o.ID,
		TenantID:            o.TenantID,
		Number:              o.Number,
		SubtotalCents:       o.SubtotalCents,
		TaxCents:            o.TaxCents,
		ServiceFeeCents:     o.ServiceFeeCents,
		DiscountCents:       o.DiscountCents,
		TotalCents:          o.TotalCents,
		Currency:            o.Currency.String(),
		OrderType:           string(o.Type),
		TableNumber:         o.TableNumber,
		DeliveryAddress:     o.DeliveryAddress,
		Status:              string(o.Status),
		PaymentMethod:       string(o.PaymentMethod),
		PaymentStatus:       string(o.PaymentStatus),
		Contact:             contact,
		StaffID:             o.StaffID,
		Notes:               notes,
		SpecialInstructions: o.SpecialInstructions,
		RequiresReview:      o.RequiresReview,
		ReviewReason:        o.ReviewReason,
		EstimatedReadyAt:    o.EstimatedReadyAt,
		PrepTimeMinutes:     o.PrepTimeMinutes,
		CancelReason:        o.CancelReason,
		RefundReason:        o.RefundReason,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		ConfirmedAt:         o.ConfirmedAt,
		PreparingAt:         o.PreparingAt,
		ReadyAt:             o.ReadyAt,
		DeliveredAt:         o.DeliveredAt,
		CompletedAt:         o.CompletedAt,
		CancelledAt:         o.CancelledAt,
	}, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var d OrderDal
	err := row.Scan(
		&d.ID,
		&d.TenantID,
		&d.Number,
		&d.SubtotalCents,
		&d.TaxCents,
		&d.ServiceFeeCents,
		&d.DiscountCents,
		&d.TotalCents,
		&d.Currency,
		&d.OrderType,
		&d.TableNumber,
		&d.DeliveryAddress,
		&d.Status,
		&d.PaymentMethod,
		&d.PaymentStatus,
		&d.Contact,
		&d.StaffID,
		&d.Notes,
		&d.SpecialInstructions,
		&d.RequiresReview,
		&d.ReviewReason,
		&d.EstimatedReadyAt,
		&d.PrepTimeMinutes,
		&d.CancelReason,
		&d.RefundReason,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.ConfirmedAt,
		&d.PreparingAt,
		&d.ReadyAt,
		&d.DeliveredAt,
		&d.CompletedAt,
		&d.CancelledAt,
	)
	if err != nil {
		return nil, err
	}

	return d.ToModel()
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists a new order row and returns it with the generated ID.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return order.Order{}, err
	}

	query, args, err := sq.Insert("orders").
		Columns(orderColumns[1:]...).
		Values(
			dal.TenantID,
			dal.Number,
			dal.SubtotalCents,
			dal.TaxCents,
			dal.ServiceFeeCents,
			dal.DiscountCents,
			dal.TotalCents,
			dal.Currency,
			dal.OrderType,
			dal.TableNumber,
			dal.DeliveryAddress,
			dal.Status,
			dal.PaymentMethod,
			dal.PaymentStatus,
			dal.Contact,
			dal.StaffID,
			dal.Notes,
			dal.SpecialInstructions,
			dal.RequiresReview,
			dal.ReviewReason,
			dal.EstimatedReadyAt,
			dal.PrepTimeMinutes,
			dal.CancelReason,
			dal.RefundReason,
			dal.CreatedAt,
			dal.UpdatedAt,
			dal.ConfirmedAt,
			dal.PreparingAt,
			dal.ReadyAt,
			dal.DeliveredAt,
			dal.CompletedAt,
			dal.CancelledAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// GetByID loads one tenant-scoped order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID, "tenant_id": tenantID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// Update persists every mutable column of the order.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	dal, err := OrderDalFromModel(o)
	if err != nil {
		return err
	}

	query, args, err := sq.Update("orders").
		Set("subtotal_cents", dal.SubtotalCents).
		Set("tax_cents", dal.TaxCents).
		Set("service_fee_cents", dal.ServiceFeeCents).
		Set("discount_cents", dal.DiscountCents).
		Set("total_cents", dal.TotalCents).
		Set("status", dal.Status).
		Set("payment_method", dal.PaymentMethod).
		Set("payment_status", dal.PaymentStatus).
		Set("contact", dal.Contact).
		Set("staff_id", dal.StaffID).
		Set("notes", dal.Notes).
		Set("special_instructions", dal.SpecialInstructions).
		Set("requires_review", dal.RequiresReview).
		Set("review_reason", dal.ReviewReason).
		Set("estimated_ready_at", dal.EstimatedReadyAt).
		Set("prep_time_minutes", dal.PrepTimeMinutes).
		Set("cancel_reason", dal.CancelReason).
		Set("refund_reason", dal.RefundReason).
		Set("updated_at", dal.UpdatedAt).
		Set("confirmed_at", dal.ConfirmedAt).
		Set("preparing_at", dal.PreparingAt).
		Set("ready_at", dal.ReadyAt).
		Set("delivered_at", dal.DeliveredAt).
		Set("completed_at", dal.CompletedAt).
		Set("cancelled_at", dal.CancelledAt).
		Where(sq.Eq{"id": dal.ID, "tenant_id": dal.TenantID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"tenant_id": filter.TenantID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		builder = builder.Where(sq.Eq{"order_type": types})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// CountSince counts the tenant's orders created at or after the instant.
func (r *PostgresOrderRepository) CountSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.GtOrEq{"created_at": since}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// CountByContactSince counts recent orders whose contact matches the email
// or phone. Empty contact fields never match.
func (r *PostgresOrderRepository) CountByContactSince(ctx context.Context, tenantID uuid.UUID, email, phone string, since time.Time) (int, error) {
	match := sq.Or{}
	if email != "" {
		match = append(match, sq.Eq{"contact->>'email'": email})
	}
	if phone != "" {
		match = append(match, sq.Eq{"contact->>'phone'": phone})
	}
	if len(match) == 0 {
		return 0, nil
	}

	query, args, err := sq.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.GtOrEq{"created_at": since}).
		Where(match).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders by contact: %w", err)
	}

	return count, nil
}

// NextNumber allocates the day's next order number, e.g. E-250602-0042.
func (r *PostgresOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error) {
	query := `
		INSERT INTO order_counters (tenant_id, day, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, day) DO UPDATE SET counter = order_counters.counter + 1
		RETURNING counter
	`

	var counter int
	if err := r.conn.QueryRow(ctx, query, tenantID, day).Scan(&counter); err != nil {
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}

	return fmt.Sprintf("E-%s-%04d", day.Format("060102"), counter), nil
}

// Stats aggregates per-status counts and paid revenue for orders created at
// or after dayStart.
func (r *PostgresOrderRepository) Stats(ctx context.Context, tenantID uuid.UUID, dayStart time.Time) (order.Stats, error) {
	stats := order.Stats{ByStatus: map[order.Status]int{}}

	query, args, err := sq.Select("status", "COUNT(*)").
		From("orders").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.GtOrEq{"created_at": dayStart}).
		GroupBy("status").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build stats query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return stats, fmt.Errorf("failed to query order stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("failed to scan order stats: %w", err)
		}
		stats.ByStatus[order.Status(status)] = count
		stats.TodayCount += count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("rows iteration error: %w", err)
	}

	revenueQuery, args, err := sq.Select("COALESCE(SUM(total_cents), 0)").
		From("orders").
		Where(sq.Eq{"tenant_id": tenantID, "payment_status": string(order.PaymentPaid)}).
		Where(sq.GtOrEq{"created_at": dayStart}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build revenue query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, revenueQuery, args...).Scan(&stats.TodayRevenueCents); err != nil {
		return stats, fmt.Errorf("failed to query revenue: %w", err)
	}

	return stats, nil
}
