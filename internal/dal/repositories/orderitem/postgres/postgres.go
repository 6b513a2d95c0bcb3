package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	Name       string
	Quantity   int
	PriceCents int64
	Modifiers  []byte
	Status     string
	Note       string
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (d *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	status, err := orderitem.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	var modifiers []orderitem.Modifier
	if len(d.Modifiers) > 0 {
		if err := json.Unmarshal(d.Modifiers, &modifiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item modifiers: %w", err)
		}
	}

	return &orderitem.OrderItem{
		ID:         d.ID,
		OrderID:    d.OrderID,
		ProductID:  d.ProductID,
		Name:       d.Name,
		Quantity:   d.Quantity,
		PriceCents: d.PriceCents,
		Modifiers:  modifiers,
		Status:     status,
		Note:       d.Note,
	}, nil
}

// OrderItemDalFromModel converts the service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(i *orderitem.OrderItem) (*OrderItemDal, error) {
	modifiers := []byte("[]")
	if len(i.Modifiers) > 0 {
		var err error
		modifiers, err = json.Marshal(i.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal item modifiers: %w", err)
		}
	}

	return &OrderItemDal{
		ID:         i.ID,
		OrderID:    i.OrderID,
		ProductID:  i.ProductID,
		Name:       i.Name,
		Quantity:   i.Quantity,
		PriceCents: i.PriceCents,
		Modifiers:  modifiers,
		Status:     string(i.Status),
		Note:       i.Note,
	}, nil
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Querier
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
	}
}

// BulkInsert inserts multiple order items and returns them with generated IDs.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "name", "quantity", "price_cents", "modifiers", "status", "note").
		Suffix("RETURNING id, order_id, product_id, name, quantity, price_cents, modifiers, status, note").
		PlaceholderFormat(sq.Dollar)

	for _, item := range items {
		dal, err := OrderItemDalFromModel(&item)
		if err != nil {
			return nil, err
		}
		builder = builder.Values(
			dal.OrderID,
			dal.ProductID,
			dal.Name,
			dal.Quantity,
			dal.PriceCents,
			dal.Modifiers,
			dal.Status,
			dal.Note,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.ID,
			&dal.OrderID,
			&dal.ProductID,
			&dal.Name,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.Modifiers,
			&dal.Status,
			&dal.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item, err := dal.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves all items belonging to the given orders.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	orderIDs []uuid.UUID,
) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := sq.Select("id", "order_id", "product_id", "name", "quantity", "price_cents", "modifiers", "status", "note").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.ID,
			&dal.OrderID,
			&dal.ProductID,
			&dal.Name,
			&dal.Quantity,
			&dal.PriceCents,
			&dal.Modifiers,
			&dal.Status,
			&dal.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item, err := dal.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus moves one line item through the kitchen.
func (r *PostgresOrderItemRepository) UpdateStatus(
	ctx context.Context,
	orderID, itemID uuid.UUID,
	status orderitem.Status,
) error {
	query, args, err := sq.Update("order_items").
		Set("status", string(status)).
		Where(sq.Eq{"id": itemID, "order_id": orderID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return orderitem.ErrItemNotFound
	}

	return nil
}
