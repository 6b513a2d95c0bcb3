package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/order"
)

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.Querier
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
	}
}

// AccrueOnOrder upserts the customer matched by the contact's email or phone
// and atomically adds the order's spend, loyalty points and order count.
// A contact with neither email nor phone accrues nothing.
func (r *PostgresCustomerRepository) AccrueOnOrder(
	ctx context.Context,
	tenantID uuid.UUID,
	contact order.Contact,
	totalCents, points int64,
	now time.Time,
) error {
	var query string
	switch {
	case contact.Email != "":
		query = `
			INSERT INTO customers (tenant_id, name, email, phone, loyalty_points, order_count, total_spent_cents, last_order_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $7, $7)
			ON CONFLICT (tenant_id, email) WHERE email <> '' DO UPDATE SET
				name = EXCLUDED.name,
				phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE customers.phone END,
				loyalty_points = customers.loyalty_points + EXCLUDED.loyalty_points,
				order_count = customers.order_count + 1,
				total_spent_cents = customers.total_spent_cents + EXCLUDED.total_spent_cents,
				last_order_at = EXCLUDED.last_order_at,
				updated_at = EXCLUDED.updated_at
		`
	case contact.Phone != "":
		query = `
			INSERT INTO customers (tenant_id, name, email, phone, loyalty_points, order_count, total_spent_cents, last_order_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $7, $7)
			ON CONFLICT (tenant_id, phone) WHERE phone <> '' DO UPDATE SET
				name = EXCLUDED.name,
				loyalty_points = customers.loyalty_points + EXCLUDED.loyalty_points,
				order_count = customers.order_count + 1,
				total_spent_cents = customers.total_spent_cents + EXCLUDED.total_spent_cents,
				last_order_at = EXCLUDED.last_order_at,
				updated_at = EXCLUDED.updated_at
		`
	default:
		return nil
	}

	_, err := r.conn.Exec(ctx, query, tenantID, contact.Name, contact.Email, contact.Phone, points, totalCents, now)
	if err != nil {
		return fmt.Errorf("failed to accrue customer: %w", err)
	}

	return nil
}

// UpsertMailingList records an opted-in address, once per tenant.
func (r *PostgresCustomerRepository) UpsertMailingList(
	ctx context.Context,
	tenantID uuid.UUID,
	email, name string,
	now time.Time,
) error {
	if email == "" {
		return nil
	}

	query := `
		INSERT INTO mailing_list (tenant_id, email, name, subscribed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, email) DO NOTHING
	`

	if _, err := r.conn.Exec(ctx, query, tenantID, email, name, now); err != nil {
		return fmt.Errorf("failed to upsert mailing list entry: %w", err)
	}

	return nil
}
