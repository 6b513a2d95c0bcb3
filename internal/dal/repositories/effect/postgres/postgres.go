package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/effect"
)

// PostgresEffectRepository represents a Postgres side-effect outcome
// repository.
type PostgresEffectRepository struct {
	conn postgres.Querier
}

// NewPostgresEffectRepository creates a new Postgres side-effect outcome
// repository.
func NewPostgresEffectRepository(conn postgres.Querier) *PostgresEffectRepository {
	return &PostgresEffectRepository{
		conn: conn,
	}
}

// BulkInsert records the handler outcomes of one consumed event.
func (r *PostgresEffectRepository) BulkInsert(ctx context.Context, outcomes []effect.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	builder := sq.Insert("order_effects").
		Columns("event_id", "tenant_id", "order_id", "handler", "ok", "error", "created_at").
		PlaceholderFormat(sq.Dollar)

	for _, o := range outcomes {
		builder = builder.Values(o.EventID, o.TenantID, o.OrderID, o.Handler, o.OK, o.Error, o.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert effect outcomes: %w", err)
	}

	return nil
}
