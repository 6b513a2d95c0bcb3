package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/ledger"
)

// PostgresLedgerRepository represents a Postgres ledger repository.
type PostgresLedgerRepository struct {
	conn postgres.Querier
}

// NewPostgresLedgerRepository creates a new Postgres ledger repository.
func NewPostgresLedgerRepository(conn postgres.Querier) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{
		conn: conn,
	}
}

// Insert records one accounting entry.
func (r *PostgresLedgerRepository) Insert(ctx context.Context, e ledger.Entry) error {
	query, args, err := sq.Insert("ledger_entries").
		Columns("tenant_id", "order_id", "entry_type", "gross_cents", "platform_fee_cents", "net_cents", "currency", "created_at").
		Values(e.TenantID, e.OrderID, string(e.Type), e.GrossCents, e.PlatformFeeCents, e.NetCents, e.Currency.String(), e.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return nil
}
