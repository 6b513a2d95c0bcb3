package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/analytics"
)

// PostgresAnalyticsRepository represents a Postgres analytics repository.
type PostgresAnalyticsRepository struct {
	conn postgres.Querier
}

// NewPostgresAnalyticsRepository creates a new Postgres analytics repository.
func NewPostgresAnalyticsRepository(conn postgres.Querier) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{
		conn: conn,
	}
}

// InsertEvent records one analytics event.
func (r *PostgresAnalyticsRepository) InsertEvent(ctx context.Context, e analytics.Event) error {
	payload := e.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	query, args, err := sq.Insert("analytics_events").
		Columns("tenant_id", "order_id", "event_type", "payload", "created_at").
		Values(e.TenantID, e.OrderID, e.Type, payload, e.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}

	return nil
}

// UpsertOrderMetrics writes the completion metrics row, replacing an earlier
// one if the event was redelivered.
func (r *PostgresAnalyticsRepository) UpsertOrderMetrics(ctx context.Context, m analytics.OrderMetrics) error {
	query := `
		INSERT INTO order_metrics (order_id, tenant_id, confirmation_seconds, preparation_seconds, delivery_seconds, total_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO UPDATE SET
			confirmation_seconds = EXCLUDED.confirmation_seconds,
			preparation_seconds = EXCLUDED.preparation_seconds,
			delivery_seconds = EXCLUDED.delivery_seconds,
			total_seconds = EXCLUDED.total_seconds,
			completed_at = EXCLUDED.completed_at
	`

	_, err := r.conn.Exec(ctx, query,
		m.OrderID,
		m.TenantID,
		m.ConfirmationSeconds,
		m.PreparationSeconds,
		m.DeliverySeconds,
		m.TotalSeconds,
		m.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert order metrics: %w", err)
	}

	return nil
}
