package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/alert"
)

// PostgresAlertRepository represents a Postgres low-stock alert repository.
type PostgresAlertRepository struct {
	conn postgres.Querier
}

// NewPostgresAlertRepository creates a new Postgres low-stock alert repository.
func NewPostgresAlertRepository(conn postgres.Querier) *PostgresAlertRepository {
	return &PostgresAlertRepository{
		conn: conn,
	}
}

// Insert records a new low-stock alert.
func (r *PostgresAlertRepository) Insert(ctx context.Context, a alert.LowStockAlert) error {
	query, args, err := sq.Insert("low_stock_alerts").
		Columns("tenant_id", "product_id", "product_name", "stock_level", "threshold", "resolved", "created_at").
		Values(a.TenantID, a.ProductID, a.ProductName, a.StockLevel, a.Threshold, a.Resolved, a.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert low stock alert: %w", err)
	}

	return nil
}

// HasUnresolved reports whether the product has an open alert.
func (r *PostgresAlertRepository) HasUnresolved(ctx context.Context, tenantID, productID uuid.UUID) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("low_stock_alerts").
		Where(sq.Eq{"tenant_id": tenantID, "product_id": productID, "resolved": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count open alerts: %w", err)
	}

	return count > 0, nil
}

// ResolveForProduct closes every open alert of the product.
func (r *PostgresAlertRepository) ResolveForProduct(ctx context.Context, tenantID, productID uuid.UUID, now time.Time) error {
	query, args, err := sq.Update("low_stock_alerts").
		Set("resolved", true).
		Set("resolved_at", now).
		Where(sq.Eq{"tenant_id": tenantID, "product_id": productID, "resolved": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to resolve alerts: %w", err)
	}

	return nil
}

// ListUnresolved retrieves the tenant's open alerts, newest first.
func (r *PostgresAlertRepository) ListUnresolved(ctx context.Context, tenantID uuid.UUID) ([]alert.LowStockAlert, error) {
	query, args, err := sq.Select("id", "tenant_id", "product_id", "product_name", "stock_level", "threshold", "resolved", "created_at", "resolved_at").
		From("low_stock_alerts").
		Where(sq.Eq{"tenant_id": tenantID, "resolved": false}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var result []alert.LowStockAlert
	for rows.Next() {
		var a alert.LowStockAlert
		err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.ProductID,
			&a.ProductName,
			&a.StockLevel,
			&a.Threshold,
			&a.Resolved,
			&a.CreatedAt,
			&a.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
