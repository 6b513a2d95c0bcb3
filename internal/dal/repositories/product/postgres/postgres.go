package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/product"
)

var productColumns = []string{
	"id",
	"tenant_id",
	"name",
	"description",
	"category",
	"price_cents",
	"currency",
	"track_inventory",
	"stock",
	"low_stock_threshold",
	"active",
	"created_at",
	"updated_at",
}

// ProductDal represents the product data access layer model.
type ProductDal struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	Name              string
	Description       string
	Category          string
	PriceCents        int64
	Currency          string
	TrackInventory    bool
	Stock             int
	LowStockThreshold int
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ToModel converts ProductDal to the service layer Product model.
func (d *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:                d.ID,
		TenantID:          d.TenantID,
		Name:              d.Name,
		Description:       d.Description,
		Category:          d.Category,
		PriceCents:        d.PriceCents,
		Currency:          cur,
		TrackInventory:    d.TrackInventory,
		Stock:             d.Stock,
		LowStockThreshold: d.LowStockThreshold,
		Active:            d.Active,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var d ProductDal
	err := row.Scan(
		&d.ID,
		&d.TenantID,
		&d.Name,
		&d.Description,
		&d.Category,
		&d.PriceCents,
		&d.Currency,
		&d.TrackInventory,
		&d.Stock,
		&d.LowStockThreshold,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return d.ToModel()
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Querier
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// GetByID loads one tenant-scoped product.
func (r *PostgresProductRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*product.Product, error) {
	query, args, err := sq.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	p, err := scanProduct(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// List retrieves the tenant's products, optionally active ones only.
func (r *PostgresProductRepository) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]product.Product, error) {
	builder := sq.Select(productColumns...).
		From("products").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("category", "name").
		PlaceholderFormat(sq.Dollar)

	if activeOnly {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert persists a new product and returns it with the generated ID.
func (r *PostgresProductRepository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	query, args, err := sq.Insert("products").
		Columns(
			"tenant_id",
			"name",
			"description",
			"category",
			"price_cents",
			"currency",
			"track_inventory",
			"stock",
			"low_stock_threshold",
			"active",
			"created_at",
			"updated_at",
		).
		Values(
			p.TenantID,
			p.Name,
			p.Description,
			p.Category,
			p.PriceCents,
			p.Currency.String(),
			p.TrackInventory,
			p.Stock,
			p.LowStockThreshold,
			p.Active,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return p, nil
}

// Update persists every mutable column of the product.
func (r *PostgresProductRepository) Update(ctx context.Context, p *product.Product) error {
	query, args, err := sq.Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("category", p.Category).
		Set("price_cents", p.PriceCents).
		Set("currency", p.Currency.String()).
		Set("track_inventory", p.TrackInventory).
		Set("stock", p.Stock).
		Set("low_stock_threshold", p.LowStockThreshold).
		Set("active", p.Active).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID, "tenant_id": p.TenantID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}

	return nil
}

// AdjustStock atomically applies a delta to a tracked product's stock,
// clamping at zero, and returns the resulting row. Untracked products are
// returned unchanged.
func (r *PostgresProductRepository) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, delta int) (*product.Product, error) {
	query := `
		UPDATE products
		SET stock = CASE WHEN track_inventory THEN GREATEST(stock + $1, 0) ELSE stock END,
		    updated_at = now()
		WHERE id = $2 AND tenant_id = $3
		RETURNING ` + strings.Join(productColumns, ", ")

	p, err := scanProduct(r.conn.QueryRow(ctx, query, delta, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return p, nil
}
