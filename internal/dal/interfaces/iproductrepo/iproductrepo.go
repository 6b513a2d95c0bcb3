package iproductrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*product.Product, error)

	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]product.Product, error)

	Insert(ctx context.Context, p product.Product) (product.Product, error)

	Update(ctx context.Context, p *product.Product) error

	// AdjustStock atomically applies a delta to a tracked product's stock,
	// clamping at zero, and returns the resulting row.
	AdjustStock(ctx context.Context, tenantID, id uuid.UUID, delta int) (*product.Product, error)
}
