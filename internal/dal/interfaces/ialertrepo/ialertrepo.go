package ialertrepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/alert"
)

// IAlertRepository is an interface for the low-stock alert postgres
// repository.
type IAlertRepository interface {
	Insert(ctx context.Context, a alert.LowStockAlert) error

	// HasUnresolved reports whether the product has an open alert.
	HasUnresolved(ctx context.Context, tenantID, productID uuid.UUID) (bool, error)

	// ResolveForProduct closes every open alert of the product.
	ResolveForProduct(ctx context.Context, tenantID, productID uuid.UUID, now time.Time) error

	ListUnresolved(ctx context.Context, tenantID uuid.UUID) ([]alert.LowStockAlert, error)
}
