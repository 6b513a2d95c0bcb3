package inventorysvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/interfaces/ialertrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iproductrepo"
	"github.com/eatech/platform/internal/service/models/alert"
	"github.com/eatech/platform/internal/service/models/product"
)

// InventoryService adjusts tracked stock and keeps the low-stock alert
// lifecycle: at most one open alert per product, raised on the crossing to
// at-or-below threshold, resolved when a restock lifts the level above it.
type InventoryService struct {
	productRepo iproductrepo.IProductRepository
	alertRepo   ialertrepo.IAlertRepository
}

// option is a function that configures the InventoryService.
type option func(*InventoryService)

// MustNewInventoryService creates a new InventoryService.
func MustNewInventoryService(opts ...option) *InventoryService {
	s := &InventoryService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductRepository sets the product repository for the InventoryService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(productRepo iproductrepo.IProductRepository) option {
	return func(s *InventoryService) {
		s.productRepo = productRepo
	}
}

// WithAlertRepository sets the alert repository for the InventoryService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAlertRepository(alertRepo ialertrepo.IAlertRepository) option {
	return func(s *InventoryService) {
		s.alertRepo = alertRepo
	}
}

// Decrement reduces tracked stock by qty, clamping at zero, and raises a
// low-stock alert when the new level sits at or below the threshold and no
// alert is already open for the product.
func (s *InventoryService) Decrement(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error) {
	p, err := s.productRepo.AdjustStock(ctx, tenantID, productID, -qty)
	if err != nil {
		return nil, err
	}
	if !p.LowOnStock() {
		return p, nil
	}

	open, err := s.alertRepo.HasUnresolved(ctx, tenantID, productID)
	if err != nil {
		return p, err
	}
	if open {
		return p, nil
	}

	err = s.alertRepo.Insert(ctx, alert.LowStockAlert{
		TenantID:    tenantID,
		ProductID:   productID,
		ProductName: p.Name,
		StockLevel:  p.Stock,
		Threshold:   p.LowStockThreshold,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return p, err
	}

	slog.Warn("Low stock alert raised",
		"product", p.Name,
		"stock", p.Stock,
		"threshold", p.LowStockThreshold)

	return p, nil
}

// Restock increases stock by qty and resolves open alerts once the level
// rises above the threshold.
func (s *InventoryService) Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error) {
	p, err := s.productRepo.AdjustStock(ctx, tenantID, productID, qty)
	if err != nil {
		return nil, err
	}

	if p.TrackInventory && p.Stock > p.LowStockThreshold {
		if err := s.alertRepo.ResolveForProduct(ctx, tenantID, productID, time.Now()); err != nil {
			return p, err
		}
	}

	return p, nil
}
