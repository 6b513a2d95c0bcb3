package productsvc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/interfaces/ialertrepo"
	"github.com/eatech/platform/internal/dal/interfaces/iproductrepo"
	"github.com/eatech/platform/internal/dal/interfaces/itenantrepo"
	"github.com/eatech/platform/internal/service/models/alert"
	"github.com/eatech/platform/internal/service/models/product"
)

// ProductService manages the tenant's menu.
type ProductService struct {
	productRepo iproductrepo.IProductRepository
	alertRepo   ialertrepo.IAlertRepository
	tenantRepo  itenantrepo.ITenantRepository
	inventory   inventoryService
}

type inventoryService interface {
	Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error)
}

// option is a function that configures the ProductService.
type option func(*ProductService)

// MustNewProductService creates a new ProductService.
func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductRepository sets the product repository for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(productRepo iproductrepo.IProductRepository) option {
	return func(s *ProductService) {
		s.productRepo = productRepo
	}
}

// WithAlertRepository sets the alert repository for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAlertRepository(alertRepo ialertrepo.IAlertRepository) option {
	return func(s *ProductService) {
		s.alertRepo = alertRepo
	}
}

// WithTenantRepository sets the tenant repository for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTenantRepository(tenantRepo itenantrepo.ITenantRepository) option {
	return func(s *ProductService) {
		s.tenantRepo = tenantRepo
	}
}

// WithInventoryService sets the inventory service for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithInventoryService(inventory inventoryService) option {
	return func(s *ProductService) {
		s.inventory = inventory
	}
}

// UpdateProductModel carries a partial product update; nil fields stay
// unchanged.
type UpdateProductModel struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID

	Name              *string
	Description       *string
	Category          *string
	PriceCents        *int64
	TrackInventory    *bool
	Stock             *int
	LowStockThreshold *int
	Active            *bool
}

// List retrieves the tenant's products.
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]product.Product, error) {
	return s.productRepo.List(ctx, tenantID, activeOnly)
}

// Get retrieves one product.
func (s *ProductService) Get(ctx context.Context, tenantID, productID uuid.UUID) (*product.Product, error) {
	return s.productRepo.GetByID(ctx, tenantID, productID)
}

// Create persists a new menu item. The currency defaults to the tenant's.
func (s *ProductService) Create(ctx context.Context, p product.Product) (product.Product, error) {
	now := time.Now()

	if p.Currency == "" {
		t, err := s.tenantRepo.GetByID(ctx, p.TenantID)
		if err != nil {
			return product.Product{}, err
		}
		p.Currency = t.Currency
	}

	p.CreatedAt = now
	p.UpdatedAt = now

	return s.productRepo.Insert(ctx, p)
}

// Update applies a partial update and returns the resulting product.
func (s *ProductService) Update(ctx context.Context, model UpdateProductModel) (*product.Product, error) {
	p, err := s.productRepo.GetByID(ctx, model.TenantID, model.ProductID)
	if err != nil {
		return nil, err
	}

	if model.Name != nil {
		p.Name = *model.Name
	}
	if model.Description != nil {
		p.Description = *model.Description
	}
	if model.Category != nil {
		p.Category = *model.Category
	}
	if model.PriceCents != nil {
		p.PriceCents = *model.PriceCents
	}
	if model.TrackInventory != nil {
		p.TrackInventory = *model.TrackInventory
	}
	if model.Stock != nil {
		p.Stock = *model.Stock
	}
	if model.LowStockThreshold != nil {
		p.LowStockThreshold = *model.LowStockThreshold
	}
	if model.Active != nil {
		p.Active = *model.Active
	}
	p.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Restock adds stock through the inventory service so open low-stock alerts
// resolve when the level rises above the threshold.
func (s *ProductService) Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error) {
	return s.inventory.Restock(ctx, tenantID, productID, qty)
}

// Alerts lists the tenant's open low-stock alerts.
func (s *ProductService) Alerts(ctx context.Context, tenantID uuid.UUID) ([]alert.LowStockAlert, error) {
	return s.alertRepo.ListUnresolved(ctx, tenantID)
}
