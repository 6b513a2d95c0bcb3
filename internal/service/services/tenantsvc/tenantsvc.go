package tenantsvc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/interfaces/iorderrepo"
	"github.com/eatech/platform/internal/dal/interfaces/itenantrepo"
	"github.com/eatech/platform/internal/service/models/tenant"
)

// TenantService answers tenant profile and availability questions.
type TenantService struct {
	tenantRepo itenantrepo.ITenantRepository
	orderRepo  iorderrepo.IOrderRepository
}

// option is a function that configures the TenantService.
type option func(*TenantService)

// MustNewTenantService creates a new TenantService.
func MustNewTenantService(opts ...option) *TenantService {
	s := &TenantService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithTenantRepository sets the tenant repository for the TenantService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTenantRepository(tenantRepo itenantrepo.ITenantRepository) option {
	return func(s *TenantService) {
		s.tenantRepo = tenantRepo
	}
}

// WithOrderRepository sets the order repository for the TenantService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(orderRepo iorderrepo.IOrderRepository) option {
	return func(s *TenantService) {
		s.orderRepo = orderRepo
	}
}

// Availability is the live order-acceptance state of a tenant.
type Availability struct {
	Open          bool       `json:"open"`
	AcceptsOrders bool       `json:"acceptsOrders"`
	NextOpenAt    *time.Time `json:"nextOpenAt,omitempty"`
}

// Get retrieves one tenant.
func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, tenantID)
}

// Availability evaluates the tenant's business hours and subscription state
// right now.
func (s *TenantService) Availability(ctx context.Context, tenantID uuid.UUID) (*Availability, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	localNow := now.In(t.Location())
	monthStart := time.Date(localNow.Year(), localNow.Month(), 1, 0, 0, 0, 0, t.Location())
	monthlyOrders, err := s.orderRepo.CountSince(ctx, tenantID, monthStart)
	if err != nil {
		return nil, err
	}

	av := &Availability{
		Open:          t.IsOpen(now),
		AcceptsOrders: t.CanAcceptOrders(now, monthlyOrders),
	}
	if !av.Open {
		av.NextOpenAt = t.NextOpenTime(now)
	}

	return av, nil
}
