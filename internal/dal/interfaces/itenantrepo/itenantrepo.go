package itenantrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/tenant"
)

// ITenantRepository is an interface for the tenant postgres repository.
type ITenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
}
