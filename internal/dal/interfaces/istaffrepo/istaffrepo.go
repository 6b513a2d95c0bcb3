package istaffrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/staff"
)

// IStaffRepository is an interface for the staff postgres repository.
type IStaffRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*staff.Member, error)

	// ActiveDeviceTokens collects FCM tokens of active members holding any
	// of the roles; no roles means every role.
	ActiveDeviceTokens(ctx context.Context, tenantID uuid.UUID, roles []staff.Role) ([]string, error)
}
