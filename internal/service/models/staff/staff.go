package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleKitchen Role = "kitchen"
	RoleDriver  Role = "driver"
	RoleManager Role = "manager"
)

var (
	ErrNotFound    = errors.New("staff member not found")
	ErrInvalidRole = errors.New("invalid staff role")
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStaff, RoleKitchen, RoleDriver, RoleManager:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Member is a tenant employee. DeviceTokens are FCM registration tokens
// for push notifications.
type Member struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenantId"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role"`
	DeviceTokens []string  `json:"deviceTokens,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
