package iorderrepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
// Orders are loaded and stored without their items; the item repository
// owns those rows.
type IOrderRepository interface {
	// Insert persists a new order row and returns it with generated fields.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// GetByID loads one tenant-scoped order.
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error)

	// Update persists every mutable column of the order.
	Update(ctx context.Context, o *order.Order) error

	// Query retrieves orders based on filter criteria, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// CountSince counts the tenant's orders created at or after the instant.
	CountSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (int, error)

	// CountByContactSince counts recent orders matching the contact's email
	// or phone.
	CountByContactSince(ctx context.Context, tenantID uuid.UUID, email, phone string, since time.Time) (int, error)

	// NextNumber allocates the day's next human-readable order number.
	NextNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error)

	// Stats aggregates per-status counts and today's paid revenue.
	Stats(ctx context.Context, tenantID uuid.UUID, dayStart time.Time) (order.Stats, error)
}
