package iorderitemrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the order item postgres
// repository.
type IOrderItemRepository interface {
	// BulkInsert persists the items and returns them with generated IDs.
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// Query retrieves all items belonging to the given orders.
	Query(ctx context.Context, orderIDs []uuid.UUID) ([]orderitem.OrderItem, error)

	// UpdateStatus moves one line item through the kitchen.
	UpdateStatus(ctx context.Context, orderID, itemID uuid.UUID, status orderitem.Status) error
}
