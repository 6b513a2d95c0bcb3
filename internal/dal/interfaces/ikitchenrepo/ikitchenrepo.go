package ikitchenrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

// IKitchenRepository is an interface for the kitchen display store. Tickets
// live in a per-tenant Redis hash keyed by order ID.
type IKitchenRepository interface {
	PutTicket(ctx context.Context, o *order.Order) error

	RemoveTicket(ctx context.Context, tenantID, orderID uuid.UUID) error
}
