package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

const (
	// ExchangeOrders is the direct exchange order lifecycle events are
	// published to; the event kind doubles as the routing key.
	ExchangeOrders = "orders.events"

	KindOrderCreated       = "order.created"
	KindOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the envelope written to the outbox for every order
// lifecycle change. It carries identifiers and the status edge only; the
// dispatcher loads fresh order state by ID before running side effects.
type OrderEvent struct {
	ID         uuid.UUID    `json:"id"`
	Kind       string       `json:"kind"`
	TenantID   uuid.UUID    `json:"tenantId"`
	OrderID    uuid.UUID    `json:"orderId"`
	OldStatus  order.Status `json:"oldStatus,omitempty"`
	NewStatus  order.Status `json:"newStatus,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// RoutingKey returns the key the relay publishes the event under.
func (e OrderEvent) RoutingKey() string {
	return e.Kind
}
