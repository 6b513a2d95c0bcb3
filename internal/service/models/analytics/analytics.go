package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

// Event is an append-only analytics record. The payload is opaque JSON.
type Event struct {
	ID        int64     `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	OrderID   uuid.UUID `json:"orderId"`
	Type      string    `json:"type"`
	Payload   []byte    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderMetrics captures elapsed stage durations for one completed order.
// A stage whose bounding timestamps were never both recorded stays zero.
type OrderMetrics struct {
	OrderID             uuid.UUID `json:"orderId"`
	TenantID            uuid.UUID `json:"tenantId"`
	ConfirmationSeconds int64     `json:"confirmationSeconds"`
	PreparationSeconds  int64     `json:"preparationSeconds"`
	DeliverySeconds     int64     `json:"deliverySeconds"`
	TotalSeconds        int64     `json:"totalSeconds"`
	CompletedAt         time.Time `json:"completedAt"`
}

// MetricsFromOrder derives the stage durations from the order's per-status
// timestamps.
func MetricsFromOrder(o *order.Order) OrderMetrics {
	m := OrderMetrics{OrderID: o.ID, TenantID: o.TenantID}

	m.ConfirmationSeconds = secondsBetween(&o.CreatedAt, o.ConfirmedAt)
	m.PreparationSeconds = secondsBetween(o.ConfirmedAt, o.ReadyAt)
	m.DeliverySeconds = secondsBetween(o.ReadyAt, o.DeliveredAt)
	m.TotalSeconds = secondsBetween(&o.CreatedAt, o.CompletedAt)
	if o.CompletedAt != nil {
		m.CompletedAt = *o.CompletedAt
	}

	return m
}

func secondsBetween(from, to *time.Time) int64 {
	if from == nil || to == nil {
		return 0
	}

	return int64(to.Sub(*from) / time.Second)
}
