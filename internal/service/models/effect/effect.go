package effect

import (
	"time"

	"github.com/google/uuid"
)

// Outcome records one side-effect handler run for one consumed event. The
// dispatcher writes a row per handler whether it succeeded or not, so a
// failed effect stays visible without blocking the others.
type Outcome struct {
	ID        int64     `json:"id"`
	EventID   uuid.UUID `json:"eventId"`
	TenantID  uuid.UUID `json:"tenantId"`
	OrderID   uuid.UUID `json:"orderId"`
	Handler   string    `json:"handler"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
