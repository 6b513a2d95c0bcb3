package refund

import (
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
)

// QueueRefunds is the queue the payment worker consumes refund requests
// from. The worker itself lives outside this codebase.
const QueueRefunds = "payments.refunds"

// Request asks the payment provider to return the captured amount for a
// cancelled order.
type Request struct {
	TenantID    uuid.UUID         `json:"tenantId"`
	OrderID     uuid.UUID         `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	AmountCents int64             `json:"amountCents"`
	Currency    currency.Currency `json:"currency"`
	Reason      string            `json:"reason,omitempty"`
	RequestedAt time.Time         `json:"requestedAt"`
}
