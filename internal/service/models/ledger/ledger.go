package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
)

type EntryType string

const (
	EntryRefund EntryType = "refund"
)

// Entry is an accounting row written when money moves outside the normal
// capture flow. Net is gross minus the platform fee.
type Entry struct {
	ID               int64             `json:"id"`
	TenantID         uuid.UUID         `json:"tenantId"`
	OrderID          uuid.UUID         `json:"orderId"`
	Type             EntryType         `json:"type"`
	GrossCents       int64             `json:"grossCents"`
	PlatformFeeCents int64             `json:"platformFeeCents"`
	NetCents         int64             `json:"netCents"`
	Currency         currency.Currency `json:"currency"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// RefundEntry builds the accounting entry for a refunded order. The platform
// fee is the tenant's rate in basis points applied to the gross, rounded
// half-up to the cent.
func RefundEntry(tenantID, orderID uuid.UUID, grossCents, platformFeeBps int64, cur currency.Currency, now time.Time) Entry {
	var fee int64
	if platformFeeBps > 0 && grossCents > 0 {
		fee = (grossCents*platformFeeBps + 5000) / 10000
	}

	return Entry{
		TenantID:         tenantID,
		OrderID:          orderID,
		Type:             EntryRefund,
		GrossCents:       grossCents,
		PlatformFeeCents: fee,
		NetCents:         grossCents - fee,
		Currency:         cur,
		CreatedAt:        now,
	}
}
