package product

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
)

var ErrNotFound = errors.New("product not found")

// Product is a sellable menu item. Stock is only meaningful when
// TrackInventory is set; untracked products never run out.
type Product struct {
	ID                uuid.UUID         `json:"id"`
	TenantID          uuid.UUID         `json:"tenantId"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Category          string            `json:"category,omitempty"`
	PriceCents        int64             `json:"priceCents"`
	Currency          currency.Currency `json:"currency"`
	TrackInventory    bool              `json:"trackInventory"`
	Stock             int               `json:"stock"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	Active            bool              `json:"active"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// LowOnStock reports whether tracked stock sits at or below the threshold.
func (p *Product) LowOnStock() bool {
	return p.TrackInventory && p.Stock <= p.LowStockThreshold
}
