package alert

import (
	"time"

	"github.com/google/uuid"
)

// LowStockAlert records one low-stock episode for a product. At most one
// unresolved alert exists per product; restocking above the threshold or a
// manual acknowledgement resolves it, after which a new crossing may raise
// the next one.
type LowStockAlert struct {
	ID          int64      `json:"id"`
	TenantID    uuid.UUID  `json:"tenantId"`
	ProductID   uuid.UUID  `json:"productId"`
	ProductName string     `json:"productName"`
	StockLevel  int        `json:"stockLevel"`
	Threshold   int        `json:"threshold"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}
