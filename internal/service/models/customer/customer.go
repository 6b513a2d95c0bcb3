package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the per-tenant loyalty record behind an order contact,
// matched by email or phone. Loyalty points accrue one per full franc
// spent.
type Customer struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenantId"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	LoyaltyPoints   int64      `json:"loyaltyPoints"`
	OrderCount      int        `json:"orderCount"`
	TotalSpentCents int64      `json:"totalSpentCents"`
	LastOrderAt     *time.Time `json:"lastOrderAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PointsForTotal converts an order total in cents to loyalty points.
func PointsForTotal(totalCents int64) int64 {
	if totalCents <= 0 {
		return 0
	}

	return totalCents / 100
}
