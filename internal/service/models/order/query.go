package order

import (
	"time"

	"github.com/google/uuid"
)

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	TenantID uuid.UUID   `json:"tenantId"`
	Ids      []uuid.UUID `json:"ids,omitempty"`
	Statuses []Status    `json:"statuses,omitempty"`
	Types    []Type      `json:"types,omitempty"`
	From     *time.Time  `json:"from,omitempty"`
	To       *time.Time  `json:"to,omitempty"`
	Limit    int         `json:"limit,omitempty"`
	Offset   int         `json:"offset,omitempty"`
}

// Stats are the derived order statistics for one tenant day.
type Stats struct {
	ByStatus          map[Status]int `json:"byStatus"`
	TodayCount        int            `json:"todayCount"`
	TodayRevenueCents int64          `json:"todayRevenueCents"`
}
