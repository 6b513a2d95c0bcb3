package ianalyticsrepo

import (
	"context"

	"github.com/eatech/platform/internal/service/models/analytics"
)

// IAnalyticsRepository is an interface for the analytics postgres
// repository.
type IAnalyticsRepository interface {
	InsertEvent(ctx context.Context, e analytics.Event) error

	// UpsertOrderMetrics writes the completion metrics row, replacing an
	// earlier one if the event was redelivered.
	UpsertOrderMetrics(ctx context.Context, m analytics.OrderMetrics) error
}
