package ifeedrepo

import (
	"context"

	"github.com/eatech/platform/internal/service/models/event"
)

// IFeedPublisher pushes order change records to the tenant's live feed.
type IFeedPublisher interface {
	PublishChange(ctx context.Context, rec event.ChangeRecord) error
}
