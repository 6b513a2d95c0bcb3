package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/eatech/platform/internal/dal/redis"
	"github.com/eatech/platform/internal/service/models/event"
)

// FeedChannel is the pub/sub channel carrying the tenant's order changes.
func FeedChannel(tenantID uuid.UUID) string {
	return fmt.Sprintf("orders.feed.%s", tenantID)
}

// RedisFeedRepository publishes and subscribes to per-tenant order change
// feeds.
type RedisFeedRepository struct {
	client *redis.Client
}

// NewRedisFeedRepository creates a new Redis feed repository.
func NewRedisFeedRepository(client *redis.Client) *RedisFeedRepository {
	return &RedisFeedRepository{
		client: client,
	}
}

// PublishChange pushes one change record to the tenant's feed. Records are
// fire-and-forget: a feed with no subscribers drops them.
func (r *RedisFeedRepository) PublishChange(ctx context.Context, rec event.ChangeRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal change record: %w", err)
	}

	if err := r.client.RDB().Publish(ctx, FeedChannel(rec.Order.TenantID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change record: %w", err)
	}

	return nil
}

// Subscription is a live tap on one tenant's feed. Close it to release the
// underlying pub/sub connection; Records is closed afterwards.
type Subscription struct {
	pubsub  *goredis.PubSub
	records chan event.ChangeRecord
}

// Records streams decoded change records until the subscription closes.
func (s *Subscription) Records() <-chan event.ChangeRecord {
	return s.records
}

// Close terminates the subscription.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe opens a feed subscription for the tenant.
func (r *RedisFeedRepository) Subscribe(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	pubsub := r.client.RDB().Subscribe(ctx, FeedChannel(tenantID))

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, fmt.Errorf("failed to subscribe to feed: %w", err)
	}

	sub := &Subscription{
		pubsub:  pubsub,
		records: make(chan event.ChangeRecord),
	}

	go func() {
		defer close(sub.records)
		for msg := range pubsub.Channel() {
			var rec event.ChangeRecord
			if err := json.Unmarshal([]byte(msg.Payload), &rec); err != nil {
				slog.Error("Failed to decode feed record", "error", err)

				continue
			}
			sub.records <- rec
		}
	}()

	return sub, nil
}
