package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/eatech/platform/internal/dal/interfaces/ioutboxrepo"
	"github.com/eatech/platform/internal/dal/rabbitmq"
	"github.com/eatech/platform/internal/service/models/event"
)

// Worker relays committed outbox rows to RabbitMQ. Rows are deleted after a
// successful publish and rescheduled with exponential backoff otherwise, so
// an event is delivered at least once.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	rabbitClient *rabbitmq.Client
	pollInterval time.Duration
	batchSize    int
	stopCh       chan struct{}
}

// MustNewWorker creates a new outbox worker and declares the orders
// exchange it publishes to.
func MustNewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	err := rabbitClient.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    event.ExchangeOrders,
		Kind:    "direct",
		Durable: true,
	})
	if err != nil {
		panic("Failed to declare orders exchange: " + err.Error())
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		rabbitClient: rabbitClient,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		stopCh:       make(chan struct{}),
	}
}

// Start begins relaying messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.relayBatch(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// relayBatch publishes due outbox rows and settles each one.
func (w *Worker) relayBatch(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Relaying outbox messages", "count", len(messages))

	for _, msg := range messages {
		err := w.rabbitClient.Publish(msg.ExchangeName, msg.RoutingKey, msg.ContentType, msg.Payload)
		if err != nil {
			newRetryCount := msg.RetryCount + 1
			backoffSeconds := math.Pow(2, float64(newRetryCount)) * 30
			nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

			slog.Warn("Failed to publish outbox message, will retry",
				"outbox_id", msg.ID,
				"retry_count", newRetryCount,
				"next_retry", nextRetryAt,
				"error", err,
			)

			if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
				slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
			}

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete outbox message after publish", "outbox_id", msg.ID, "error", err)

			continue
		}

		slog.Debug("Outbox message relayed", "outbox_id", msg.ID, "routing_key", msg.RoutingKey)
	}
}
