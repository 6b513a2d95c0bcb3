package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/eatech/platform/internal/dal/rabbitmq"
	"github.com/eatech/platform/internal/service/models/event"
)

// service represents the service layer interface.
type service interface {
	HandleEvent(ctx context.Context, ev event.OrderEvent) error
}

// Consumer reads order events off the orders exchange and hands them to the
// dispatch service.
type Consumer struct {
	client  *rabbitmq.Client
	service service
	queue   amqp.Queue
	stop    chan struct{}
	done    chan struct{}
}

// MustNewConsumer creates a new Consumer. It declares the orders exchange
// and the dispatch queue and binds one routing key per event kind.
func MustNewConsumer(client *rabbitmq.Client, service service) *Consumer {
	queueName := viper.GetString("rabbitmq.dispatch_queue")
	if queueName == "" {
		queueName = "orders.dispatch"
	}

	err := client.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    event.ExchangeOrders,
		Kind:    "direct",
		Durable: true,
	})
	if err != nil {
		panic("Failed to declare orders exchange: " + err.Error())
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic("Failed to declare dispatch queue: " + err.Error())
	}

	for _, key := range []string{event.KindOrderCreated, event.KindOrderStatusChanged} {
		if err := client.BindQueue(queue.Name, key, event.ExchangeOrders); err != nil {
			panic("Failed to bind dispatch queue: " + err.Error())
		}
	}

	return &Consumer{
		client:  client,
		service: service,
		queue:   queue,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run starts consuming events from RabbitMQ.
func (c *Consumer) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "dispatcher"
	}

	msgs, err := c.client.Consume(rabbitmq.ConsumeConfig{
		Queue:    c.queue.Name,
		Consumer: consumerTag,
	})
	if err != nil {
		return err
	}

	slog.Info("Consumer started", "queue", c.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(50)

	go func() {
		for {
			select {
			case <-c.stop:
				slog.Info("Stopping consumer")
				close(c.done)

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Message channel closed")
					close(c.done)

					return
				}

				g.Go(func() error {
					c.processMessage(gctx, msg)

					return nil
				})
			}
		}
	}()

	<-c.done
	if err := g.Wait(); err != nil {
		slog.Error("Error processing messages", "error", err)
	}

	return nil
}

// processMessage settles one delivery: a malformed event is dropped, a
// failed dispatch is requeued, everything else is acked.
func (c *Consumer) processMessage(ctx context.Context, msg amqp.Delivery) {
	ctx, span := otel.Tracer("consumer").Start(ctx, "Consumer.processMessage")
	defer span.End()

	var ev event.OrderEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		slog.Error("Failed to unmarshal order event", "delivery_tag", msg.DeliveryTag, "error", err)
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return
	}

	if err := c.service.HandleEvent(ctx, ev); err != nil {
		slog.Error("Failed to dispatch order event", "event", ev.ID, "order_id", ev.OrderID, "error", err)
		if err := msg.Nack(false, true); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return
	}

	slog.Info("Order event dispatched", "event", ev.ID, "kind", ev.Kind, "order_id", ev.OrderID)
}

// Shutdown gracefully shuts down the consumer.
func (c *Consumer) Shutdown() error {
	slog.Info("Shutting down consumer")
	close(c.stop)

	select {
	case <-c.done:
		slog.Info("Consumer stopped successfully")
	case <-time.After(10 * time.Second):
		slog.Warn("Consumer shutdown timeout")
	}

	return nil
}
