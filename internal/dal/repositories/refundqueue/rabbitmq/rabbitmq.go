package rabbitrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/eatech/platform/internal/dal/rabbitmq"
	"github.com/eatech/platform/internal/service/models/refund"
)

// RabbitMQRefundQueue hands refund requests to the external payment worker
// over the payments.refunds queue.
type RabbitMQRefundQueue struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewRabbitMQRefundQueue creates the refund queue publisher, declaring the
// queue on the way.
func NewRabbitMQRefundQueue(client *rabbitmq.Client) *RabbitMQRefundQueue {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       refund.QueueRefunds,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQRefundQueue{
		client: client,
		queue:  queue,
	}
}

// Enqueue publishes one refund request.
func (r *RabbitMQRefundQueue) Enqueue(_ context.Context, req refund.Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal refund request: %w", err)
	}

	if err := r.client.Publish("", r.queue.Name, "application/json", payload); err != nil {
		return fmt.Errorf("failed to publish refund request: %w", err)
	}

	return nil
}
