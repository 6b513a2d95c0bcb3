package outbox

import (
	"time"
)

// OutboxMessage is a pending RabbitMQ publication, written in the same
// transaction as the state change it announces and drained by the relay
// worker.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
