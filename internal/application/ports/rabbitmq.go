package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"docvault-api/internal/infrastructure/mq"
)

// EventPublisher is the slice of the broker services depend on.
type EventPublisher interface {
	GetInputChan() chan mq.Event
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
