package sink

import (
	"clinic/infras/rabbitmq"
	"context"
	"fmt"
)

type RabbitMQ struct {
	publisher rabbitmq.Publisher
	queue     string
}

func NewRabbitMQ(publisher rabbitmq.Publisher, queue string) *RabbitMQ {
	return &RabbitMQ{publisher: publisher, queue: queue}
}

func (r *RabbitMQ) Write(ctx context.Context, record Record) error {
	if err := r.publisher.Publish(ctx, r.queue, record.ID, record); err != nil {
		return fmt.Errorf("failed to write activity log to rabbitmq: %w", err)
	}

	return nil
}

func (r *RabbitMQ) Close() error {
	return r.publisher.Close() //nolint:wrapcheck
}
