package sink

import (
	"clinic/infras/kafka"
	"context"
	"fmt"
)

// Kafka keys every record by entity id so one entity's history stays ordered.
type Kafka struct {
	client kafka.Client
	topic  string
}

func NewKafka(client kafka.Client, topic string) *Kafka {
	return &Kafka{client: client, topic: topic}
}

func (k *Kafka) Write(ctx context.Context, record Record) error {
	err := k.client.SendMessages(ctx, k.topic, kafka.Message{
		Key:   record.EntityType + ":" + record.EntityID,
		Value: record,
	})
	if err != nil {
		return fmt.Errorf("failed to write activity log to kafka: %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	return k.client.Close() //nolint:wrapcheck
}
