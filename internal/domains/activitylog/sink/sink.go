// Package sink mirrors activity log entries to an external append-only log.
package sink

//go:generate go run go.uber.org/mock/mockgen -source=./sink.go -destination=./mocks/sink_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/kafka"
	"clinic/infras/rabbitmq"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DriverFile     = "file"
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
	DriverNone     = "none"
)

type Record struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ActorName  string    `json:"actor_name"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Message    string    `json:"message"`
}

type Sink interface {
	Write(ctx context.Context, record Record) error
	Close() error
}

// New selects the driver named by the audit configuration.
func New(cfg *config.Config, kafkaClient kafka.Client, publisher rabbitmq.Publisher) (Sink, error) {
	driver := cfg.Audit.Sink

	log.Info().Str("driver", driver).Msg("activity log sink initialized")

	switch driver {
	case DriverFile, "":
		return NewFile(cfg.Audit.FilePath)
	case DriverKafka:
		return NewKafka(kafkaClient, cfg.Audit.Topic), nil
	case DriverRabbitMQ:
		return NewRabbitMQ(publisher, cfg.Audit.Queue), nil
	case DriverNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown activity log sink %q", driver)
	}
}
