package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	"clinic/shared/constant"
	"clinic/shared/timezone"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var ErrNoURL = errors.New("rabbitmq url is not configured")

type Publisher interface {
	Publish(ctx context.Context, queue, messageID string, payload any) (err error)
	Close() error
}

type publisherImpl struct {
	config *config.Config
	otel   otel.Otel

	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]bool
}

// New returns a publisher that dials the broker on first use and redials
// after the connection drops.
func New(config *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		config:   config,
		otel:     otel,
		declared: map[string]bool{},
	}
}

func (p *publisherImpl) Publish(ctx context.Context, queue, messageID string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal rabbitmq payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	channel, err := p.channelFor(queue)
	if err != nil {
		return err
	}

	err = channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    timezone.Now(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to publish to rabbitmq")
		p.reset()

		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	return nil
}

// channelFor must be called with mu held.
func (p *publisherImpl) channelFor(queue string) (*amqp.Channel, error) {
	if p.config.RabbitMQ.URL == "" {
		return nil, ErrNoURL
	}

	if p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed() {
		p.reset()

		conn, err := amqp.Dial(p.config.RabbitMQ.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
		}

		channel, err := conn.Channel()
		if err != nil {
			_ = conn.Close()

			return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
		}

		p.conn, p.channel = conn, channel

		log.Info().Msg("Connected to RabbitMQ")
	}

	if !p.declared[queue] {
		if _, err := p.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}

		p.declared[queue] = true
	}

	return p.channel, nil
}

// reset must be called with mu held.
func (p *publisherImpl) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
	}

	if p.conn != nil {
		_ = p.conn.Close()
	}

	p.conn, p.channel = nil, nil
	p.declared = map[string]bool{}
}

func (p *publisherImpl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}

	err := p.conn.Close()
	p.conn, p.channel = nil, nil

	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("failed to close rabbitmq connection: %w", err)
	}

	return nil
}
