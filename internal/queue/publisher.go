// Package queue is the RabbitMQ transport: durable queues on the default
// exchange, JSON bodies, persistent deliveries.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

// Publisher keeps one connection and channel, reopened on the next publish
// after a failure. It is safe for concurrent use.
type Publisher struct {
	url          string
	eventosQueue string
	log          *zap.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func NewPublisher(url, eventosQueue string, l *zap.Logger) *Publisher {
	return &Publisher{url: url, eventosQueue: eventosQueue, log: l, declared: make(map[string]bool)}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("amqp dial: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	p.ch = ch
	p.declared = make(map[string]bool)
	return ch, nil
}

// PublishJSON marshals v and publishes it to queue, declaring the queue
// durable on first use.
func (p *Publisher) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		return err
	}
	if !p.declared[queue] {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.ch = nil
			return fmt.Errorf("queue declare %s: %w", queue, err)
		}
		p.declared[queue] = true
	}
	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.ch = nil
		return fmt.Errorf("publish %s: %w", queue, err)
	}
	return nil
}

func (p *Publisher) PublishEventoCreated(ctx context.Context, ev domain.EventoCreated) error {
	if err := p.PublishJSON(ctx, p.eventosQueue, ev); err != nil {
		return err
	}
	p.log.Debug("evento.created published", zap.String("evento", ev.ID))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
