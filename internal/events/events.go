// Package events publishes listing syndication events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Routing keys on the listings topic exchange
const (
	PropertyPublished      = "property.published"
	PropertyPortalsUpdated = "property.portals_updated"
	UnitStatusChanged      = "unit.status_changed"

	eventVersion = "1.0.0"
)

// Event is the envelope of every published message
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps a payload with a fresh id and the current time
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// PortalsPayload describes the syndication state of a property
type PortalsPayload struct {
	PropertyID uint     `json:"property_id"`
	Published  bool     `json:"published"`
	Portals    []string `json:"portals"`
}

// UnitStatusPayload describes a unit status transition
type UnitStatusPayload struct {
	DevelopmentID  uint   `json:"development_id"`
	UnitID         uint   `json:"unit_id"`
	UnitNumber     string `json:"unit_number"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events on a durable topic exchange
type AMQPPublisher struct {
	exchange string
	logger   *logrus.Logger
	conn     *amqp.Connection

	mu      sync.Mutex
	channel amqpChannel
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(url, exchange string, logger *logrus.Logger) (*AMQPPublisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("exchange name cannot be empty")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}

	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch amqpChannel, exchange string, logger *logrus.Logger) *AMQPPublisher {
	if logger == nil {
		logger = logrus.New()
	}
	return &AMQPPublisher{
		exchange: exchange,
		logger:   logger,
		channel:  ch,
	}
}

// Publish sends event with its type as routing key
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Headers: amqp.Table{
			"event-type":    event.Type,
			"event-version": eventVersion,
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return fmt.Errorf("publisher is closed")
	}

	if err := p.channel.PublishWithContext(publishCtx, p.exchange, event.Type, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"routing_key": event.Type,
	}).Debug("Published event")
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
