// Package events publishes processing activity to a message broker so
// external consumers (analytics, billing) can follow along. Publishing is
// fire-and-forget: a broker outage never fails a user request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ProcessingEvent describes one finished processing attempt.
type ProcessingEvent struct {
	UserID      int64     `json:"userId"`
	ContentType string    `json:"contentType"`
	Success     bool      `json:"success"`
	Seconds     float64   `json:"seconds"`
	SizeKB      float64   `json:"sizeKb"`
	ErrorKind   string    `json:"errorKind,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher emits processing events.
type Publisher interface {
	PublishProcessing(ctx context.Context, ev ProcessingEvent)
	Close() error
}

// AMQPPublisher publishes events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// PublishProcessing emits an event with routing key "processing.<type>".
func (p *AMQPPublisher) PublishProcessing(ctx context.Context, ev ProcessingEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("marshal processing event", "err", err)
		return
	}
	key := "processing." + ev.ContentType
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		p.logger.Warn("publish processing event", "key", key, "err", err)
	}
}

// Close shuts down the channel and connection.
func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishProcessing(context.Context, ProcessingEvent) {}

func (NopPublisher) Close() error { return nil }
