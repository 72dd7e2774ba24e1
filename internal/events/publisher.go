package events

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends events to RabbitMQ. It is deliberately fire-and-forget:
// errors are logged and returned so callers can ignore them without
// interrupting the request flow. A nil Publisher, or one without a URL,
// publishes nothing.
type Publisher struct {
	URL string
}

// NewPublisherFromEnv builds a Publisher from RABBITMQ_URL (AMQP_URL as a
// fallback). When neither is set the publisher is disabled.
func NewPublisherFromEnv() *Publisher {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return &Publisher{URL: url}
}

// UserRegistered publishes ev to the user.registered queue.
func (p *Publisher) UserRegistered(ctx context.Context, ev UserRegisteredEvent) error {
	return p.publish(ctx, QueueUserRegistered, ev)
}

// RecordAdded publishes ev to the record.added queue.
func (p *Publisher) RecordAdded(ctx context.Context, ev RecordAddedEvent) error {
	return p.publish(ctx, QueueRecordAdded, ev)
}

func (p *Publisher) publish(ctx context.Context, queue string, payload any) error {
	if p == nil || p.URL == "" {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
