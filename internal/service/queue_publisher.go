// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/ecowave/ecowave-hub/internal/queue"
)

// PublishSubmissionReviewed publishes a SubmissionReviewedEvent to the
// submission.reviewed queue. The function never panics; any error is
// logged and returned so the caller can choose to ignore it. Messages
// are marked persistent so they survive broker restarts.
func PublishSubmissionReviewed(ctx context.Context, event q.SubmissionReviewedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		slog.Warn("rabbitmq dial failed", "type", "queue", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("rabbitmq channel open failed", "type", "queue", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.ReviewQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		slog.Warn("rabbitmq queue declare failed", "type", "queue", "error", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Warn("rabbitmq marshal event failed", "type", "queue", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                // default exchange
		q.ReviewQueueName, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		pub,
	); err != nil {
		slog.Warn("rabbitmq publish failed", "type", "queue", "error", err)
		return err
	}

	return nil
}
