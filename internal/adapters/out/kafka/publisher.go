// Package kafka streams order lifecycle events to a Kafka topic, keyed by order
// id so that the events of one order stay in one partition and in order.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"makanapa/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter returns a writer that hashes message keys onto partitions.
func NewWriter(brokers []string, topic string, timeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
	}
}

type eventPayload struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	RunnerID   *int64    `json:"runner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher implements ports.OrderEventPublisher.
type Publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event order.Event) error {
	payload := eventPayload{
		EventID:    event.ID.String(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.Int64(),
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.RunnerID != nil {
		id := event.RunnerID.Int64()
		payload.RunnerID = &id
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: data,
		Time:  payload.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(payload.Type)},
		},
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, order.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
