// Package kafka publishes outbox events to a Kafka topic with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"ecofleet/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	HeaderMessageID = "message-id"
	HeaderEventType = "event-type"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes one Kafka message per event. The key is the aggregate id
// so all events of one aggregate land on one partition in outbox order.
type Publisher struct {
	writer MessageWriter
	log    *zap.Logger
}

func NewPublisher(writer MessageWriter, log *zap.Logger) *Publisher {
	return &Publisher{writer: writer, log: log.With(zap.String("component", "kafka-publisher"))}
}

// NewWriter builds a writer for topic that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func (p *Publisher) Publish(ctx context.Context, evt ports.PublishedEvent) error {
	data, err := json.Marshal(evt.Event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.Event.EventType(), err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Event.AggregateID().String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: HeaderMessageID, Value: []byte(evt.MessageID.String())},
			{Key: HeaderEventType, Value: []byte(evt.Event.EventType())},
		},
		Time: evt.Event.OccurredOn(),
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("message_id", evt.MessageID.String()), zap.Error(err))
		return err
	}

	p.log.Debug("Event published", zap.String("message_id", evt.MessageID.String()), zap.String("event_type", evt.Event.EventType()))
	return nil
}
