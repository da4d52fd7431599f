// Package kafka feeds events read from the fleet topic into an EventHandler.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	headerMessageID = "message-id"
	headerEventType = "event-type"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

const (
	DefaultRetryInterval    = 500 * time.Millisecond
	DefaultMaxRetryInterval = 30 * time.Second
)

// Consumer commits an offset only after the handler accepted the message or
// the message could never be handled (unknown tag, bad payload). A handler
// failure is retried on the same message until it succeeds or the context
// ends: a group reader commits offsets per partition, so moving on would
// commit past the failed message.
type Consumer struct {
	reader           MessageReader
	registry         *events.Registry
	handler          ports.EventHandler
	log              *zap.Logger
	retryInterval    time.Duration
	maxRetryInterval time.Duration
}

type Option func(*Consumer)

// WithRetryInterval sets the first and the largest pause between attempts
// at a failing message.
func WithRetryInterval(initial, maxInterval time.Duration) Option {
	return func(c *Consumer) {
		c.retryInterval = initial
		c.maxRetryInterval = maxInterval
	}
}

func NewConsumer(
	reader MessageReader,
	registry *events.Registry,
	handler ports.EventHandler,
	log *zap.Logger,
	opts ...Option,
) *Consumer {
	c := &Consumer{
		reader:           reader,
		registry:         registry,
		handler:          handler,
		log:              log.With(zap.String("component", "kafka-consumer")),
		retryInterval:    DefaultRetryInterval,
		maxRetryInterval: DefaultMaxRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewReader builds a group reader for topic.
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.log.Info("Kafka consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("Kafka consumer stopped")
				return
			}
			c.log.Error("Error reading from Kafka", zap.Error(err))
			continue
		}

		if err = c.handleWithRetry(ctx, msg); err != nil {
			c.log.Info("Kafka consumer stopped with message unhandled",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			return
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.log.Error("Error committing Kafka offset", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handleWithRetry only returns an error once ctx is done; the offset is then
// left uncommitted and the message is redelivered to the next reader.
func (c *Consumer) handleWithRetry(ctx context.Context, msg kafka.Message) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxInterval = c.maxRetryInterval
	policy.MaxElapsedTime = 0

	return backoff.RetryNotify(
		func() error {
			if err := ctx.Err(); err != nil {
				return backoff.Permanent(err)
			}
			return c.handle(ctx, msg)
		},
		backoff.WithContext(policy, ctx),
		func(err error, wait time.Duration) {
			c.log.Warn("Kafka message not handled, retrying",
				zap.Int64("offset", msg.Offset), zap.Duration("retry_in", wait), zap.Error(err))
		},
	)
}

// errPoison marks messages that can never be handled; their offset is
// committed so they do not block the partition.
var errPoison = errors.New("poison message")

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	evt, err := c.decode(msg)
	if errors.Is(err, errPoison) {
		c.log.Error("Dropping undecodable Kafka message", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}
	return c.handler.Handle(ctx, evt)
}

func (c *Consumer) decode(msg kafka.Message) (ports.PublishedEvent, error) {
	var tag, rawID string
	for _, h := range msg.Headers {
		switch h.Key {
		case headerEventType:
			tag = string(h.Value)
		case headerMessageID:
			rawID = string(h.Value)
		}
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return ports.PublishedEvent{}, fmt.Errorf("%w: message id: %w", errPoison, err)
	}

	evt, err := c.registry.Decode(tag, string(msg.Value))
	if err != nil {
		return ports.PublishedEvent{}, fmt.Errorf("%w: %w", errPoison, err)
	}
	return ports.PublishedEvent{MessageID: id, Event: evt}, nil
}
