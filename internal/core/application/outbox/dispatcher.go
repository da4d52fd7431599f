// Package outbox moves committed domain events from outbox_messages to the
// bus. One call to Dispatcher.ProcessPass handles one batch in one
// transaction; scheduling lives in the jobs package.
//
// Every claimed message ends the pass terminal: delivered, or failed with the
// reason in its error column. Nothing is put back for a later pass.
package outbox

import (
	"context"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/events"
	outboxmsg "ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize       = 20
	DefaultPublishTimeout  = 10 * time.Second
	DefaultPublishAttempts = 1
	DefaultRetryInterval   = 200 * time.Millisecond
)

type (
	// OutboxUoW is the slice of the unit of work the dispatcher needs.
	OutboxUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OutboxRepository() ports.OutboxRepository
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Config tunes a Dispatcher. Zero fields take the defaults above.
type Config struct {
	BatchSize      int
	PublishTimeout time.Duration
	// PublishAttempts above 1 retries a failed publish within the same pass
	// with exponential backoff. The message is still marked failed when the
	// last attempt fails.
	PublishAttempts int
	RetryInterval   time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = DefaultPublishTimeout
	}
	if c.PublishAttempts <= 0 {
		c.PublishAttempts = DefaultPublishAttempts
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	return c
}

// PassResult counts what one pass did.
type PassResult struct {
	Claimed   int
	Published int
	Failed    int
}

type Dispatcher struct {
	uowFactory OutboxUoWFactory
	registry   *events.Registry
	publisher  ports.EventPublisher
	cfg        Config
	logger     *zap.Logger
	tracer     trace.Tracer
	published  metric.Int64Counter
	failed     metric.Int64Counter
	now        func() time.Time
}

func NewDispatcher(
	uowFactory OutboxUoWFactory,
	registry *events.Registry,
	publisher ports.EventPublisher,
	cfg Config,
	logger *zap.Logger,
) *Dispatcher {
	meter := otel.Meter("ecofleet/outbox")
	logger = logger.With(zap.String("component", "outbox-dispatcher"))

	published, err := meter.Int64Counter("outbox.messages.published",
		metric.WithDescription("Outbox messages handed to the bus"))
	if err != nil {
		logger.Warn("published counter unavailable", zap.Error(err))
	}
	failed, err := meter.Int64Counter("outbox.messages.failed",
		metric.WithDescription("Outbox messages dead-lettered with an error"))
	if err != nil {
		logger.Warn("failed counter unavailable", zap.Error(err))
	}

	return &Dispatcher{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		tracer:     otel.Tracer("ecofleet/outbox"),
		published:  published,
		failed:     failed,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ProcessPass claims up to BatchSize pending messages oldest first, publishes
// them one by one and commits every outcome at once. An error means the pass
// was rolled back and the claimed rows are pending again.
func (d *Dispatcher) ProcessPass(ctx context.Context) (PassResult, error) {
	ctx, span := d.tracer.Start(ctx, "outbox.process_pass",
		trace.WithAttributes(attribute.Int("batch.size", d.cfg.BatchSize)),
	)
	defer span.End()

	var result PassResult

	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, d.fail(span, fmt.Errorf("begin pass: %w", err))
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	messages, err := repo.ClaimPending(ctx, d.cfg.BatchSize)
	if err != nil {
		return result, d.fail(span, fmt.Errorf("claim pending: %w", err))
	}

	result.Claimed = len(messages)
	span.SetAttributes(attribute.Int("messages.claimed", result.Claimed))
	if len(messages) == 0 {
		if err = uow.Commit(ctx); err != nil {
			return result, d.fail(span, fmt.Errorf("commit empty pass: %w", err))
		}
		return result, nil
	}

	for _, m := range messages {
		if d.dispatch(ctx, m) {
			result.Published++
		} else {
			result.Failed++
		}
	}

	if err = repo.SaveOutcome(ctx, messages); err != nil {
		return PassResult{}, d.fail(span, fmt.Errorf("save outcome: %w", err))
	}
	if err = uow.Commit(ctx); err != nil {
		return PassResult{}, d.fail(span, fmt.Errorf("commit pass: %w", err))
	}

	d.count(ctx, d.published, result.Published)
	d.count(ctx, d.failed, result.Failed)
	span.SetAttributes(
		attribute.Int("messages.published", result.Published),
		attribute.Int("messages.failed", result.Failed),
	)
	d.logger.Info("outbox pass finished",
		zap.Int("claimed", result.Claimed),
		zap.Int("published", result.Published),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// dispatch decides the fate of one message and records it on m.
func (d *Dispatcher) dispatch(ctx context.Context, m *outboxmsg.Message) bool {
	log := d.logger.With(zap.String("message_id", m.ID().String()), zap.String("event_type", m.Type()))

	if err := d.registry.Resolve(m.Type()); err != nil {
		log.Error("unresolvable outbox message", zap.Error(err))
		m.MarkFailed(d.now(), err)
		return false
	}

	evt, err := d.registry.Decode(m.Type(), m.Content())
	if err != nil {
		log.Error("undecodable outbox message", zap.Error(err))
		m.MarkFailed(d.now(), err)
		return false
	}

	if err = d.publish(ctx, ports.PublishedEvent{MessageID: m.ID(), Event: evt}); err != nil {
		log.Warn("publish failed", zap.Error(err))
		m.MarkFailed(d.now(), fmt.Errorf("publish: %w", err))
		return false
	}

	log.Debug("outbox message published")
	m.MarkDelivered(d.now())
	return true
}

func (d *Dispatcher) publish(ctx context.Context, evt ports.PublishedEvent) error {
	attempt := func() error {
		callCtx, cancel := context.WithTimeout(ctx, d.cfg.PublishTimeout)
		defer cancel()

		return d.publisher.Publish(callCtx, evt)
	}

	if d.cfg.PublishAttempts <= 1 {
		return attempt()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.cfg.RetryInterval
	return backoff.Retry(attempt, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(d.cfg.PublishAttempts-1)), ctx,
	))
}

func (d *Dispatcher) count(ctx context.Context, counter metric.Int64Counter, n int) {
	if counter == nil || n == 0 {
		return
	}
	counter.Add(ctx, int64(n))
}

func (d *Dispatcher) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	d.logger.Error("outbox pass aborted", zap.Error(err))
	return err
}
