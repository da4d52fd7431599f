// Package bus contains in-process publishers: LocalBus hands events to
// subscribed handlers, FanoutPublisher forwards to several publishers.
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ecofleet/internal/core/ports"

	"go.uber.org/zap"
)

// LocalBus delivers synchronously to the handlers subscribed to an event's
// tag. Publish returns the joined handler errors, so a failing handler makes
// the outbox record a failed delivery.
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
	log      *zap.Logger
}

var _ ports.EventPublisher = (*LocalBus)(nil)

func NewLocalBus(log *zap.Logger) *LocalBus {
	return &LocalBus{
		handlers: make(map[string][]ports.EventHandler),
		log:      log.With(zap.String("component", "local-bus")),
	}
}

// Subscribe registers handler for each of tags.
func (b *LocalBus) Subscribe(handler ports.EventHandler, tags ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, tag := range tags {
		b.handlers[tag] = append(b.handlers[tag], handler)
	}
}

func (b *LocalBus) Publish(ctx context.Context, evt ports.PublishedEvent) error {
	tag := evt.Event.EventType()

	b.mu.RLock()
	handlers := append([]ports.EventHandler(nil), b.handlers[tag]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("no subscribers", zap.String("event_type", tag))
		return nil
	}

	var errs []error
	for _, h := range handlers {
		if err := h.Handle(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FanoutPublisher publishes to every configured publisher in order. A
// failure of any one fails the publish; the others are still attempted.
type FanoutPublisher struct {
	publishers []ports.EventPublisher
}

var _ ports.EventPublisher = (*FanoutPublisher)(nil)

func NewFanoutPublisher(publishers ...ports.EventPublisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

func (f *FanoutPublisher) Publish(ctx context.Context, evt ports.PublishedEvent) error {
	var errs []error
	for i, p := range f.publishers {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("publisher %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
