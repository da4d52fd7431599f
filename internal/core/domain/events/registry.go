package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMalformedContent = errors.New("malformed event content")
)

type decoder func(content []byte) (DomainEvent, error)

// Registry maps type tags to decoders. Lookup is by the tag string only, so a
// message written by another service version decodes as long as the tag is
// registered here.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]decoder)}
}

// NewFleetRegistry returns a registry with every event the fleet aggregates
// raise.
func NewFleetRegistry() *Registry {
	r := NewRegistry()
	Register[DriverSuspended](r, DriverSuspendedType)
	Register[DriverReinstated](r, DriverReinstatedType)
	Register[VehicleDriverAssigned](r, VehicleDriverAssignedType)
	Register[VehicleMaintenanceStarted](r, VehicleMaintenanceStartedType)
	Register[OrderCreated](r, OrderCreatedType)
	Register[OrderStarted](r, OrderStartedType)
	Register[OrderCompleted](r, OrderCompletedType)
	Register[OrderCancelled](r, OrderCancelledType)
	Register[OrderPriceUpdated](r, OrderPriceUpdatedType)
	return r
}

// Register binds tag to the JSON shape T. Registering a tag twice replaces the
// previous binding.
func Register[T DomainEvent](r *Registry, tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[tag] = func(content []byte) (DomainEvent, error) {
		var evt T
		if err := json.Unmarshal(content, &evt); err != nil {
			return nil, err
		}
		return evt, nil
	}
}

// Resolve reports whether tag is known.
func (r *Registry) Resolve(tag string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.decoders[tag]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, tag)
	}
	return nil
}

// Encode serializes evt and returns its tag. Events whose tag is not
// registered are refused so nothing undecodable reaches the outbox.
func (r *Registry) Encode(evt DomainEvent) (string, string, error) {
	if evt == nil {
		return "", "", fmt.Errorf("%w: nil event", ErrUnknownEventType)
	}
	tag := evt.EventType()
	if err := r.Resolve(tag); err != nil {
		return "", "", err
	}

	content, err := json.Marshal(evt)
	if err != nil {
		return "", "", fmt.Errorf("encode %s: %w", tag, err)
	}
	return tag, string(content), nil
}

func (r *Registry) Decode(tag, content string) (DomainEvent, error) {
	r.mu.RLock()
	dec, ok := r.decoders[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, tag)
	}

	evt, err := dec([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedContent, tag, err)
	}
	return evt, nil
}

// Types lists registered tags in lexical order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.decoders))
	for tag := range r.decoders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
