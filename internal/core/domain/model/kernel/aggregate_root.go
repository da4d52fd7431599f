package kernel

import (
	"slices"
	"time"
)

// DomainEvent is an immutable fact recorded by an aggregate behaviour method.
// EventType is a stable versioned tag such as "driver.suspended.v1"; it is
// what the outbox stores and what consumers subscribe to.
type DomainEvent interface {
	EventType() string
	AggregateID() UUID
	OccurredOn() time.Time
}

// AggregateRoot carries identity and the buffer of events raised since the
// last successful commit. Aggregates embed it and only ever append through
// RaiseEvent; the unit of work reads the buffer with PendingEvents and
// empties it with ClearEvents once the transaction is durable.
type AggregateRoot struct {
	id     UUID
	events []DomainEvent
}

func NewAggregateRoot(id UUID) AggregateRoot {
	return AggregateRoot{id: id}
}

func (a *AggregateRoot) ID() UUID {
	return a.id
}

// PendingEvents returns a copy of the buffer in raise order.
func (a *AggregateRoot) PendingEvents() []DomainEvent {
	return slices.Clone(a.events)
}

func (a *AggregateRoot) HasPendingEvents() bool {
	return len(a.events) > 0
}

func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}

// RaiseEvent appends to the buffer. Call it last in a behaviour method, after
// every precondition has passed and state has been updated.
func (a *AggregateRoot) RaiseEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// EventSource is the view of an aggregate the persistence layer needs to drain
// its buffer.
type EventSource interface {
	ID() UUID
	PendingEvents() []DomainEvent
	ClearEvents()
}
