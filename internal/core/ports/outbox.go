package ports

import (
	"context"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"
)

// OutboxRepository is the dispatcher's view of outbox_messages. Rows are
// only ever inserted by the unit of work commit.
type OutboxRepository interface {
	// ClaimPending selects up to limit pending messages ordered by
	// occurred_on, locking them for the current transaction and skipping rows
	// another transaction already holds.
	ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// SaveOutcome writes processed_on and error back for each message.
	SaveOutcome(ctx context.Context, messages []*outbox.Message) error
}

// PublishedEvent is what travels on the bus: the decoded event plus the
// outbox message id, which consumers use to drop redeliveries.
type PublishedEvent struct {
	MessageID kernel.UUID
	Event     events.DomainEvent
}

// EventPublisher delivers one event. An error means the event may or may not
// have reached the bus; the outbox records it and does not retry.
type EventPublisher interface {
	Publish(ctx context.Context, evt PublishedEvent) error
}

// EventHandler consumes events delivered by a bus subscription.
type EventHandler interface {
	Handle(ctx context.Context, evt PublishedEvent) error
}
