package ports

import (
	"context"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/order"
)

// OrderRepository persists orders as snapshot rows through the unit of work.
// Do not mix it with OrderEventStore for the same order: each owns its own
// commit path.
type OrderRepository interface {
	// Add persists a new order aggregate. The order is tracked so the commit
	// drains its pending events into the outbox.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and tracks it.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the row. No event is raised.
	Delete(ctx context.Context, id kernel.UUID) error
}

// OrderEventStore is the event-sourced alternative to OrderRepository. The
// stream is the source of truth; there is no snapshot row and no outbox
// involvement.
type OrderEventStore interface {
	// Load replays the order's stream. An empty stream is
	// errs.ObjectNotFoundError.
	Load(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Save appends exactly the pending events at the order's expected
	// version, then clears them. Nothing pending means nothing to do.
	Save(ctx context.Context, aggregate *order.Order) error
}
