package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Aggregates added or updated through its repositories are tracked, and
// Commit writes their pending events to the outbox in the same transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit drains tracked aggregates into the outbox and commits.
	// Event buffers are cleared only when the commit succeeded.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	DriverRepository() DriverRepository
	VehicleRepository() VehicleRepository
	OrderRepository() OrderRepository
	AssignmentRepository() AssignmentRepository

	// OutboxRepository is used by the dispatcher, within its own unit of work.
	OutboxRepository() OutboxRepository
}
