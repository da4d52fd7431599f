// Package postgres provides the GORM-based Unit of Work and the transactional
// outbox write path.
//
// Every aggregate added or updated through a repository obtained from a
// GormUnitOfWork is tracked. Commit turns the pending events of all tracked
// aggregates into outbox_messages rows inside the same transaction as the
// aggregate rows, so either both become durable or neither does.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	d, err := uow.DriverRepository().Get(ctx, driverID)
//	if err != nil {
//	    return err
//	}
//	if err = d.Suspend(); err != nil {
//	    return err // nothing reaches the outbox
//	}
//	if err = uow.DriverRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // driver row + one driver.suspended.v1 row
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; do not share it between goroutines
//   - The dispatcher uses its own UnitOfWork and only touches outbox_messages
package postgres

import (
	"context"
	"fmt"

	"ecofleet/internal/adapters/out/postgres/assignmentrepo"
	"ecofleet/internal/adapters/out/postgres/driverrepo"
	"ecofleet/internal/adapters/out/postgres/orderrepo"
	"ecofleet/internal/adapters/out/postgres/outboxrepo"
	"ecofleet/internal/adapters/out/postgres/vehiclerepo"
	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one event registry.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	registry *events.Registry
}

// NewGormUnitOfWorkFactory creates a factory. registry encodes pending events
// into outbox content on commit; an event whose tag is not registered fails
// the commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, events.NewFleetRegistry())
func NewGormUnitOfWorkFactory(db *gorm.DB, registry *events.Registry) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, registry: registry}
}

// Create produces a new UnitOfWork with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion, for callers that
// need TrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		registry: f.registry,
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// touched within it.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	registry *events.Registry

	// tracked keeps first-seen order; a later Track of the same id replaces
	// the instance in place.
	tracked []kernel.EventSource
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit drains tracked aggregates into the outbox and commits.
//
// Steps:
//  1. every pending event of every tracked aggregate becomes one outbox row
//  2. rows are inserted through the open transaction
//  3. the transaction commits
//  4. only then are the drained buffers cleared
//
// If any step fails the transaction is rolled back and the buffers are left
// intact, so the caller can inspect or retry with a fresh unit of work.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, drained, err := uow.collectOutboxMessages()
	if err == nil && len(messages) > 0 {
		err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages)
	}
	if err != nil {
		_ = uow.tx.Rollback().Error
		uow.tx = nil
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range drained {
		aggregate.ClearEvents()
	}
	uow.tracked = nil
	return nil
}

// Rollback discards all changes made within the current transaction.
// Tracked aggregates are forgotten; their buffers are not touched.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

// OutboxRepository binds to the current transaction, which is what makes the
// row locks taken by ClaimPending last until Commit.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate whose pending events must reach the
// outbox on commit. Repositories call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.EventSource) {
	for i, existing := range uow.tracked {
		if existing.ID().IsEqual(aggregate.ID()) {
			uow.tracked[i] = aggregate
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

// TrackedAggregates returns the aggregates registered since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.EventSource {
	return append([]kernel.EventSource(nil), uow.tracked...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) collectOutboxMessages() ([]*outbox.Message, []kernel.EventSource, error) {
	var (
		messages []*outbox.Message
		drained  []kernel.EventSource
	)

	for _, aggregate := range uow.tracked {
		pending := aggregate.PendingEvents()
		if len(pending) == 0 {
			continue
		}

		for _, evt := range pending {
			tag, content, err := uow.registry.Encode(evt)
			if err != nil {
				return nil, nil, fmt.Errorf("outbox: aggregate %s: %w", aggregate.ID(), err)
			}

			msg, err := outbox.NewMessage(kernel.NewUUID(), tag, content, evt.OccurredOn())
			if err != nil {
				return nil, nil, fmt.Errorf("outbox: aggregate %s: %w", aggregate.ID(), err)
			}
			messages = append(messages, msg)
		}
		drained = append(drained, aggregate)
	}

	return messages, drained, nil
}
