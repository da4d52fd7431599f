// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ecofleet/internal/core/ports"
)

// Unit of Work interfaces narrow the full ports.UnitOfWork down to the
// repositories a handler actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// FleetUoW spans drivers and vehicles. Assigning a driver changes both
	// aggregates, and each one's events reach the outbox in the same commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   drivers := uow.DriverRepository()
	//   vehicles := uow.VehicleRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	FleetUoW interface {
		TxManager
		DriverRepoFactory
		VehicleRepoFactory
	}

	FleetUoWFactory interface {
		Create() FleetUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)
