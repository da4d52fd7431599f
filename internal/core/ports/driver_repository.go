// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, the outbox and the message bus.
package ports

import (
	"context"

	"ecofleet/internal/core/domain/model/assignment"
	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/vehicle"
)

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *assignment.ManagerDriverAssignment) error
	Update(ctx context.Context, aggregate *assignment.ManagerDriverAssignment) error
	Get(ctx context.Context, id kernel.UUID) (*assignment.ManagerDriverAssignment, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
