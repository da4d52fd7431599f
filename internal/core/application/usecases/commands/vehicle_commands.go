package commands

import (
	"errors"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrCreateVehicleCommandIsNotConstructed = errors.New(
		"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
	)
	ErrAssignDriverCommandIsNotConstructed = errors.New(
		"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
	)
	ErrUnassignDriverCommandIsNotConstructed = errors.New(
		"UnassignDriverCommand must be created via NewUnassignDriverCommand constructor",
	)
	ErrStartMaintenanceCommandIsNotConstructed = errors.New(
		"StartMaintenanceCommand must be created via NewStartMaintenanceCommand constructor",
	)
)

// CreateVehicleCommand registers a vehicle, optionally handing it to a driver
// straight away.
type CreateVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	plate     kernel.Plate
	location  kernel.GeoLocation
	driverID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateVehicleCommand(
	vehicleID kernel.UUID,
	plate kernel.Plate,
	location kernel.GeoLocation,
	driverID *kernel.UUID,
) (CreateVehicleCommand, error) {
	if err := errors.Join(
		vehicleID.Validate(),
		plate.Validate(),
		location.Validate(),
	); err != nil {
		return CreateVehicleCommand{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return CreateVehicleCommand{}, err
		}
	}

	return CreateVehicleCommand{
		vehicleID: vehicleID,
		plate:     plate,
		location:  location,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}

func (c CreateVehicleCommand) VehicleID() kernel.UUID       { return c.vehicleID }
func (c CreateVehicleCommand) Plate() kernel.Plate          { return c.plate }
func (c CreateVehicleCommand) Location() kernel.GeoLocation { return c.location }
func (c CreateVehicleCommand) DriverID() *kernel.UUID       { return c.driverID }

// AssignDriverCommand pairs a driver with a vehicle.
type AssignDriverCommand struct {
	vehicleID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(vehicleID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(vehicleID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	return AssignDriverCommand{vehicleID: vehicleID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c AssignDriverCommand) DriverID() kernel.UUID  { return c.driverID }

type UnassignDriverCommand struct {
	vehicleID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewUnassignDriverCommand(vehicleID kernel.UUID) (UnassignDriverCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return UnassignDriverCommand{}, err
	}
	return UnassignDriverCommand{vehicleID: vehicleID, guard: guard.NewConstructorGuard()}, nil
}

func (c UnassignDriverCommand) Validate() error {
	return c.guard.Validate(ErrUnassignDriverCommandIsNotConstructed)
}

func (c UnassignDriverCommand) VehicleID() kernel.UUID { return c.vehicleID }

type StartMaintenanceCommand struct {
	vehicleID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewStartMaintenanceCommand(vehicleID kernel.UUID) (StartMaintenanceCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return StartMaintenanceCommand{}, err
	}
	return StartMaintenanceCommand{vehicleID: vehicleID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrStartMaintenanceCommandIsNotConstructed)
}

func (c StartMaintenanceCommand) VehicleID() kernel.UUID { return c.vehicleID }
