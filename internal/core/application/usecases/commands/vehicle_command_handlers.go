package commands

import (
	"context"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/vehicle"
	"ecofleet/internal/core/ports"
)

// CreateVehicleCommandHandler adds a vehicle. When the command names a driver,
// the driver goes on duty in the same transaction, so the vehicle's
// VehicleDriverAssigned event and the driver's new status commit together.
type CreateVehicleCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewCreateVehicleCommandHandler(uowFactory FleetUoWFactory) CreateVehicleCommandHandler {
	return CreateVehicleCommandHandler{uowFactory: uowFactory}
}

func (h CreateVehicleCommandHandler) Handle(ctx context.Context, cmd CreateVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	vehicleRepo := uow.VehicleRepository()

	var d *driver.Driver
	if cmd.DriverID() != nil {
		var err error
		if d, err = driverRepo.Get(ctx, *cmd.DriverID()); err != nil {
			return err
		}
		if err = releaseDriverVehicle(ctx, vehicleRepo, d, cmd.VehicleID()); err != nil {
			return err
		}
		if err = d.AssignVehicle(cmd.VehicleID()); err != nil {
			return err
		}
	}

	v, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.Plate(), cmd.Location(), cmd.DriverID())
	if err != nil {
		return err
	}

	if err = vehicleRepo.Add(ctx, v); err != nil {
		return err
	}
	if d != nil {
		if err = driverRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// AssignDriverCommandHandler puts the driver on the vehicle. A vehicle the
// driver held before is idled, and a driver the vehicle carried before goes
// back to Available, all in one commit.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	cmd, _ := NewAssignDriverCommand(vehicleID, driverID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrDomainRuleViolated) {
//	    // suspended driver or vehicle in maintenance
//	}
type AssignDriverCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewAssignDriverCommandHandler(uowFactory FleetUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{uowFactory: uowFactory}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	vehicleRepo := uow.VehicleRepository()

	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if prev := v.CurrentDriverID(); prev != nil && !prev.IsEqual(d.ID()) {
		if err = releaseVehicleDriver(ctx, driverRepo, *prev); err != nil {
			return err
		}
	}
	if err = releaseDriverVehicle(ctx, vehicleRepo, d, v.ID()); err != nil {
		return err
	}

	if err = d.AssignVehicle(v.ID()); err != nil {
		return err
	}
	if err = v.AssignDriver(d.ID()); err != nil {
		return err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// UnassignDriverCommandHandler idles the vehicle and returns its driver, if
// any, to Available. Neither change raises an event.
type UnassignDriverCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewUnassignDriverCommandHandler(uowFactory FleetUoWFactory) UnassignDriverCommandHandler {
	return UnassignDriverCommandHandler{uowFactory: uowFactory}
}

func (h UnassignDriverCommandHandler) Handle(ctx context.Context, cmd UnassignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()

	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if driverID := v.CurrentDriverID(); driverID != nil {
		if err = releaseVehicleDriver(ctx, uow.DriverRepository(), *driverID); err != nil {
			return err
		}
	}

	v.UnassignDriver()
	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// StartMaintenanceCommandHandler sends an idle vehicle to maintenance.
type StartMaintenanceCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewStartMaintenanceCommandHandler(uowFactory FleetUoWFactory) StartMaintenanceCommandHandler {
	return StartMaintenanceCommandHandler{uowFactory: uowFactory}
}

func (h StartMaintenanceCommandHandler) Handle(ctx context.Context, cmd StartMaintenanceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()

	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = v.MarkForMaintenance(); err != nil {
		return err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseDriverVehicle idles the vehicle d currently drives, unless it is
// keep.
func releaseDriverVehicle(ctx context.Context, vehicleRepo ports.VehicleRepository, d *driver.Driver, keep kernel.UUID) error {
	current := d.VehicleID()
	if current == nil || current.IsEqual(keep) {
		return nil
	}

	v, err := vehicleRepo.Get(ctx, *current)
	if err != nil {
		return err
	}
	v.UnassignDriver()
	return vehicleRepo.Update(ctx, v)
}

// releaseVehicleDriver takes driverID off duty.
func releaseVehicleDriver(ctx context.Context, driverRepo ports.DriverRepository, driverID kernel.UUID) error {
	d, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		return err
	}
	d.UnassignVehicle()
	return driverRepo.Update(ctx, d)
}
