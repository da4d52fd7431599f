// Package vehicle implements the Vehicle aggregate.
//
// Idle ──AssignDriver──> Active ──UnassignDriver──> Idle
// Idle|Maintenance ──MarkForMaintenance──> Maintenance
//
// Every successful AssignDriver raises VehicleDriverAssigned, reassignment
// included; MarkForMaintenance raises VehicleMaintenanceStarted.
package vehicle

import (
	"errors"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

	ErrVehicleInMaintenance = errs.NewDomainRuleViolationError("cannot assign a driver to a vehicle in maintenance")
	ErrCannotMaintainActive = errs.NewDomainRuleViolationError("cannot maintain a vehicle currently in use")
)

type Vehicle struct {
	kernel.AggregateRoot

	plate    kernel.Plate
	location kernel.GeoLocation
	status   Status
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewVehicle registers a vehicle at location. With a driver the vehicle starts
// Active and has already raised one VehicleDriverAssigned.
func NewVehicle(id kernel.UUID, plate kernel.Plate, location kernel.GeoLocation, driverID *kernel.UUID) (*Vehicle, error) {
	v := &Vehicle{
		AggregateRoot: kernel.NewAggregateRoot(id),
		status:        Idle,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		v.setPlate(plate),
		v.setLocation(location),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := v.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// RestoreVehicle rebuilds a vehicle from persisted state without raising events.
func RestoreVehicle(
	id kernel.UUID,
	plate kernel.Plate,
	location kernel.GeoLocation,
	status Status,
	driverID *kernel.UUID,
) (*Vehicle, error) {
	v, err := NewVehicle(id, plate, location, nil)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if (status == Active) != (driverID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s vehicle cannot have driver=%t", status, driverID != nil))
	}

	v.status = status
	if driverID != nil {
		v.driverID = driverID.Ptr()
	}
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.ID().IsEqual(other.ID())
}

func (v *Vehicle) Plate() kernel.Plate           { return v.plate }
func (v *Vehicle) Location() kernel.GeoLocation  { return v.location }
func (v *Vehicle) Status() Status                { return v.status }
func (v *Vehicle) CurrentDriverID() *kernel.UUID { return v.driverID }

// AssignDriver activates the vehicle with driverID.
func (v *Vehicle) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if v.status == Maintenance {
		return ErrVehicleInMaintenance
	}

	v.driverID = driverID.Ptr()
	v.status = Active
	v.RaiseEvent(events.VehicleDriverAssigned{
		VehicleID:  v.ID(),
		DriverID:   driverID,
		Plate:      v.plate.Value(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// UnassignDriver idles an active vehicle; it does nothing otherwise.
func (v *Vehicle) UnassignDriver() {
	if v.status != Active {
		return
	}
	v.driverID = nil
	v.status = Idle
}

func (v *Vehicle) MarkForMaintenance() error {
	if v.status == Active {
		return ErrCannotMaintainActive
	}

	v.status = Maintenance
	v.driverID = nil
	v.RaiseEvent(events.VehicleMaintenanceStarted{
		VehicleID:  v.ID(),
		Plate:      v.plate.Value(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// MoveTo records a new position. Position updates are telemetry, not domain
// facts, so nothing is raised.
func (v *Vehicle) MoveTo(location kernel.GeoLocation) error {
	return v.setLocation(location)
}

func (v *Vehicle) setPlate(plate kernel.Plate) error {
	if err := plate.Validate(); err != nil {
		return err
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	v.location = location
	return nil
}
