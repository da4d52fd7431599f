package driver

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
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	ErrSuspendedDriverCannotTakeVehicle = errs.NewDomainRuleViolationError("a suspended driver cannot be assigned a vehicle")
	ErrCannotSuspendOnDuty              = errs.NewDomainRuleViolationError("cannot suspend a driver currently on duty")
	ErrOnlySuspendedCanBeReinstated     = errs.NewDomainRuleViolationError("only suspended drivers can be reinstated")
)

// Driver is the aggregate root for a person who can operate fleet vehicles.
//
// Invariants:
//   - OnDuty if and only if a vehicle is assigned
//   - a Suspended driver holds no vehicle
type Driver struct {
	kernel.AggregateRoot

	name        kernel.PersonName
	license     kernel.License
	email       kernel.Email
	phone       *kernel.Phone
	dateOfBirth *time.Time
	status      Status
	vehicleID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDriver registers a driver. Passing a vehicle starts the driver OnDuty,
// otherwise the driver starts Available. No event is raised.
func NewDriver(
	id kernel.UUID,
	name kernel.PersonName,
	license kernel.License,
	email kernel.Email,
	phone *kernel.Phone,
	dateOfBirth *time.Time,
	vehicleID *kernel.UUID,
) (*Driver, error) {
	d := &Driver{
		AggregateRoot: kernel.NewAggregateRoot(id),
		status:        Available,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		d.setName(name),
		d.setLicense(license),
		d.setEmail(email),
		d.setPhone(phone),
		d.setDateOfBirth(dateOfBirth),
	); err != nil {
		return nil, err
	}

	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
		d.vehicleID = vehicleID.Ptr()
		d.status = OnDuty
	}

	return d, nil
}

// RestoreDriver rebuilds a driver from persisted state without raising events.
func RestoreDriver(
	id kernel.UUID,
	name kernel.PersonName,
	license kernel.License,
	email kernel.Email,
	phone *kernel.Phone,
	dateOfBirth *time.Time,
	status Status,
	vehicleID *kernel.UUID,
) (*Driver, error) {
	d, err := NewDriver(id, name, license, email, phone, dateOfBirth, nil)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if (status == OnDuty) != (vehicleID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%s driver cannot have vehicle=%t", status, vehicleID != nil))
	}

	d.status = status
	if vehicleID != nil {
		d.vehicleID = vehicleID.Ptr()
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.ID().IsEqual(other.ID())
}

func (d *Driver) Name() kernel.PersonName { return d.name }
func (d *Driver) License() kernel.License { return d.license }
func (d *Driver) Email() kernel.Email     { return d.email }
func (d *Driver) Phone() *kernel.Phone    { return d.phone }
func (d *Driver) DateOfBirth() *time.Time { return d.dateOfBirth }
func (d *Driver) Status() Status          { return d.status }
func (d *Driver) VehicleID() *kernel.UUID { return d.vehicleID }

// AssignVehicle puts the driver on duty with vehicleID. Reassigning an
// on-duty driver replaces the vehicle.
func (d *Driver) AssignVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if d.status == Suspended {
		return ErrSuspendedDriverCannotTakeVehicle
	}

	d.vehicleID = vehicleID.Ptr()
	d.status = OnDuty
	return nil
}

// UnassignVehicle takes an on-duty driver off duty. It does nothing in any
// other status.
func (d *Driver) UnassignVehicle() {
	if d.status != OnDuty {
		return
	}
	d.vehicleID = nil
	d.status = Available
}

// Suspend is allowed from Available and, again, from Suspended; every
// successful call raises DriverSuspended.
func (d *Driver) Suspend() error {
	if d.status == OnDuty {
		return ErrCannotSuspendOnDuty
	}

	d.status = Suspended
	d.vehicleID = nil
	d.RaiseEvent(events.DriverSuspended{
		DriverID:   d.ID(),
		Name:       d.name.Full(),
		Email:      d.email.Address(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (d *Driver) Reinstate() error {
	if d.status != Suspended {
		return ErrOnlySuspendedCanBeReinstated
	}

	d.status = Available
	d.RaiseEvent(events.DriverReinstated{
		DriverID:   d.ID(),
		Name:       d.name.Full(),
		Email:      d.email.Address(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (d *Driver) setName(name kernel.PersonName) error {
	if err := name.Validate(); err != nil {
		return err
	}
	d.name = name
	return nil
}

func (d *Driver) setLicense(license kernel.License) error {
	if err := license.Validate(); err != nil {
		return err
	}
	d.license = license
	return nil
}

func (d *Driver) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	d.email = email
	return nil
}

func (d *Driver) setPhone(phone *kernel.Phone) error {
	if phone == nil {
		return nil
	}
	if err := phone.Validate(); err != nil {
		return err
	}
	p := *phone
	d.phone = &p
	return nil
}

func (d *Driver) setDateOfBirth(dateOfBirth *time.Time) error {
	if dateOfBirth == nil {
		return nil
	}
	if dateOfBirth.After(time.Now()) {
		return errs.NewValueIsInvalidErrorWithCause("dateOfBirth",
			fmt.Errorf("%s is in the future", dateOfBirth.Format(time.DateOnly)))
	}
	dob := dateOfBirth.UTC()
	d.dateOfBirth = &dob
	return nil
}
