package commands

import (
	"errors"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a new driver. Drivers always start Available;
// vehicles are handed out through AssignDriverCommand.
//
// Example:
//
//	name, _ := kernel.NewPersonName("Ada", "Lovelace")
//	license, _ := kernel.NewLicense("B-1234567")
//	email, _ := kernel.NewEmail("ada@fleet.example")
//	cmd, err := NewCreateDriverCommand(kernel.NewUUID(), name, license, email, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID    kernel.UUID
	name        kernel.PersonName
	license     kernel.License
	email       kernel.Email
	phone       *kernel.Phone
	dateOfBirth *time.Time

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(
	driverID kernel.UUID,
	name kernel.PersonName,
	license kernel.License,
	email kernel.Email,
	phone *kernel.Phone,
	dateOfBirth *time.Time,
) (CreateDriverCommand, error) {
	if err := errors.Join(
		driverID.Validate(),
		name.Validate(),
		license.Validate(),
		email.Validate(),
	); err != nil {
		return CreateDriverCommand{}, err
	}
	if phone != nil {
		if err := phone.Validate(); err != nil {
			return CreateDriverCommand{}, err
		}
	}

	return CreateDriverCommand{
		driverID:    driverID,
		name:        name,
		license:     license,
		email:       email,
		phone:       phone,
		dateOfBirth: dateOfBirth,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID   { return c.driverID }
func (c CreateDriverCommand) Name() kernel.PersonName { return c.name }
func (c CreateDriverCommand) License() kernel.License { return c.license }
func (c CreateDriverCommand) Email() kernel.Email     { return c.email }
func (c CreateDriverCommand) Phone() *kernel.Phone    { return c.phone }
func (c CreateDriverCommand) DateOfBirth() *time.Time { return c.dateOfBirth }
