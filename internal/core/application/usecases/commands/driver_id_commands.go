package commands

import (
	"errors"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrSuspendDriverCommandIsNotConstructed = errors.New(
		"SuspendDriverCommand must be created via NewSuspendDriverCommand constructor",
	)
	ErrReinstateDriverCommandIsNotConstructed = errors.New(
		"ReinstateDriverCommand must be created via NewReinstateDriverCommand constructor",
	)
	ErrDeleteDriverCommandIsNotConstructed = errors.New(
		"DeleteDriverCommand must be created via NewDeleteDriverCommand constructor",
	)
)

// SuspendDriverCommand takes an Available driver out of service. Suspending
// an already suspended driver is allowed and raises the event again.
type SuspendDriverCommand struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewSuspendDriverCommand(driverID kernel.UUID) (SuspendDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SuspendDriverCommand{}, err
	}
	return SuspendDriverCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c SuspendDriverCommand) Validate() error {
	return c.guard.Validate(ErrSuspendDriverCommandIsNotConstructed)
}

func (c SuspendDriverCommand) DriverID() kernel.UUID { return c.driverID }

type ReinstateDriverCommand struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewReinstateDriverCommand(driverID kernel.UUID) (ReinstateDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ReinstateDriverCommand{}, err
	}
	return ReinstateDriverCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReinstateDriverCommand) Validate() error {
	return c.guard.Validate(ErrReinstateDriverCommandIsNotConstructed)
}

func (c ReinstateDriverCommand) DriverID() kernel.UUID { return c.driverID }

type DeleteDriverCommand struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewDeleteDriverCommand(driverID kernel.UUID) (DeleteDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return DeleteDriverCommand{}, err
	}
	return DeleteDriverCommand{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDriverCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDriverCommandIsNotConstructed)
}

func (c DeleteDriverCommand) DriverID() kernel.UUID { return c.driverID }
