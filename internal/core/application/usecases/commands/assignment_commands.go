package commands

import (
	"errors"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrCreateAssignmentCommandIsNotConstructed = errors.New(
		"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
	)
	ErrSetAssignmentActiveCommandIsNotConstructed = errors.New(
		"SetAssignmentActiveCommand must be created via NewSetAssignmentActiveCommand constructor",
	)
)

// CreateAssignmentCommand puts a driver under a manager. The assignment
// starts active.
type CreateAssignmentCommand struct {
	assignmentID kernel.UUID
	managerID    kernel.UUID
	driverID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateAssignmentCommand(assignmentID, managerID, driverID kernel.UUID) (CreateAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), managerID.Validate(), driverID.Validate()); err != nil {
		return CreateAssignmentCommand{}, err
	}
	return CreateAssignmentCommand{
		assignmentID: assignmentID,
		managerID:    managerID,
		driverID:     driverID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c CreateAssignmentCommand) ManagerID() kernel.UUID    { return c.managerID }
func (c CreateAssignmentCommand) DriverID() kernel.UUID     { return c.driverID }

// SetAssignmentActiveCommand activates or deactivates an assignment. Asking
// for the state it is already in is a domain rule violation.
type SetAssignmentActiveCommand struct {
	assignmentID kernel.UUID
	active       bool

	guard guard.ConstructorGuard
}

func NewSetAssignmentActiveCommand(assignmentID kernel.UUID, active bool) (SetAssignmentActiveCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return SetAssignmentActiveCommand{}, err
	}
	return SetAssignmentActiveCommand{assignmentID: assignmentID, active: active, guard: guard.NewConstructorGuard()}, nil
}

func (c SetAssignmentActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetAssignmentActiveCommandIsNotConstructed)
}

func (c SetAssignmentActiveCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c SetAssignmentActiveCommand) Active() bool              { return c.active }
