// Package assignment implements ManagerDriverAssignment, the link between a
// fleet manager and a driver they supervise. It raises no events.
package assignment

import (
	"errors"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrAssignmentIsNotConstructed = errors.New("ManagerDriverAssignment must be created via NewManagerDriverAssignment constructor")

	ErrAlreadyInactive = errs.NewDomainRuleViolationError("assignment is already inactive")
	ErrAlreadyActive   = errs.NewDomainRuleViolationError("assignment is already active")
)

type ManagerDriverAssignment struct {
	kernel.AggregateRoot

	managerID  kernel.UUID
	driverID   kernel.UUID
	assignedAt time.Time
	isActive   bool

	guard guard.ConstructorGuard
}

// NewManagerDriverAssignment creates an active assignment stamped now.
func NewManagerDriverAssignment(id, managerID, driverID kernel.UUID) (*ManagerDriverAssignment, error) {
	return RestoreManagerDriverAssignment(id, managerID, driverID, time.Now().UTC(), true)
}

func RestoreManagerDriverAssignment(
	id, managerID, driverID kernel.UUID,
	assignedAt time.Time,
	isActive bool,
) (*ManagerDriverAssignment, error) {
	if err := errors.Join(id.Validate(), managerID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &ManagerDriverAssignment{
		AggregateRoot: kernel.NewAggregateRoot(id),
		managerID:     managerID,
		driverID:      driverID,
		assignedAt:    assignedAt.UTC(),
		isActive:      isActive,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (a *ManagerDriverAssignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *ManagerDriverAssignment) ManagerID() kernel.UUID { return a.managerID }
func (a *ManagerDriverAssignment) DriverID() kernel.UUID  { return a.driverID }
func (a *ManagerDriverAssignment) AssignedAt() time.Time  { return a.assignedAt }
func (a *ManagerDriverAssignment) IsActive() bool         { return a.isActive }

func (a *ManagerDriverAssignment) Deactivate() error {
	if !a.isActive {
		return ErrAlreadyInactive
	}
	a.isActive = false
	return nil
}

func (a *ManagerDriverAssignment) Activate() error {
	if a.isActive {
		return ErrAlreadyActive
	}
	a.isActive = true
	return nil
}
