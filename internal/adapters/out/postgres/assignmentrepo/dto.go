// Package assignmentrepo persists manager to driver assignments.
package assignmentrepo

import (
	"time"

	"ecofleet/internal/core/domain/model/assignment"
	"ecofleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManagerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt time.Time `gorm:"type:timestamptz;not null"`
	IsActive   bool      `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "manager_driver_assignments"
}

func fromDomain(a *assignment.ManagerDriverAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		ManagerID:  a.ManagerID().Bytes(),
		DriverID:   a.DriverID().Bytes(),
		AssignedAt: a.AssignedAt(),
		IsActive:   a.IsActive(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.ManagerDriverAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	managerID, err := kernel.UUIDFromBytes(dto.ManagerID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreManagerDriverAssignment(id, managerID, driverID, dto.AssignedAt, dto.IsActive)
}
