// Package driverrepo persists Driver aggregates to the drivers table.
package driverrepo

import (
	"time"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName   string     `gorm:"size:100;not null"`
	LastName    string     `gorm:"size:100;not null"`
	License     string     `gorm:"size:20;not null;uniqueIndex"`
	Email       string     `gorm:"size:254;not null;uniqueIndex"`
	Phone       *string    `gorm:"size:16"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Status      int        `gorm:"not null;index"`
	VehicleID   *uuid.UUID `gorm:"type:uuid;index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:          d.ID().Bytes(),
		FirstName:   d.Name().First(),
		LastName:    d.Name().Last(),
		License:     d.License().Number(),
		Email:       d.Email().Address(),
		DateOfBirth: d.DateOfBirth(),
		Status:      int(d.Status()),
	}
	if p := d.Phone(); p != nil {
		number := p.Number()
		dto.Phone = &number
	}
	if id := d.VehicleID(); id != nil {
		raw := id.Bytes()
		dto.VehicleID = &raw
	}
	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	name, err := kernel.NewPersonName(dto.FirstName, dto.LastName)
	if err != nil {
		return nil, err
	}
	license, err := kernel.NewLicense(dto.License)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	var phone *kernel.Phone
	if dto.Phone != nil {
		p, phoneErr := kernel.NewPhone(*dto.Phone)
		if phoneErr != nil {
			return nil, phoneErr
		}
		phone = &p
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	return driver.RestoreDriver(id, name, license, email, phone, dto.DateOfBirth, driver.Status(dto.Status), vehicleID)
}
