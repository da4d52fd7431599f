// Package vehiclerepo persists Vehicle aggregates to the vehicles table.
package vehiclerepo

import (
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

type VehicleDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Plate    string      `gorm:"size:12;not null;uniqueIndex"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status   int         `gorm:"not null;index"`
	DriverID *uuid.UUID  `gorm:"type:uuid;index"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	var driverID *uuid.UUID
	if id := v.CurrentDriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return VehicleDTO{
		ID:    v.ID().Bytes(),
		Plate: v.Plate().Value(),
		Location: LocationDTO{
			Latitude:  v.Location().Latitude(),
			Longitude: v.Location().Longitude(),
		},
		Status:   int(v.Status()),
		DriverID: driverID,
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	plate, err := kernel.NewPlate(dto.Plate)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewGeoLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	return vehicle.RestoreVehicle(id, plate, loc, vehicle.Status(dto.Status), driverID)
}
