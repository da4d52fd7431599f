// Package orderrepo persists Order snapshots to the orders table. The event
// sourced path lives in the eventstore package.
package orderrepo

import (
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the snapshot row of an order.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status     int        `gorm:"not null;index"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;not null"`
	FinishedAt *time.Time `gorm:"type:timestamptz"`
	Pickup     GeoDTO     `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff    GeoDTO     `gorm:"embedded;embeddedPrefix:dropoff_"`
	Price      float64    `gorm:"type:double precision;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type GeoDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func geoFromDomain(loc kernel.GeoLocation) GeoDTO {
	return GeoDTO{Latitude: loc.Latitude(), Longitude: loc.Longitude()}
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID().Bytes(),
		DriverID:   o.DriverID().Bytes(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
		FinishedAt: o.FinishedAt(),
		Pickup:     geoFromDomain(o.Pickup()),
		Dropoff:    geoFromDomain(o.Dropoff()),
		Price:      o.Price(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	pickup, err := kernel.NewGeoLocation(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoLocation(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		driverID,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.FinishedAt,
		pickup,
		dropoff,
		dto.Price,
	)
}
