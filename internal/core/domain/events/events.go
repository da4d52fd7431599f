package events

import (
	"time"

	"ecofleet/internal/core/domain/model/kernel"
)

// DomainEvent is re-exported so callers outside the domain model do not need
// to import kernel for it.
type DomainEvent = kernel.DomainEvent

const (
	DriverSuspendedType           = "driver.suspended.v1"
	DriverReinstatedType          = "driver.reinstated.v1"
	VehicleDriverAssignedType     = "vehicle.driver_assigned.v1"
	VehicleMaintenanceStartedType = "vehicle.maintenance_started.v1"
	OrderCreatedType              = "order.created.v1"
	OrderStartedType              = "order.started.v1"
	OrderCompletedType            = "order.completed.v1"
	OrderCancelledType            = "order.cancelled.v1"
	OrderPriceUpdatedType         = "order.price_updated.v1"
)

// DriverSuspended carries the driver's name and email so a notification
// sender can act without looking the driver up.
type DriverSuspended struct {
	DriverID   kernel.UUID `json:"driverId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e DriverSuspended) EventType() string        { return DriverSuspendedType }
func (e DriverSuspended) AggregateID() kernel.UUID { return e.DriverID }
func (e DriverSuspended) OccurredOn() time.Time    { return e.OccurredAt }

type DriverReinstated struct {
	DriverID   kernel.UUID `json:"driverId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e DriverReinstated) EventType() string        { return DriverReinstatedType }
func (e DriverReinstated) AggregateID() kernel.UUID { return e.DriverID }
func (e DriverReinstated) OccurredOn() time.Time    { return e.OccurredAt }

type VehicleDriverAssigned struct {
	VehicleID  kernel.UUID `json:"vehicleId"`
	DriverID   kernel.UUID `json:"driverId"`
	Plate      string      `json:"plate"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e VehicleDriverAssigned) EventType() string        { return VehicleDriverAssignedType }
func (e VehicleDriverAssigned) AggregateID() kernel.UUID { return e.VehicleID }
func (e VehicleDriverAssigned) OccurredOn() time.Time    { return e.OccurredAt }

type VehicleMaintenanceStarted struct {
	VehicleID  kernel.UUID `json:"vehicleId"`
	Plate      string      `json:"plate"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e VehicleMaintenanceStarted) EventType() string        { return VehicleMaintenanceStartedType }
func (e VehicleMaintenanceStarted) AggregateID() kernel.UUID { return e.VehicleID }
func (e VehicleMaintenanceStarted) OccurredOn() time.Time    { return e.OccurredAt }

// GeoPoint is the wire form of kernel.GeoLocation.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func GeoPointFrom(loc kernel.GeoLocation) GeoPoint {
	return GeoPoint{Lat: loc.Latitude(), Lng: loc.Longitude()}
}

// OrderCreated holds the full initial state of an order, which is what lets
// the event store rebuild an order from its stream alone.
type OrderCreated struct {
	OrderID    kernel.UUID `json:"orderId"`
	DriverID   kernel.UUID `json:"driverId"`
	Pickup     GeoPoint    `json:"pickup"`
	Dropoff    GeoPoint    `json:"dropoff"`
	Price      float64     `json:"price"`
	CreatedAt  time.Time   `json:"createdAt"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e OrderCreated) EventType() string        { return OrderCreatedType }
func (e OrderCreated) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCreated) OccurredOn() time.Time    { return e.OccurredAt }

type OrderStarted struct {
	OrderID    kernel.UUID `json:"orderId"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e OrderStarted) EventType() string        { return OrderStartedType }
func (e OrderStarted) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderStarted) OccurredOn() time.Time    { return e.OccurredAt }

type OrderCompleted struct {
	OrderID    kernel.UUID `json:"orderId"`
	FinishedAt time.Time   `json:"finishedAt"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e OrderCompleted) EventType() string        { return OrderCompletedType }
func (e OrderCompleted) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCompleted) OccurredOn() time.Time    { return e.OccurredAt }

type OrderCancelled struct {
	OrderID    kernel.UUID `json:"orderId"`
	FinishedAt time.Time   `json:"finishedAt"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e OrderCancelled) EventType() string        { return OrderCancelledType }
func (e OrderCancelled) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderCancelled) OccurredOn() time.Time    { return e.OccurredAt }

type OrderPriceUpdated struct {
	OrderID    kernel.UUID `json:"orderId"`
	Price      float64     `json:"price"`
	OccurredAt time.Time   `json:"occurredOn"`
}

func (e OrderPriceUpdated) EventType() string        { return OrderPriceUpdatedType }
func (e OrderPriceUpdated) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderPriceUpdated) OccurredOn() time.Time    { return e.OccurredAt }
