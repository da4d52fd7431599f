package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder, RestoreOrder or Rehydrate.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrNegativePrice = errs.NewDomainRuleViolationError("price cannot be negative")

	// ErrEmptyHistory is returned by Rehydrate for a stream with no events.
	ErrEmptyHistory = errors.New("order history is empty")
)

// Order is the aggregate root for a single trip.
//
// Invariants:
//   - price >= 0
//   - finishedAt is set if and only if the status is Completed or Cancelled
//   - every state change is an event in the pending buffer
type Order struct {
	kernel.AggregateRoot

	driverID   kernel.UUID
	status     Status
	createdAt  time.Time
	finishedAt *time.Time
	pickup     kernel.GeoLocation
	dropoff    kernel.GeoLocation
	price      float64

	// version counts events already persisted to the order's stream. Only the
	// event store reads it.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order and raises OrderCreated. A negative price
// is a domain-rule violation; malformed arguments are value errors.
//
// Example:
//
//	pickup, _ := kernel.NewGeoLocation(52.5200, 13.4050)
//	dropoff, _ := kernel.NewGeoLocation(52.4862, 13.4250)
//	o, err := order.NewOrder(kernel.NewUUID(), driverID, pickup, dropoff, 18.50)
//	if err != nil {
//	    return err
//	}
func NewOrder(
	id kernel.UUID,
	driverID kernel.UUID,
	pickup kernel.GeoLocation,
	dropoff kernel.GeoLocation,
	price float64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		validatePrice(price),
	); err != nil {
		return nil, err
	}

	o := &Order{
		AggregateRoot: kernel.NewAggregateRoot(id),
		guard:         guard.NewConstructorGuard(),
	}

	now := time.Now().UTC()
	o.record(events.OrderCreated{
		OrderID:    id,
		DriverID:   driverID,
		Pickup:     events.GeoPointFrom(pickup),
		Dropoff:    events.GeoPointFrom(dropoff),
		Price:      price,
		CreatedAt:  now,
		OccurredAt: now,
	})
	return o, nil
}

// RestoreOrder rebuilds an order from a snapshot row without raising events.
func RestoreOrder(
	id kernel.UUID,
	driverID kernel.UUID,
	status Status,
	createdAt time.Time,
	finishedAt *time.Time,
	pickup kernel.GeoLocation,
	dropoff kernel.GeoLocation,
	price float64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		status.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		validatePrice(price),
	); err != nil {
		return nil, err
	}
	if status.IsFinished() != (finishedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("finishedAt",
			fmt.Errorf("%s order cannot have finishedAt=%t", status, finishedAt != nil))
	}

	o := &Order{
		AggregateRoot: kernel.NewAggregateRoot(id),
		driverID:      driverID,
		status:        status,
		createdAt:     createdAt.UTC(),
		pickup:        pickup,
		dropoff:       dropoff,
		price:         price,
		guard:         guard.NewConstructorGuard(),
	}
	if finishedAt != nil {
		f := finishedAt.UTC()
		o.finishedAt = &f
	}
	return o, nil
}

// Rehydrate folds a persisted event stream into an order. The first event must
// be OrderCreated. The result has an empty buffer and Version() equal to the
// number of events.
func Rehydrate(history []events.DomainEvent) (*Order, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}
	created, ok := history[0].(events.OrderCreated)
	if !ok {
		return nil, fmt.Errorf("order stream must start with %s, got %s",
			events.OrderCreatedType, history[0].EventType())
	}

	o := &Order{
		AggregateRoot: kernel.NewAggregateRoot(created.OrderID),
		guard:         guard.NewConstructorGuard(),
	}
	for i, evt := range history {
		if !evt.AggregateID().IsEqual(o.ID()) {
			return nil, fmt.Errorf("event %d belongs to %s, not %s", i, evt.AggregateID(), o.ID())
		}
		if err := o.apply(evt); err != nil {
			return nil, fmt.Errorf("replay event %d: %w", i, err)
		}
	}
	o.version = len(history)
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.ID().IsEqual(other.ID())
}

func (o *Order) DriverID() kernel.UUID       { return o.driverID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) FinishedAt() *time.Time      { return o.finishedAt }
func (o *Order) Pickup() kernel.GeoLocation  { return o.pickup }
func (o *Order) Dropoff() kernel.GeoLocation { return o.dropoff }
func (o *Order) Price() float64              { return o.price }

// Version is the number of events already in the order's stream.
func (o *Order) Version() int {
	return o.version
}

// MarkEventsPersisted advances Version past the pending events and clears the
// buffer. The event store calls it after a successful append.
func (o *Order) MarkEventsPersisted() {
	o.version += len(o.PendingEvents())
	o.ClearEvents()
}

func (o *Order) StartProgress() error {
	if _, err := o.status.Start(); err != nil {
		return err
	}

	o.record(events.OrderStarted{
		OrderID:    o.ID(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (o *Order) Complete() error {
	if _, err := o.status.Complete(); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.record(events.OrderCompleted{
		OrderID:    o.ID(),
		FinishedAt: now,
		OccurredAt: now,
	})
	return nil
}

func (o *Order) Cancel() error {
	if _, err := o.status.Cancel(); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.record(events.OrderCancelled{
		OrderID:    o.ID(),
		FinishedAt: now,
		OccurredAt: now,
	})
	return nil
}

// UpdatePrice is allowed in every status; only a negative amount fails.
func (o *Order) UpdatePrice(amount float64) error {
	if err := validatePrice(amount); err != nil {
		return err
	}

	o.record(events.OrderPriceUpdated{
		OrderID:    o.ID(),
		Price:      amount,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// record applies evt and buffers it. Callers have already checked every
// precondition, so apply cannot fail here.
func (o *Order) record(evt events.DomainEvent) {
	if err := o.apply(evt); err != nil {
		panic(fmt.Sprintf("order: applying own %s: %v", evt.EventType(), err))
	}
	o.RaiseEvent(evt)
}

func (o *Order) apply(evt events.DomainEvent) error {
	switch e := evt.(type) {
	case events.OrderCreated:
		pickup, err := kernel.NewGeoLocation(e.Pickup.Lat, e.Pickup.Lng)
		if err != nil {
			return err
		}
		dropoff, err := kernel.NewGeoLocation(e.Dropoff.Lat, e.Dropoff.Lng)
		if err != nil {
			return err
		}
		if err = validatePrice(e.Price); err != nil {
			return err
		}
		o.driverID = e.DriverID
		o.pickup = pickup
		o.dropoff = dropoff
		o.price = e.Price
		o.createdAt = e.CreatedAt.UTC()
		o.status = Pending
	case events.OrderStarted:
		next, err := o.status.Start()
		if err != nil {
			return err
		}
		o.status = next
	case events.OrderCompleted:
		next, err := o.status.Complete()
		if err != nil {
			return err
		}
		o.status = next
		o.setFinishedAt(e.FinishedAt)
	case events.OrderCancelled:
		next, err := o.status.Cancel()
		if err != nil {
			return err
		}
		o.status = next
		o.setFinishedAt(e.FinishedAt)
	case events.OrderPriceUpdated:
		if err := validatePrice(e.Price); err != nil {
			return err
		}
		o.price = e.Price
	default:
		return fmt.Errorf("%w: %s does not apply to an order", events.ErrUnknownEventType, evt.EventType())
	}
	return nil
}

func (o *Order) setFinishedAt(at time.Time) {
	f := at.UTC()
	o.finishedAt = &f
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not a finite number", price))
	}
	if price < 0 {
		return errs.NewDomainRuleViolationErrorWithCause(ErrNegativePrice.Rule, fmt.Errorf("%v is below 0", price))
	}
	return nil
}
