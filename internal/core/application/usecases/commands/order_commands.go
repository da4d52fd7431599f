package commands

import (
	"errors"
	"strings"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrUpdateOrderPriceCommandIsNotConstructed = errors.New(
		"UpdateOrderPriceCommand must be created via NewUpdateOrderPriceCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a new order for a driver.
// A negative price is not rejected here: the order itself refuses it as a
// domain rule violation.
//
// Example:
//
//	pickup, _ := kernel.NewGeoLocation(52.5200, 13.4050)
//	dropoff, _ := kernel.NewGeoLocation(52.4862, 13.4250)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), driverID, pickup, dropoff, 18.50)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	pickup   kernel.GeoLocation
	dropoff  kernel.GeoLocation
	price    float64

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, driverID kernel.UUID,
	pickup, dropoff kernel.GeoLocation,
	price float64,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:  orderID,
		driverID: driverID,
		pickup:   pickup,
		dropoff:  dropoff,
		price:    price,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateOrderCommand) DriverID() kernel.UUID       { return c.driverID }
func (c CreateOrderCommand) Pickup() kernel.GeoLocation  { return c.pickup }
func (c CreateOrderCommand) Dropoff() kernel.GeoLocation { return c.dropoff }
func (c CreateOrderCommand) Price() float64              { return c.price }

// OrderAction is a requested order status transition.
type OrderAction string

const (
	StartOrder    OrderAction = "start"
	CompleteOrder OrderAction = "complete"
	CancelOrder   OrderAction = "cancel"
)

// ParseOrderAction accepts start, complete or cancel in any case.
func ParseOrderAction(value string) (OrderAction, error) {
	switch action := OrderAction(strings.ToLower(strings.TrimSpace(value))); action {
	case StartOrder, CompleteOrder, CancelOrder:
		return action, nil
	case "":
		return "", errs.NewValueIsRequiredError("action")
	default:
		return "", errs.NewValueIsInvalidError("action")
	}
}

type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	action  OrderAction

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.UUID, action string) (ChangeOrderStatusCommand, error) {
	parsed, err := ParseOrderAction(action)
	if err = errors.Join(orderID.Validate(), err); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{orderID: orderID, action: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Action() OrderAction  { return c.action }

type UpdateOrderPriceCommand struct {
	orderID kernel.UUID
	price   float64

	guard guard.ConstructorGuard
}

func NewUpdateOrderPriceCommand(orderID kernel.UUID, price float64) (UpdateOrderPriceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderPriceCommand{}, err
	}
	return UpdateOrderPriceCommand{orderID: orderID, price: price, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateOrderPriceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderPriceCommandIsNotConstructed)
}

func (c UpdateOrderPriceCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderPriceCommand) Price() float64       { return c.price }
