package commands

import (
	"context"
	"fmt"

	"ecofleet/internal/core/domain/model/order"
	"ecofleet/internal/core/ports"
)

// CreateOrderCommandHandler creates a Pending order. The order raises
// OrderCreated on construction.
//
// Each order handler has two constructors, one per persistence model: the
// plain one commits snapshot rows and outbox messages through a unit of
// work, the EventSourced one appends to a ports.OrderEventStore.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	store orderStore
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{store: newUnitOfWorkOrderStore(uowFactory)}
}

func NewEventSourcedCreateOrderCommandHandler(store ports.OrderEventStore) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{store: newEventSourcedOrderStore(store)}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.DriverID(), cmd.Pickup(), cmd.Dropoff(), cmd.Price())
	if err != nil {
		return err
	}

	return h.store.Create(ctx, o)
}

type ChangeOrderStatusCommandHandler struct {
	store orderStore
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{store: newUnitOfWorkOrderStore(uowFactory)}
}

func NewEventSourcedChangeOrderStatusCommandHandler(store ports.OrderEventStore) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{store: newEventSourcedOrderStore(store)}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var transition func(*order.Order) error
	switch cmd.Action() {
	case StartOrder:
		transition = (*order.Order).StartProgress
	case CompleteOrder:
		transition = (*order.Order).Complete
	case CancelOrder:
		transition = (*order.Order).Cancel
	default:
		return fmt.Errorf("unsupported order action %q", cmd.Action())
	}

	return h.store.Modify(ctx, cmd.OrderID(), transition)
}

type UpdateOrderPriceCommandHandler struct {
	store orderStore
}

func NewUpdateOrderPriceCommandHandler(uowFactory OrderUoWFactory) UpdateOrderPriceCommandHandler {
	return UpdateOrderPriceCommandHandler{store: newUnitOfWorkOrderStore(uowFactory)}
}

func NewEventSourcedUpdateOrderPriceCommandHandler(store ports.OrderEventStore) UpdateOrderPriceCommandHandler {
	return UpdateOrderPriceCommandHandler{store: newEventSourcedOrderStore(store)}
}

func (h UpdateOrderPriceCommandHandler) Handle(ctx context.Context, cmd UpdateOrderPriceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.store.Modify(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.UpdatePrice(cmd.Price())
	})
}
