package commands

import (
	"context"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/order"
	"ecofleet/internal/core/ports"
)

// orderStore is what order handlers persist through. It stays unexported:
// callers choose the persistence model by constructor, either a unit of work
// (snapshot rows, events relayed through the outbox) or a
// ports.OrderEventStore (event stream, no outbox).
type orderStore interface {
	Create(ctx context.Context, o *order.Order) error
	// Modify loads the order, applies change and persists the result.
	// Nothing is written when change fails.
	Modify(ctx context.Context, id kernel.UUID, change func(*order.Order) error) error
}

type unitOfWorkOrderStore struct {
	uowFactory OrderUoWFactory
}

func newUnitOfWorkOrderStore(uowFactory OrderUoWFactory) orderStore {
	return unitOfWorkOrderStore{uowFactory: uowFactory}
}

func (s unitOfWorkOrderStore) Create(ctx context.Context, o *order.Order) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (s unitOfWorkOrderStore) Modify(ctx context.Context, id kernel.UUID, change func(*order.Order) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = change(o); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type eventSourcedOrderStore struct {
	store ports.OrderEventStore
}

func newEventSourcedOrderStore(store ports.OrderEventStore) orderStore {
	return eventSourcedOrderStore{store: store}
}

func (s eventSourcedOrderStore) Create(ctx context.Context, o *order.Order) error {
	return s.store.Save(ctx, o)
}

func (s eventSourcedOrderStore) Modify(ctx context.Context, id kernel.UUID, change func(*order.Order) error) error {
	o, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}

	if err = change(o); err != nil {
		return err
	}

	return s.store.Save(ctx, o)
}
