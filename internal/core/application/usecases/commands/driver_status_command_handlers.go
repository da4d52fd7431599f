package commands

import (
	"context"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"
)

// SuspendDriverCommandHandler loads the driver, suspends it and commits. The
// DriverSuspended event lands in the outbox with the state change or not at
// all.
//
// Example:
//
//	handler := NewSuspendDriverCommandHandler(uowFactory)
//	cmd, _ := NewSuspendDriverCommand(driverID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown driver
//	case errors.Is(err, errs.ErrDomainRuleViolated):
//	    // driver is on duty
//	}
type SuspendDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewSuspendDriverCommandHandler(uowFactory DriverUoWFactory) SuspendDriverCommandHandler {
	return SuspendDriverCommandHandler{uowFactory: uowFactory}
}

func (h SuspendDriverCommandHandler) Handle(ctx context.Context, cmd SuspendDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeDriver(ctx, h.uowFactory, cmd.DriverID(), (*driver.Driver).Suspend)
}

type ReinstateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewReinstateDriverCommandHandler(uowFactory DriverUoWFactory) ReinstateDriverCommandHandler {
	return ReinstateDriverCommandHandler{uowFactory: uowFactory}
}

func (h ReinstateDriverCommandHandler) Handle(ctx context.Context, cmd ReinstateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeDriver(ctx, h.uowFactory, cmd.DriverID(), (*driver.Driver).Reinstate)
}

// DeleteDriverCommandHandler removes the driver row. Nothing is raised.
type DeleteDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewDeleteDriverCommandHandler(uowFactory DriverUoWFactory) DeleteDriverCommandHandler {
	return DeleteDriverCommandHandler{uowFactory: uowFactory}
}

func (h DeleteDriverCommandHandler) Handle(ctx context.Context, cmd DeleteDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DriverRepository().Delete(ctx, cmd.DriverID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func changeDriver(
	ctx context.Context,
	uowFactory DriverUoWFactory,
	driverID kernel.UUID,
	change func(*driver.Driver) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()
	d, err := repo.Get(ctx, driverID)
	if err != nil {
		return err
	}

	if err = change(d); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
