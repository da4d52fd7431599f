package commands

import (
	"context"

	"ecofleet/internal/core/domain/model/assignment"
)

type CreateAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

func NewCreateAssignmentCommandHandler(uowFactory AssignmentUoWFactory) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{uowFactory: uowFactory}
}

func (h CreateAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	a, err := assignment.NewManagerDriverAssignment(cmd.AssignmentID(), cmd.ManagerID(), cmd.DriverID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type SetAssignmentActiveCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

func NewSetAssignmentActiveCommandHandler(uowFactory AssignmentUoWFactory) SetAssignmentActiveCommandHandler {
	return SetAssignmentActiveCommandHandler{uowFactory: uowFactory}
}

func (h SetAssignmentActiveCommandHandler) Handle(ctx context.Context, cmd SetAssignmentActiveCommand) error {
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

	repo := uow.AssignmentRepository()
	a, err := repo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	if cmd.Active() {
		err = a.Activate()
	} else {
		err = a.Deactivate()
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
