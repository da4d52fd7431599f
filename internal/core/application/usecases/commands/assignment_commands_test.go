package commands_test

import (
	"testing"
	"time"

	"ecofleet/internal/core/application/usecases/commands"
	"ecofleet/internal/core/domain/model/assignment"
	"ecofleet/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateAssignmentCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	var added *assignment.ManagerDriverAssignment
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*assignment.ManagerDriverAssignment")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*assignment.ManagerDriverAssignment) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewCreateAssignmentCommandHandler(factory).Handle(ctx, cmd))

	require.NotNil(t, added)
	assert.True(t, added.IsActive())
	assert.True(t, added.ManagerID().IsEqual(cmd.ManagerID()))
	assert.True(t, added.DriverID().IsEqual(cmd.DriverID()))
	uow.AssertExpectations(t)
}

func TestSetAssignmentActiveCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		isActive  bool
		setActive bool
		wantErr   error
	}{
		{name: "deactivate active", isActive: true, setActive: false},
		{name: "activate inactive", isActive: false, setActive: true},
		{name: "deactivate inactive", isActive: false, setActive: false, wantErr: assignment.ErrAlreadyInactive},
		{name: "activate active", isActive: true, setActive: true, wantErr: assignment.ErrAlreadyActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			id := kernel.NewUUID()
			a, err := assignment.RestoreManagerDriverAssignment(id, kernel.NewUUID(), kernel.NewUUID(), time.Now(), tt.isActive)
			require.NoError(t, err)
			cmd, err := commands.NewSetAssignmentActiveCommand(id, tt.setActive)
			require.NoError(t, err)

			repo := new(MockAssignmentRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("AssignmentRepository").Return(repo).Once()
			repo.On("Get", ctx, id).Return(a, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			if tt.wantErr == nil {
				repo.On("Update", ctx, a).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}
			factory := new(MockAssignmentUoWFactory)
			factory.On("Create").Return(uow).Once()

			err = commands.NewSetAssignmentActiveCommandHandler(factory).Handle(ctx, cmd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.isActive, a.IsActive())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.setActive, a.IsActive())
			}
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}
