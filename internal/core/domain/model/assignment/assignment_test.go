package assignment_test

import (
	"testing"
	"time"

	"ecofleet/internal/core/domain/model/assignment"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDriverAssignment(t *testing.T) {
	t.Run("starts active", func(t *testing.T) {
		managerID, driverID := kernel.NewUUID(), kernel.NewUUID()

		a, err := assignment.NewManagerDriverAssignment(kernel.NewUUID(), managerID, driverID)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.IsActive())
		assert.True(t, a.ManagerID().IsEqual(managerID))
		assert.True(t, a.DriverID().IsEqual(driverID))
		assert.WithinDuration(t, time.Now(), a.AssignedAt(), time.Minute)
		assert.Empty(t, a.PendingEvents())
	})

	t.Run("rejects unconstructed references", func(t *testing.T) {
		a, err := assignment.NewManagerDriverAssignment(kernel.NewUUID(), kernel.UUID{}, kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Nil(t, a)
	})

	t.Run("restore requires assignedAt", func(t *testing.T) {
		_, err := assignment.RestoreManagerDriverAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Time{}, false)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestManagerDriverAssignment_Toggle(t *testing.T) {
	a, err := assignment.NewManagerDriverAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, a.Deactivate())
	assert.False(t, a.IsActive())

	err = a.Deactivate()
	assert.Equal(t, assignment.ErrAlreadyInactive, err)
	require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
	assert.False(t, a.IsActive())

	require.NoError(t, a.Activate())
	assert.True(t, a.IsActive())

	assert.Equal(t, assignment.ErrAlreadyActive, a.Activate())
	assert.True(t, a.IsActive())
	assert.Empty(t, a.PendingEvents())
}
