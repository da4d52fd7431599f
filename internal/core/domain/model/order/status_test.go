package order_test

import (
	"testing"

	"ecofleet/internal/core/domain/model/order"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.InProgress, order.Completed, order.Cancelled} {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	testCases := []struct {
		name string
		op   transition
		from order.Status
		to   order.Status
		err  error
	}{
		{"start pending", order.Status.Start, order.Pending, order.InProgress, nil},
		{"start in progress", order.Status.Start, order.InProgress, 0, order.ErrOnlyPendingCanStart},
		{"start completed", order.Status.Start, order.Completed, 0, order.ErrOnlyPendingCanStart},
		{"start cancelled", order.Status.Start, order.Cancelled, 0, order.ErrOnlyPendingCanStart},

		{"complete pending", order.Status.Complete, order.Pending, 0, order.ErrOnlyInProgressCanComplete},
		{"complete in progress", order.Status.Complete, order.InProgress, order.Completed, nil},
		{"complete completed", order.Status.Complete, order.Completed, 0, order.ErrOnlyInProgressCanComplete},
		{"complete cancelled", order.Status.Complete, order.Cancelled, 0, order.ErrOnlyInProgressCanComplete},

		{"cancel pending", order.Status.Cancel, order.Pending, order.Cancelled, nil},
		{"cancel in progress", order.Status.Cancel, order.InProgress, order.Cancelled, nil},
		{"cancel completed", order.Status.Cancel, order.Completed, 0, order.ErrFinishedOrderCannotCancel},
		{"cancel cancelled", order.Status.Cancel, order.Cancelled, 0, order.ErrFinishedOrderCannotCancel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.op(tc.from)
			if tc.err != nil {
				assert.Equal(t, tc.err, err)
				require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		})
	}
}

func TestStatus_IsFinished(t *testing.T) {
	assert.False(t, order.Pending.IsFinished())
	assert.False(t, order.InProgress.IsFinished())
	assert.True(t, order.Completed.IsFinished())
	assert.True(t, order.Cancelled.IsFinished())
}
