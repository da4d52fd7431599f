package order_test

import (
	"math"
	"testing"
	"time"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/order"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type testingT interface {
	require.TestingT
	Helper()
}

func points(t testingT) (kernel.GeoLocation, kernel.GeoLocation) {
	t.Helper()

	pickup, err := kernel.NewGeoLocation(52.5200, 13.4050)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoLocation(52.4862, 13.4250)
	require.NoError(t, err)
	return pickup, dropoff
}

func newOrder(t testingT) *order.Order {
	t.Helper()

	pickup, dropoff := points(t)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, 18.5)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order and raises OrderCreated", func(t *testing.T) {
		pickup, dropoff := points(t)
		id, driverID := kernel.NewUUID(), kernel.NewUUID()

		o, err := order.NewOrder(id, driverID, pickup, dropoff, 18.5)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.DriverID().IsEqual(driverID))
		assert.Equal(t, order.Pending, o.Status())
		assert.InDelta(t, 18.5, o.Price(), 1e-9)
		assert.Nil(t, o.FinishedAt())
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, 0, o.Version())

		evts := o.PendingEvents()
		require.Len(t, evts, 1)
		created, ok := evts[0].(events.OrderCreated)
		require.True(t, ok)
		assert.True(t, created.DriverID.IsEqual(driverID))
		assert.Equal(t, events.GeoPointFrom(pickup), created.Pickup)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		pickup, dropoff := points(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, 0)

		require.NoError(t, err)
		assert.Zero(t, o.Price())
	})

	t.Run("negative price is a domain rule violation and nothing is built", func(t *testing.T) {
		pickup, dropoff := points(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, -1)

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.Nil(t, o)
	})

	t.Run("non-finite price is a value error", func(t *testing.T) {
		pickup, dropoff := points(t)

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, math.Inf(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("joins all argument errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, kernel.GeoLocation{}, kernel.GeoLocation{}, -3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "geo location must be created")
		assert.Contains(t, err.Error(), "price cannot be negative")
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("start then complete stamps finishedAt", func(t *testing.T) {
		o := newOrder(t)
		o.ClearEvents()

		require.NoError(t, o.StartProgress())
		require.NoError(t, o.Complete())

		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.FinishedAt())
		evts := o.PendingEvents()
		require.Len(t, evts, 2)
		assert.Equal(t, events.OrderStartedType, evts[0].EventType())
		assert.Equal(t, events.OrderCompletedType, evts[1].EventType())
	})

	t.Run("complete from pending fails untouched", func(t *testing.T) {
		o := newOrder(t)
		o.ClearEvents()

		err := o.Complete()

		assert.Equal(t, order.ErrOnlyInProgressCanComplete, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.FinishedAt())
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("cancel from pending and from in progress", func(t *testing.T) {
		pending := newOrder(t)
		require.NoError(t, pending.Cancel())
		assert.Equal(t, order.Cancelled, pending.Status())
		assert.NotNil(t, pending.FinishedAt())

		running := newOrder(t)
		require.NoError(t, running.StartProgress())
		require.NoError(t, running.Cancel())
		assert.Equal(t, order.Cancelled, running.Status())
	})

	t.Run("cancel fails once completed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartProgress())
		require.NoError(t, o.Complete())
		finished := *o.FinishedAt()
		o.ClearEvents()

		err := o.Cancel()

		assert.Equal(t, order.ErrFinishedOrderCannotCancel, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.FinishedAt().Equal(finished))
		assert.Empty(t, o.PendingEvents())
	})
}

func TestOrder_UpdatePrice(t *testing.T) {
	t.Run("accepted in every status", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartProgress())
		require.NoError(t, o.Complete())
		o.ClearEvents()

		require.NoError(t, o.UpdatePrice(21))

		assert.InDelta(t, 21, o.Price(), 1e-9)
		evts := o.PendingEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, events.OrderPriceUpdatedType, evts[0].EventType())
	})

	t.Run("negative amount fails regardless of status", func(t *testing.T) {
		o := newOrder(t)
		o.ClearEvents()

		err := o.UpdatePrice(-0.01)

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
		assert.InDelta(t, 18.5, o.Price(), 1e-9)
		assert.Empty(t, o.PendingEvents())

		require.NoError(t, o.Cancel())
		require.ErrorIs(t, o.UpdatePrice(-5), errs.ErrDomainRuleViolated)
	})
}

func TestRestoreOrder(t *testing.T) {
	pickup, dropoff := points(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	finished := created.Add(time.Hour)

	t.Run("restores a completed order without events", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), order.Completed, created, &finished, pickup, dropoff, 9)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.FinishedAt().Equal(finished))
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("finishedAt must match the status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), order.Pending, created, &finished, pickup, dropoff, 9)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), order.Cancelled, created, nil, pickup, dropoff, 9)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRehydrate(t *testing.T) {
	t.Run("replaying the buffer reproduces the live order", func(t *testing.T) {
		live := newOrder(t)
		require.NoError(t, live.StartProgress())
		require.NoError(t, live.UpdatePrice(30))
		require.NoError(t, live.Complete())

		replayed, err := order.Rehydrate(live.PendingEvents())

		require.NoError(t, err)
		assert.True(t, replayed.IsEqual(live))
		assert.Equal(t, live.Status(), replayed.Status())
		assert.InDelta(t, live.Price(), replayed.Price(), 1e-9)
		assert.True(t, live.FinishedAt().Equal(*replayed.FinishedAt()))
		assert.True(t, live.CreatedAt().Equal(replayed.CreatedAt()))
		assert.Equal(t, 4, replayed.Version())
		assert.Empty(t, replayed.PendingEvents())
	})

	t.Run("empty history", func(t *testing.T) {
		_, err := order.Rehydrate(nil)
		require.ErrorIs(t, err, order.ErrEmptyHistory)
	})

	t.Run("history must start with OrderCreated", func(t *testing.T) {
		_, err := order.Rehydrate([]events.DomainEvent{
			events.OrderStarted{OrderID: kernel.NewUUID(), OccurredAt: time.Now()},
		})
		require.Error(t, err)
	})

	t.Run("illegal transitions in history are rejected", func(t *testing.T) {
		o := newOrder(t)
		evts := o.PendingEvents()
		evts = append(evts, events.OrderCompleted{OrderID: o.ID(), FinishedAt: time.Now(), OccurredAt: time.Now()})

		_, err := order.Rehydrate(evts)

		require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
	})

	t.Run("events of another stream are rejected", func(t *testing.T) {
		o := newOrder(t)
		evts := append(o.PendingEvents(), events.OrderStarted{OrderID: kernel.NewUUID(), OccurredAt: time.Now()})

		_, err := order.Rehydrate(evts)

		require.Error(t, err)
	})

	t.Run("foreign event types are rejected", func(t *testing.T) {
		o := newOrder(t)
		evts := append(o.PendingEvents(), events.DriverSuspended{DriverID: o.ID(), OccurredAt: time.Now()})

		_, err := order.Rehydrate(evts)

		require.ErrorIs(t, err, events.ErrUnknownEventType)
	})
}

func TestOrder_MarkEventsPersisted(t *testing.T) {
	o := newOrder(t)
	require.NoError(t, o.StartProgress())

	o.MarkEventsPersisted()

	assert.Equal(t, 2, o.Version())
	assert.Empty(t, o.PendingEvents())

	require.NoError(t, o.Cancel())
	o.MarkEventsPersisted()
	assert.Equal(t, 3, o.Version())
}

func TestOrder_StateMachine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := newOrder(t)
		model := order.Pending
		price := 18.5

		t.Repeat(map[string]func(*rapid.T){
			"StartProgress": func(t *rapid.T) {
				err := o.StartProgress()
				if model != order.Pending {
					require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
					return
				}
				require.NoError(t, err)
				model = order.InProgress
			},
			"Complete": func(t *rapid.T) {
				err := o.Complete()
				if model != order.InProgress {
					require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
					return
				}
				require.NoError(t, err)
				model = order.Completed
			},
			"Cancel": func(t *rapid.T) {
				err := o.Cancel()
				if model.IsFinished() {
					require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
					return
				}
				require.NoError(t, err)
				model = order.Cancelled
			},
			"UpdatePrice": func(t *rapid.T) {
				amount := rapid.Float64Range(-100, 100).Draw(t, "amount")
				err := o.UpdatePrice(amount)
				if amount < 0 {
					require.ErrorIs(t, err, errs.ErrDomainRuleViolated)
					return
				}
				require.NoError(t, err)
				price = amount
			},
			"": func(t *rapid.T) {
				require.Equal(t, model, o.Status())
				require.InDelta(t, price, o.Price(), 1e-9)
				require.Equal(t, model.IsFinished(), o.FinishedAt() != nil)

				replayed, err := order.Rehydrate(o.PendingEvents())
				require.NoError(t, err)
				require.Equal(t, o.Status(), replayed.Status())
			},
		})
	})
}
