package bus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecofleet/internal/adapters/out/bus"
	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockHandler struct{ mock.Mock }

func (m *MockHandler) Handle(ctx context.Context, evt ports.PublishedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, evt ports.PublishedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func suspended() ports.PublishedEvent {
	return ports.PublishedEvent{
		MessageID: kernel.NewUUID(),
		Event:     events.DriverSuspended{DriverID: kernel.NewUUID(), OccurredAt: time.Now()},
	}
}

func TestLocalBus_DeliversBySubscribedTag(t *testing.T) {
	ctx := t.Context()
	evt := suspended()

	driverHandler := new(MockHandler)
	driverHandler.On("Handle", ctx, evt).Return(nil).Once()
	orderHandler := new(MockHandler)

	b := bus.NewLocalBus(zap.NewNop())
	b.Subscribe(driverHandler, events.DriverSuspendedType, events.DriverReinstatedType)
	b.Subscribe(orderHandler, events.OrderCreatedType)

	require.NoError(t, b.Publish(ctx, evt))
	driverHandler.AssertExpectations(t)
	orderHandler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestLocalBus_NoSubscribersIsNotAnError(t *testing.T) {
	b := bus.NewLocalBus(zap.NewNop())

	assert.NoError(t, b.Publish(t.Context(), suspended()))
}

func TestLocalBus_HandlerErrorsAreJoined(t *testing.T) {
	ctx := t.Context()
	evt := suspended()
	first, second := new(MockHandler), new(MockHandler)
	first.On("Handle", ctx, evt).Return(errors.New("first failed")).Once()
	second.On("Handle", ctx, evt).Return(nil).Once()

	b := bus.NewLocalBus(zap.NewNop())
	b.Subscribe(first, events.DriverSuspendedType)
	b.Subscribe(second, events.DriverSuspendedType)

	err := b.Publish(ctx, evt)

	require.ErrorContains(t, err, "first failed")
	second.AssertExpectations(t)
}

func TestFanoutPublisher(t *testing.T) {
	t.Run("publishes to all", func(t *testing.T) {
		ctx := t.Context()
		evt := suspended()
		a, b := new(MockPublisher), new(MockPublisher)
		a.On("Publish", ctx, evt).Return(nil).Once()
		b.On("Publish", ctx, evt).Return(nil).Once()

		require.NoError(t, bus.NewFanoutPublisher(a, b).Publish(ctx, evt))
		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})

	t.Run("any failure fails the publish", func(t *testing.T) {
		ctx := t.Context()
		evt := suspended()
		a, b := new(MockPublisher), new(MockPublisher)
		a.On("Publish", ctx, evt).Return(errors.New("kafka down")).Once()
		b.On("Publish", ctx, evt).Return(nil).Once()

		err := bus.NewFanoutPublisher(a, b).Publish(ctx, evt)

		require.ErrorContains(t, err, "kafka down")
		b.AssertExpectations(t)
	})
}
