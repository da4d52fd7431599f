package notifier

import (
	"context"
	"testing"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogSender_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	n := ports.Notification{
		MessageID: kernel.NewUUID(),
		EventType: "driver.suspended.v1",
		Recipient: "ada@fleet.example",
		Subject:   "Your driver account was suspended",
		SentAt:    time.Now(),
	}
	require.NoError(t, sender.Send(t.Context(), n))

	entries := logs.FilterMessage("Notification sent").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ada@fleet.example", fields["recipient"])
	assert.Equal(t, "driver.suspended.v1", fields["event_type"])
	assert.Equal(t, "notifier", fields["component"])
}

func TestLogSender_CancelledContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := sender.Send(ctx, ports.Notification{MessageID: kernel.NewUUID()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, logs.Len())
}
