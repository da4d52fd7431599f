package outbox_test

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	occurred := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("is pending with no error", func(t *testing.T) {
		m, err := outbox.NewMessage(kernel.NewUUID(), "driver.suspended.v1", `{"a":1}`, occurred)

		require.NoError(t, err)
		assert.True(t, m.IsPending())
		assert.Nil(t, m.ProcessedOn())
		assert.Nil(t, m.Error())
		assert.Equal(t, "driver.suspended.v1", m.Type())
		assert.True(t, m.OccurredOn().Equal(occurred))
	})

	t.Run("requires id, type and timestamp", func(t *testing.T) {
		_, err := outbox.NewMessage(kernel.UUID{}, " ", "{}", time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "type")
		assert.Contains(t, err.Error(), "occurredOn")
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestMessage_Marking(t *testing.T) {
	now := time.Now()

	t.Run("failed then delivered clears the error", func(t *testing.T) {
		m, _ := outbox.NewMessage(kernel.NewUUID(), "x.v1", "{}", now)

		m.MarkFailed(now, errors.New("broker unavailable"))
		require.NotNil(t, m.Error())
		assert.Equal(t, "broker unavailable", *m.Error())
		assert.False(t, m.IsPending())

		m.MarkDelivered(now)
		assert.Nil(t, m.Error())
		assert.False(t, m.IsPending())
	})

	t.Run("long errors are truncated", func(t *testing.T) {
		m, _ := outbox.NewMessage(kernel.NewUUID(), "x.v1", "{}", now)

		m.MarkFailed(now, errors.New(strings.Repeat("e", 5000)))

		assert.Len(t, *m.Error(), 2000)
	})

	t.Run("truncation keeps multi-byte characters whole", func(t *testing.T) {
		m, _ := outbox.NewMessage(kernel.NewUUID(), "x.v1", "{}", now)

		m.MarkFailed(now, errors.New("a"+strings.Repeat("é", 1500)))

		require.NotNil(t, m.Error())
		assert.True(t, utf8.ValidString(*m.Error()))
		assert.Len(t, *m.Error(), 1999)
	})

	t.Run("invalid bytes in the cause are replaced", func(t *testing.T) {
		m, _ := outbox.NewMessage(kernel.NewUUID(), "x.v1", "{}", now)

		m.MarkFailed(now, errors.New("bad \xff payload"))

		require.NotNil(t, m.Error())
		assert.True(t, utf8.ValidString(*m.Error()))
		assert.Equal(t, "bad \uFFFD payload", *m.Error())
	})

	t.Run("nil cause still records an error", func(t *testing.T) {
		m, _ := outbox.NewMessage(kernel.NewUUID(), "x.v1", "{}", now)

		m.MarkFailed(now, nil)

		require.NotNil(t, m.Error())
	})
}
