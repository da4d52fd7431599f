package driver_test

import (
	"testing"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("String and ParseStatus agree", func(t *testing.T) {
		for _, s := range []driver.Status{driver.Available, driver.OnDuty, driver.Suspended} {
			require.NoError(t, s.Validate())
			parsed, err := driver.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("Unknown and out of range values are invalid", func(t *testing.T) {
		require.ErrorIs(t, driver.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, driver.Status(42).Validate(), errs.ErrValueIsInvalid)
		assert.Equal(t, "Unknown", driver.Status(42).String())

		_, err := driver.ParseStatus("Unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, err = driver.ParseStatus("Retired")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
