package guard_test

import (
	"errors"
	"testing"

	"ecofleet/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errPlateNotConstructed := errors.New("Plate must be created via NewPlate")

	testCases := []struct {
		name     string
		guard    guard.ConstructorGuard
		input    error
		expected error
	}{
		{
			name:     "constructed_guard_with_custom_error",
			guard:    guard.NewConstructorGuard(),
			input:    errPlateNotConstructed,
			expected: nil,
		},
		{
			name:     "constructed_guard_with_nil_error",
			guard:    guard.NewConstructorGuard(),
			input:    nil,
			expected: nil,
		},
		{
			name:     "zero_value_returns_custom_error",
			guard:    guard.ConstructorGuard{},
			input:    errPlateNotConstructed,
			expected: errPlateNotConstructed,
		},
		{
			name:     "zero_value_returns_default_error",
			guard:    guard.ConstructorGuard{},
			input:    nil,
			expected: guard.ErrDefaultConstructorGuard,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.guard.Validate(tc.input)

			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.expected, err)
		})
	}
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type plate struct {
		value string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("plate must be created via newPlate")
	newPlate := func(value string) (plate, error) {
		if value == "" {
			return plate{}, errors.New("plate is required")
		}
		return plate{value: value, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		p, err := newPlate("AB-123-CD")
		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errNotConstructed))
	})

	t.Run("copy_keeps_constructed_state", func(t *testing.T) {
		p, err := newPlate("AB-123-CD")
		require.NoError(t, err)
		cp := p
		require.NoError(t, cp.guard.Validate(errNotConstructed))
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var p plate
		assert.Equal(t, errNotConstructed, p.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})

	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 100 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}

	for range 50 {
		<-done
	}
}
