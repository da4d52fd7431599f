package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrPlateIsNotConstructed = errs.NewValueIsRequiredError(
		"plate must be created via NewPlate constructor")

	platePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{0,10}[A-Z0-9]$`)
)

// Plate is a vehicle registration plate, upper-cased with inner whitespace
// collapsed to single spaces.
type Plate struct {
	value string
	guard guard.ConstructorGuard
}

func NewPlate(value string) (Plate, error) {
	v := strings.ToUpper(strings.Join(strings.Fields(value), " "))
	if v == "" {
		return Plate{}, errs.NewValueIsRequiredError("plate")
	}
	if !platePattern.MatchString(v) {
		return Plate{}, errs.NewValueIsInvalidErrorWithCause("plate",
			fmt.Errorf("%q must be 2 to 12 letters, digits, spaces or dashes", value))
	}

	return Plate{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (p Plate) Validate() error {
	return p.guard.Validate(ErrPlateIsNotConstructed)
}

func (p Plate) Value() string {
	return p.value
}

func (p Plate) String() string {
	return p.value
}
