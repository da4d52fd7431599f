package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError(
		"phone must be created via NewPhone constructor")

	phonePattern   = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneSeparator = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// Phone keeps digits and an optional leading plus; common separators are
// stripped before validation.
type Phone struct {
	number string
	guard  guard.ConstructorGuard
}

func NewPhone(number string) (Phone, error) {
	v := phoneSeparator.Replace(strings.TrimSpace(number))
	if v == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(v) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q must contain 7 to 15 digits", number))
	}

	return Phone{number: v, guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) Number() string {
	return p.number
}

func (p Phone) String() string {
	return p.number
}
