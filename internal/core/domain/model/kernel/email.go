package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

const emailMaxLength = 254

var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError(
	"email must be created via NewEmail constructor")

// Email is a bare addr-spec ("user@host"), lower-cased. Display names such as
// "Jane <jane@fleet.io>" are rejected.
type Email struct {
	address string
	guard   guard.ConstructorGuard
}

func NewEmail(address string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(address))
	if v == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if len(v) > emailMaxLength {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("longer than %d characters", emailMaxLength))
	}

	parsed, err := mail.ParseAddress(v)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Address != v || !strings.Contains(v[strings.LastIndex(v, "@")+1:], ".") {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not a plain address", address))
	}

	return Email{address: v, guard: guard.NewConstructorGuard()}, nil
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

func (e Email) Address() string {
	return e.address
}

func (e Email) String() string {
	return e.address
}
