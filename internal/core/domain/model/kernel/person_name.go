package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

const personNameMaxLength = 100

var ErrPersonNameIsNotConstructed = errs.NewValueIsRequiredError(
	"person name must be created via NewPersonName constructor")

// PersonName is a driver's or manager's first and last name. Both parts are
// trimmed and must be non-empty.
type PersonName struct { //nolint:recvcheck //using for validation
	first string
	last  string
	guard guard.ConstructorGuard
}

func NewPersonName(first, last string) (PersonName, error) {
	name := PersonName{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		name.setFirst(first),
		name.setLast(last),
	); err != nil {
		return PersonName{}, err
	}

	return name, nil
}

func (n PersonName) Validate() error {
	return n.guard.Validate(ErrPersonNameIsNotConstructed)
}

func (n PersonName) First() string {
	return n.first
}

func (n PersonName) Last() string {
	return n.last
}

// Full returns "First Last".
func (n PersonName) Full() string {
	return n.first + " " + n.last
}

func (n PersonName) String() string {
	return n.Full()
}

func (n *PersonName) setFirst(first string) error {
	v, err := validateNamePart("firstName", first)
	if err != nil {
		return err
	}
	n.first = v
	return nil
}

func (n *PersonName) setLast(last string) error {
	v, err := validateNamePart("lastName", last)
	if err != nil {
		return err
	}
	n.last = v
	return nil
}

func validateNamePart(param, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if utf8.RuneCountInString(v) > personNameMaxLength {
		return "", errs.NewValueIsInvalidErrorWithCause(param,
			fmt.Errorf("longer than %d characters", personNameMaxLength))
	}
	return v, nil
}
