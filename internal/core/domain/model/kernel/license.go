package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

var (
	ErrLicenseIsNotConstructed = errs.NewValueIsRequiredError(
		"license must be created via NewLicense constructor")

	licensePattern = regexp.MustCompile(`^[A-Z0-9-]{5,20}$`)
)

// License is a driving licence number, normalized to upper case.
type License struct {
	number string
	guard  guard.ConstructorGuard
}

func NewLicense(number string) (License, error) {
	v := strings.ToUpper(strings.TrimSpace(number))
	if v == "" {
		return License{}, errs.NewValueIsRequiredError("license")
	}
	if !licensePattern.MatchString(v) {
		return License{}, errs.NewValueIsInvalidErrorWithCause("license",
			fmt.Errorf("%q must be 5 to 20 letters, digits or dashes", number))
	}

	return License{number: v, guard: guard.NewConstructorGuard()}, nil
}

func (l License) Validate() error {
	return l.guard.Validate(ErrLicenseIsNotConstructed)
}

func (l License) Number() string {
	return l.number
}

func (l License) String() string {
	return l.number
}
