package vehicle

import (
	"fmt"

	"ecofleet/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Idle
	Active
	Maintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Idle:        "Idle",
		Active:      "Active",
		Maintenance: "Maintenance",
	}
}

func (s Status) Validate() error {
	if s != Idle && s != Active && s != Maintenance {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
