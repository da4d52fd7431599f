package driver

import (
	"fmt"

	"ecofleet/internal/pkg/errs"
)

// Status is the driver's availability.
type Status int

const (
	Unknown Status = iota
	Available
	OnDuty
	Suspended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		OnDuty:    "OnDuty",
		Suspended: "Suspended",
	}
}

func (s Status) Validate() error {
	if s != Available && s != OnDuty && s != Suspended {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid driver status", value))
}
