package order

import (
	"fmt"

	"ecofleet/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Pending ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	InProgress
	Completed
	Cancelled
)

var (
	ErrOnlyPendingCanStart       = errs.NewDomainRuleViolationError("only pending orders can be started")
	ErrOnlyInProgressCanComplete = errs.NewDomainRuleViolationError("only in-progress orders can be completed")
	ErrFinishedOrderCannotCancel = errs.NewDomainRuleViolationError("completed or cancelled orders cannot be cancelled")
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinished reports whether no further transition is possible.
func (s Status) IsFinished() bool {
	return s == Completed || s == Cancelled
}

// Start transitions Pending to InProgress.
func (s Status) Start() (Status, error) {
	if s != Pending {
		return 0, ErrOnlyPendingCanStart
	}
	return InProgress, nil
}

// Complete transitions InProgress to Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, ErrOnlyInProgressCanComplete
	}
	return Completed, nil
}

// Cancel transitions Pending or InProgress to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != InProgress {
		return 0, ErrFinishedOrderCannotCancel
	}
	return Cancelled, nil
}
