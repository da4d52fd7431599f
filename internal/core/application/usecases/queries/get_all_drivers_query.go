// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read tables directly and return flat read models; they never load
// aggregates.
package queries

import (
	"errors"
	"time"

	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/guard"
)

var ErrGetAllDriversQueryIsNotConstructed = errors.New(
	"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
)

// GetAllDriversQuery lists drivers ordered by last then first name,
// optionally restricted to one status.
//
// Example:
//
//	query, _ := NewGetAllDriversQuery(nil)
//	handler := NewGetAllDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve drivers: %w", err)
//	}
type GetAllDriversQuery struct {
	status *driver.Status
	guard  guard.ConstructorGuard
}

// NewGetAllDriversQuery creates the query. A nil status lists everyone.
func NewGetAllDriversQuery(status *driver.Status) (GetAllDriversQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAllDriversQuery{}, err
		}
	}
	return GetAllDriversQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

func (q GetAllDriversQuery) Status() *driver.Status { return q.status }

// GetAllDriversQueryResponse is one row of the driver list.
type GetAllDriversQueryResponse struct {
	ID          kernel.UUID
	FirstName   string
	LastName    string
	License     string
	Email       string
	Phone       *string
	DateOfBirth *time.Time
	Status      driver.Status
	VehicleID   *kernel.UUID
}
