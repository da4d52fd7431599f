package queries

import (
	"errors"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

const (
	DefaultFailedMessagesLimit = 50
	MaxFailedMessagesLimit     = 500
)

var ErrGetFailedOutboxMessagesQueryIsNotConstructed = errors.New(
	"GetFailedOutboxMessagesQuery must be created via NewGetFailedOutboxMessagesQuery constructor",
)

// GetFailedOutboxMessagesQuery lists dead-lettered outbox rows, newest
// first. The dispatcher never retries them, so this is where operators look.
type GetFailedOutboxMessagesQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetFailedOutboxMessagesQuery accepts 0 for the default limit.
func NewGetFailedOutboxMessagesQuery(limit int) (GetFailedOutboxMessagesQuery, error) {
	if limit == 0 {
		limit = DefaultFailedMessagesLimit
	}
	if limit < 1 || limit > MaxFailedMessagesLimit {
		return GetFailedOutboxMessagesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxFailedMessagesLimit)
	}
	return GetFailedOutboxMessagesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetFailedOutboxMessagesQuery) Validate() error {
	return q.guard.Validate(ErrGetFailedOutboxMessagesQueryIsNotConstructed)
}

func (q GetFailedOutboxMessagesQuery) Limit() int { return q.limit }

type GetFailedOutboxMessagesQueryResponse struct {
	ID          kernel.UUID
	Type        string
	Content     string
	OccurredOn  time.Time
	ProcessedOn time.Time
	Error       string
}
