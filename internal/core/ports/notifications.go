package ports

import (
	"context"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
)

type Notification struct {
	MessageID kernel.UUID
	EventType string
	Recipient string
	Subject   string
	Body      string
	SentAt    time.Time
}

// ProcessedMessageStore remembers which message ids a consumer has handled.
type ProcessedMessageStore interface {
	// MarkProcessed returns false when consumer has already seen id.
	MarkProcessed(ctx context.Context, consumer string, id kernel.UUID) (bool, error)
	// Forget undoes MarkProcessed so a failed handling can be redelivered.
	Forget(ctx context.Context, consumer string, id kernel.UUID) error
}

type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

type NotificationLog interface {
	Append(ctx context.Context, n Notification) error
}
