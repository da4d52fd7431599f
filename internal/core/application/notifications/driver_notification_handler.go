// Package notifications consumes published driver events and tells the
// affected driver about changes to their account.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/ports"

	"go.uber.org/zap"
)

// ConsumerName namespaces this handler's entries in the processed-message
// store.
const ConsumerName = "driver-notifications"

// SubscribedTypes lists the event tags the handler understands.
var SubscribedTypes = []string{events.DriverSuspendedType, events.DriverReinstatedType}

// DriverNotificationHandler is at-least-once safe: a message id it has
// already handled is skipped, and a failed send releases the id so the next
// delivery retries.
type DriverNotificationHandler struct {
	processed ports.ProcessedMessageStore
	sender    ports.NotificationSender
	log       ports.NotificationLog
	logger    *zap.Logger
	now       func() time.Time
}

var _ ports.EventHandler = (*DriverNotificationHandler)(nil)

func NewDriverNotificationHandler(
	processed ports.ProcessedMessageStore,
	sender ports.NotificationSender,
	log ports.NotificationLog,
	logger *zap.Logger,
) *DriverNotificationHandler {
	return &DriverNotificationHandler{
		processed: processed,
		sender:    sender,
		log:       log,
		logger:    logger.With(zap.String("component", "driver_notifications")),
		now:       time.Now,
	}
}

func (h *DriverNotificationHandler) Handle(ctx context.Context, evt ports.PublishedEvent) error {
	n, ok := h.compose(evt)
	if !ok {
		h.logger.Debug("Ignoring event", zap.String("event_type", evt.Event.EventType()))
		return nil
	}

	first, err := h.processed.MarkProcessed(ctx, ConsumerName, evt.MessageID)
	if err != nil {
		return fmt.Errorf("mark message %s processed: %w", evt.MessageID, err)
	}
	if !first {
		h.logger.Info("Skipping duplicate delivery", zap.Stringer("message_id", evt.MessageID))
		return nil
	}

	if err = h.deliver(ctx, n); err != nil {
		if forgetErr := h.processed.Forget(ctx, ConsumerName, evt.MessageID); forgetErr != nil {
			err = errors.Join(err, forgetErr)
		}
		return err
	}
	return nil
}

func (h *DriverNotificationHandler) deliver(ctx context.Context, n ports.Notification) error {
	if err := h.sender.Send(ctx, n); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	if err := h.log.Append(ctx, n); err != nil {
		return fmt.Errorf("append notification log: %w", err)
	}
	return nil
}

func (h *DriverNotificationHandler) compose(evt ports.PublishedEvent) (ports.Notification, bool) {
	n := ports.Notification{
		MessageID: evt.MessageID,
		EventType: evt.Event.EventType(),
		SentAt:    h.now().UTC(),
	}

	switch e := evt.Event.(type) {
	case events.DriverSuspended:
		n.Recipient = e.Email
		n.Subject = "Your driver account was suspended"
		n.Body = fmt.Sprintf("Hello %s, your account was suspended on %s. Contact your fleet manager for details.",
			e.Name, e.OccurredAt.Format(time.DateOnly))
	case events.DriverReinstated:
		n.Recipient = e.Email
		n.Subject = "Your driver account was reinstated"
		n.Body = fmt.Sprintf("Hello %s, your account is active again. You can be assigned a vehicle.", e.Name)
	default:
		return ports.Notification{}, false
	}
	return n, true
}
