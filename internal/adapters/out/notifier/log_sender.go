// Package notifier delivers driver notifications. The only sender writes
// them to the structured log; a mail or SMS gateway would plug in here.
package notifier

import (
	"context"

	"ecofleet/internal/core/ports"

	"go.uber.org/zap"
)

type LogSender struct {
	logger *zap.Logger
}

var _ ports.NotificationSender = (*LogSender)(nil)

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.With(zap.String("component", "notifier"))}
}

func (s *LogSender) Send(ctx context.Context, n ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("Notification sent",
		zap.Stringer("message_id", n.MessageID),
		zap.String("event_type", n.EventType),
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
	)
	return nil
}
