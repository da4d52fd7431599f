// Package outbox models a row of the transactional outbox: a domain event
// waiting for, or done with, delivery to the message bus.
//
// ProcessedOn nil means pending. Once set the message is terminal whether it
// was delivered (Error nil) or dead-lettered (Error set); it is never selected
// again.
package outbox

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"
)

// maxErrorLength bounds what is stored in the error column.
const maxErrorLength = 2000

type Message struct {
	id          kernel.UUID
	eventType   string
	content     string
	occurredOn  time.Time
	processedOn *time.Time
	err         *string
}

// NewMessage builds a pending message. Only the unit of work creates these,
// inside the transaction that persists the originating aggregate.
func NewMessage(id kernel.UUID, eventType, content string, occurredOn time.Time) (*Message, error) {
	return RestoreMessage(id, eventType, content, occurredOn, nil, nil)
}

func RestoreMessage(
	id kernel.UUID,
	eventType, content string,
	occurredOn time.Time,
	processedOn *time.Time,
	errText *string,
) (*Message, error) {
	var typeErr, occurredErr error
	if strings.TrimSpace(eventType) == "" {
		typeErr = errs.NewValueIsRequiredError("type")
	}
	if occurredOn.IsZero() {
		occurredErr = errs.NewValueIsRequiredError("occurredOn")
	}
	if err := errors.Join(id.Validate(), typeErr, occurredErr); err != nil {
		return nil, err
	}

	m := &Message{
		id:         id,
		eventType:  eventType,
		content:    content,
		occurredOn: occurredOn.UTC(),
	}
	if processedOn != nil {
		p := processedOn.UTC()
		m.processedOn = &p
	}
	if errText != nil {
		e := *errText
		m.err = &e
	}
	return m, nil
}

func (m *Message) ID() kernel.UUID         { return m.id }
func (m *Message) Type() string            { return m.eventType }
func (m *Message) Content() string         { return m.content }
func (m *Message) OccurredOn() time.Time   { return m.occurredOn }
func (m *Message) ProcessedOn() *time.Time { return m.processedOn }
func (m *Message) Error() *string          { return m.err }

func (m *Message) IsPending() bool {
	return m.processedOn == nil
}

// MarkDelivered clears any previous error and makes the message terminal.
func (m *Message) MarkDelivered(at time.Time) {
	p := at.UTC()
	m.processedOn = &p
	m.err = nil
}

// MarkFailed records cause and makes the message terminal. There is no retry
// from the outbox once a message is marked failed.
func (m *Message) MarkFailed(at time.Time, cause error) {
	p := at.UTC()
	m.processedOn = &p

	text := "unknown error"
	if cause != nil {
		text = cause.Error()
	}
	text = truncateUTF8(strings.ToValidUTF8(text, "\uFFFD"), maxErrorLength)
	m.err = &text
}

// truncateUTF8 cuts s to at most n bytes without splitting a character; the
// error column is text and Postgres refuses invalid UTF-8.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
