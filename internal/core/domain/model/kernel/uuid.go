package kernel

import (
	"fmt"

	"ecofleet/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is what Validate reports for the zero UUID, whether
// it came from a missing constructor call or from an all-zero input.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies drivers, vehicles, orders, assignments and outbox messages.
//
// It wraps google/uuid so the domain never handles the raw array directly.
// The zero value is not an identifier: it fails Validate, and UUIDFromBytes
// refuses to produce it. Values are comparable and safe to copy between
// goroutines.
//
// Aggregates receive their id from the caller, usually kernel.NewUUID() in
// a command handler. Adapters rebuild it from storage with UUIDFromBytes,
// and from HTTP or Kafka input with UUIDFromString or UnmarshalText.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random version 4 id.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString accepts every form uuid.Parse does: canonical, braced,
// urn-prefixed or without hyphens. The nil UUID parses without error and is
// caught later by Validate.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes rebuilds an id read back from a uuid column. It needs exactly
// 16 bytes and rejects the nil UUID with ErrUUIDIsNotConstructed.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

// String is the lower-case canonical form used in logs, payloads and URLs.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets UUIDs travel inside event payloads and HTTP bodies as
// their canonical string form.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

// UnmarshalText parses the canonical string form. An empty input leaves the
// zero value, which fails Validate.
func (u *UUID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		u.id = uuid.Nil
		return nil
	}
	id, err := uuid.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("invalid UUID format: %w", err)
	}
	u.id = id
	return nil
}

// Ptr returns a pointer to a copy of u, handy for optional references.
func (u UUID) Ptr() *UUID {
	return &u
}
