// Package eventstore is the event-sourced alternative to orderrepo. An
// order's stream in event_streams is its source of truth; nothing is written
// to the orders table or the outbox.
package eventstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/order"
	"ecofleet/internal/pkg/errs"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const orderStreamType = "order"

// ErrConcurrencyConflict is a version mismatch on an order stream.
var ErrConcurrencyConflict = errs.NewVersionIsInvalidError("order stream version")

// Dialect selects placeholder syntax and DDL.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// OrderEventStore implements ports.OrderEventStore on database/sql.
type OrderEventStore struct {
	db       *sql.DB
	dialect  Dialect
	registry *events.Registry
	tracer   trace.Tracer
}

func NewOrderEventStore(db *sql.DB, dialect Dialect, registry *events.Registry) *OrderEventStore {
	return &OrderEventStore{
		db:       db,
		dialect:  dialect,
		registry: registry,
		tracer:   otel.Tracer("ecofleet/eventstore"),
	}
}

// Migrate creates event_streams when it does not exist.
func (s *OrderEventStore) Migrate(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS event_streams (
			seq BIGSERIAL PRIMARY KEY,
			stream_id UUID NOT NULL,
			stream_type TEXT NOT NULL,
			version INT NOT NULL,
			event_type TEXT NOT NULL,
			content TEXT NOT NULL,
			UNIQUE (stream_id, version)
		)`
	if s.dialect == SQLite {
		ddl = `
		CREATE TABLE IF NOT EXISTS event_streams (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			stream_id TEXT NOT NULL,
			stream_type TEXT NOT NULL,
			version INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			content TEXT NOT NULL,
			UNIQUE (stream_id, version)
		)`
	}

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create event_streams: %w", err)
	}
	return nil
}

// Load replays the order's stream in version order.
func (s *OrderEventStore) Load(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	ctx, span := s.tracer.Start(ctx, "eventstore.load",
		trace.WithAttributes(attribute.String("stream.id", id.String())),
	)
	defer span.End()

	if err := id.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT event_type, content
		FROM event_streams
		WHERE stream_id = ? AND stream_type = ?
		ORDER BY version ASC
	`), id.String(), orderStreamType)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("query stream: %w", err))
	}
	defer rows.Close()

	var history []events.DomainEvent
	for rows.Next() {
		var tag, content string
		if err = rows.Scan(&tag, &content); err != nil {
			return nil, s.fail(span, fmt.Errorf("scan event: %w", err))
		}

		evt, decodeErr := s.registry.Decode(tag, content)
		if decodeErr != nil {
			return nil, s.fail(span, fmt.Errorf("decode event %d: %w", len(history)+1, decodeErr))
		}
		history = append(history, evt)
	}
	if err = rows.Err(); err != nil {
		return nil, s.fail(span, fmt.Errorf("iterate stream: %w", err))
	}

	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	span.SetAttributes(attribute.Int("events.loaded", len(history)))
	o, err := order.Rehydrate(history)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return o, nil
}

// Save appends the order's pending events after its current version. When
// another writer got there first ErrConcurrencyConflict is returned and the
// buffer is kept.
func (s *OrderEventStore) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	pending := aggregate.PendingEvents()
	if len(pending) == 0 {
		return nil
	}

	expected := aggregate.Version()
	ctx, span := s.tracer.Start(ctx, "eventstore.append",
		trace.WithAttributes(
			attribute.String("stream.id", aggregate.ID().String()),
			attribute.Int("expected.version", expected),
			attribute.Int("event.count", len(pending)),
		),
	)
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail(span, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	var current int
	err = tx.QueryRowContext(ctx, s.rebind(`
		SELECT COALESCE(MAX(version), 0)
		FROM event_streams
		WHERE stream_id = ?
	`), aggregate.ID().String()).Scan(&current)
	if err != nil {
		return s.fail(span, fmt.Errorf("query current version: %w", err))
	}

	if current != expected {
		span.SetAttributes(
			attribute.Int("actual.version", current),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO event_streams (stream_id, stream_type, version, event_type, content)
		VALUES (?, ?, ?, ?, ?)
	`))
	if err != nil {
		return s.fail(span, fmt.Errorf("prepare statement: %w", err))
	}
	defer stmt.Close()

	for i, evt := range pending {
		tag, content, encodeErr := s.registry.Encode(evt)
		if encodeErr != nil {
			return s.fail(span, fmt.Errorf("encode event %d: %w", i, encodeErr))
		}

		version := expected + i + 1
		if _, err = stmt.ExecContext(ctx, aggregate.ID().String(), orderStreamType, version, tag, content); err != nil {
			if isUniqueViolation(err) {
				span.SetAttributes(attribute.Bool("conflict.detected", true))
				return ErrConcurrencyConflict
			}
			return s.fail(span, fmt.Errorf("insert event %d: %w", i, err))
		}

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int("event.version", version),
			attribute.String("event.type", tag),
		))
	}

	if err = tx.Commit(); err != nil {
		return s.fail(span, fmt.Errorf("commit transaction: %w", err))
	}

	aggregate.MarkEventsPersisted()
	return nil
}

// rebind turns ? placeholders into $n for Postgres.
func (s *OrderEventStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *OrderEventStore) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
