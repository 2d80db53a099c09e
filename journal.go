package effect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/effect/internal/journal"
)

// Journal is a durable, append-only record of retry lifecycle events.
// Attach it to retry call sites through JournalObserver; query it back for
// audits and tests through Events.
//
// Only a SQLite backend is provided in this module; the journal shares the
// caller's *sql.DB.
type Journal struct {
	store *journal.SQLiteStore
}

// RetryRecord is one journalled retry lifecycle event.
type RetryRecord struct {
	// ID is the unique record id.
	ID string

	// Op is the call-site label the event was recorded under.
	Op string

	// Event is one of "retry", "success", "exhausted".
	Event string

	// Attempt is the retry number for "retry" events, and the total attempt
	// count for terminal events.
	Attempt int

	// Error is the formatted error, empty for "success".
	Error string

	// Delay is the backoff delay for "retry" events, and the total waited
	// time for terminal events.
	Delay time.Duration

	// RecordedAt is when the event was journalled.
	RecordedAt time.Time
}

// NewSQLiteJournal constructs a Journal persisting into the provided SQLite
// database, initializing its schema.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:effects.db?_journal=WAL")
//	j, err := effect.NewSQLiteJournal(db)
//	res := retried.Run(ctx, env) // with effect.WithObserver(effect.JournalObserver[MyErr](j))
func NewSQLiteJournal(db *sql.DB) (*Journal, error) {
	store, err := journal.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return &Journal{store: store}, nil
}

// Events returns every record journalled under the given op label, oldest
// first.
func (j *Journal) Events(ctx context.Context, op string) ([]RetryRecord, error) {
	entries, err := j.store.ListByOp(ctx, op)
	if err != nil {
		return nil, err
	}
	out := make([]RetryRecord, len(entries))
	for i, e := range entries {
		out[i] = RetryRecord{
			ID:         e.ID,
			Op:         e.Op,
			Event:      e.Event,
			Attempt:    e.Attempt,
			Error:      e.Error,
			Delay:      e.Delay,
			RecordedAt: e.RecordedAt,
		}
	}
	return out, nil
}

// JournalObserver adapts a Journal into a RetryObserver. Journalling errors
// are swallowed: the journal is an observability side channel and must not
// influence retry behaviour.
func JournalObserver[E any](j *Journal) RetryObserver[E] {
	return journalObserver[E]{j: j}
}

type journalObserver[E any] struct {
	j *Journal
}

func (o journalObserver[E]) OnRetry(ctx context.Context, op string, ev RetryEvent[E]) {
	_ = o.j.store.Append(ctx, journal.Entry{
		ID:         uuid.NewString(),
		Op:         op,
		Event:      journal.EventRetry,
		Attempt:    ev.Attempt,
		Error:      fmt.Sprintf("%v", ev.Err),
		Delay:      ev.Delay,
		RecordedAt: time.Now(),
	})
}

func (o journalObserver[E]) OnSuccess(ctx context.Context, op string, attempts int, waited time.Duration) {
	_ = o.j.store.Append(ctx, journal.Entry{
		ID:         uuid.NewString(),
		Op:         op,
		Event:      journal.EventSuccess,
		Attempt:    attempts,
		Delay:      waited,
		RecordedAt: time.Now(),
	})
}

func (o journalObserver[E]) OnExhausted(ctx context.Context, op string, attempts int, waited time.Duration, err E) {
	_ = o.j.store.Append(ctx, journal.Entry{
		ID:         uuid.NewString(),
		Op:         op,
		Event:      journal.EventExhausted,
		Attempt:    attempts,
		Error:      fmt.Sprintf("%v", err),
		Delay:      waited,
		RecordedAt: time.Now(),
	})
}
