// Package journal persists retry lifecycle events so that backoff behaviour
// can be audited after the fact.
package journal

import (
	"context"
	"database/sql"
	"time"
)

// Entry is one persisted retry lifecycle event.
type Entry struct {
	ID         string
	Op         string
	Event      string
	Attempt    int
	Error      string
	Delay      time.Duration
	RecordedAt time.Time
}

// Event kinds stored in the journal.
const (
	EventRetry     = "retry"
	EventSuccess   = "success"
	EventExhausted = "exhausted"
)

// SQLiteStore is an append-only journal backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing the
// driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes the required schema in the given database and
// returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS retry_events (
			id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			event TEXT NOT NULL,
			attempt INTEGER NOT NULL,
			error TEXT,
			delay_ns INTEGER NOT NULL,
			recorded_at_ns INTEGER NOT NULL
		);`,
	)
	return err
}

// Append persists a single entry.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO retry_events (id, op, event, attempt, error, delay_ns, recorded_at_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Op,
		e.Event,
		e.Attempt,
		e.Error,
		e.Delay.Nanoseconds(),
		e.RecordedAt.UnixNano(),
	)
	return err
}

// ListByOp returns all entries recorded for the given op label, oldest
// first.
func (s *SQLiteStore) ListByOp(ctx context.Context, op string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, op, event, attempt, error, delay_ns, recorded_at_ns
		FROM retry_events
		WHERE op = ?
		ORDER BY recorded_at_ns ASC, id ASC`,
		op,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			delayNs int64
			atNs    int64
		)
		if err := rows.Scan(&e.ID, &e.Op, &e.Event, &e.Attempt, &e.Error, &delayNs, &atNs); err != nil {
			return nil, err
		}
		e.Delay = time.Duration(delayNs)
		e.RecordedAt = time.Unix(0, atNs)
		out = append(out, e)
	}
	return out, rows.Err()
}
