// Package sqlite persists the dispatch audit trail. The store is an
// event-bus sink: every dispatch event becomes one audit row.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/artpar/schedclient/core/events"
	"github.com/artpar/schedclient/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS dispatch_audit (
	id         TEXT PRIMARY KEY,
	operation  TEXT NOT NULL,
	variant    TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatch_audit_at ON dispatch_audit(at);
`

// AuditStore implements ports.AuditStore with SQLite.
type AuditStore struct {
	db *sql.DB
}

// Open creates an audit store at path, creating the schema if needed.
func Open(path string) (*AuditStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &AuditStore{db: db}, nil
}

// Close releases the database.
func (s *AuditStore) Close() error {
	return s.db.Close()
}

// Record appends one audit entry.
func (s *AuditStore) Record(ctx context.Context, e ports.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatch_audit (id, operation, variant, outcome, detail, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Operation, e.Variant, e.Outcome, e.Detail, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, operation, variant, outcome, detail, at
		 FROM dispatch_audit ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []ports.AuditEntry
	for rows.Next() {
		var e ports.AuditEntry
		var at string
		if err := rows.Scan(&e.ID, &e.Operation, &e.Variant, &e.Outcome, &e.Detail, &at); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp %q: %w", at, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Attach subscribes the store to every dispatch event on the bus.
func (s *AuditStore) Attach(bus *events.Bus) {
	bus.Subscribe("*", s.observe)
}

func (s *AuditStore) observe(ctx context.Context, e events.Event) error {
	entry := ports.AuditEntry{
		ID:        e.ID,
		Operation: e.Operation,
		Variant:   e.Variant.String(),
		Outcome:   string(e.Outcome),
		At:        e.At,
	}
	if e.Err != nil {
		entry.Detail = e.Err.Error()
	}
	return s.Record(ctx, entry)
}

var _ ports.AuditStore = (*AuditStore)(nil)
