// Package history records every action handed to the executor in a small
// sqlite database, so the monitor and the status server can show what ran.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id         TEXT PRIMARY KEY,
	at         INTEGER NOT NULL,
	clock_text TEXT NOT NULL,
	request    TEXT NOT NULL,
	status     TEXT NOT NULL,
	ok         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS executions_at ON executions(at);
`

// Entry is one executed request.
type Entry struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	ClockText string    `json:"clock_text"`
	Request   string    `json:"request"`
	Status    string    `json:"status"`
	OK        bool      `json:"ok"`
}

// Line renders the entry the way the monitor lists it.
func (e Entry) Line() string {
	return fmt.Sprintf("%s %s: %s", e.ClockText, e.Request, e.Status)
}

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	log.Debug("history database ready", "path", path)
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores e, assigning an ID when it has none.
func (s *Store) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO executions (id, at, clock_text, request, status, ok) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.At.UnixNano(), e.ClockText, e.Request, e.Status, e.OK)
	if err != nil {
		return Entry{}, fmt.Errorf("append history: %w", err)
	}
	return e, nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, clock_text, request, status, ok FROM executions ORDER BY at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &at, &e.ClockText, &e.Request, &e.Status, &e.OK); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.At = time.Unix(0, at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}
