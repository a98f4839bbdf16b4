// Package history records command invocations in an embedded sqlite
// database in the data directory, backing the `conman history` command.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Entry is one recorded invocation.
type Entry struct {
	ID       int64
	Command  string
	Args     string
	Outcome  string
	Duration time.Duration
	At       time.Time
}

// DB wraps the history database. Callers must Close it.
type DB struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	command     TEXT NOT NULL,
	args        TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	at          TEXT NOT NULL
);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record inserts one invocation.
func (db *DB) Record(command string, args []string, outcome string, duration time.Duration) error {
	_, err := db.conn.Exec(
		`INSERT INTO invocations (command, args, outcome, duration_ms, at) VALUES (?, ?, ?, ?, ?)`,
		command,
		strings.Join(args, " "),
		outcome,
		duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns up to limit invocations, newest first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(
		`SELECT id, command, args, outcome, duration_ms, at
		 FROM invocations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			durationMs int64
			at         string
		)
		if err := rows.Scan(&e.ID, &e.Command, &e.Args, &e.Outcome, &durationMs, &at); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, at); err == nil {
			e.At = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}
