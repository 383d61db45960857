// Package audit persists a per-call log of dispatched tool invocations.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// maxResultBytes bounds the stored result snippet per call.
const maxResultBytes = 4096

// Store writes tool-call records to SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Entry is one recorded tool call.
type Entry struct {
	ID        int64
	Tool      string
	Args      string
	OK        bool
	Result    string
	Elapsed   time.Duration
	CreatedAt time.Time
}

func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection for SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_calls (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		tool        TEXT NOT NULL,
		args        TEXT,
		ok          INTEGER NOT NULL,
		result      TEXT,
		elapsed_ms  INTEGER DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_tool_calls_time ON tool_calls(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one call. args is marshaled as JSON; result is truncated to
// a snippet.
func (s *Store) Record(ctx context.Context, tool string, args map[string]any, ok bool, result string, elapsed time.Duration) error {
	argsJSON := []byte("{}")
	if len(args) > 0 {
		if b, err := json.Marshal(args); err == nil {
			argsJSON = b
		}
	}
	if len(result) > maxResultBytes {
		result = result[:maxResultBytes]
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool_calls (tool, args, ok, result, elapsed_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		tool, string(argsJSON), boolToInt(ok), result, elapsed.Milliseconds(), time.Now())
	return err
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, args, ok, result, elapsed_ms, created_at
		 FROM tool_calls ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		var elapsedMS int64
		if err := rows.Scan(&e.ID, &e.Tool, &e.Args, &ok, &e.Result, &elapsedMS, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OK = ok != 0
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
