// Package audit persists a local record of tool invocations in SQLite.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

const (
	defaultBusyTimeout = 5000

	// maxArgsBytes caps the stored argument payload so one oversized
	// call cannot bloat the audit log.
	maxArgsBytes = 4096
)

// Entry is one recorded tool invocation.
type Entry struct {
	ID        int64
	Tool      string
	Args      string
	Outcome   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Store is a SQLite-backed audit log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path.
//
// The database is created with WAL mode, a 5 s busy timeout, and a single
// connection (SQLite serialises writes). The schema is migrated
// automatically.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("audit: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: enable WAL: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordInvocation appends one invocation row. Arguments beyond
// maxArgsBytes are truncated before storage.
func (s *Store) RecordInvocation(ctx context.Context, tool, outcome string, latency time.Duration, args []byte) error {
	if len(args) > maxArgsBytes {
		args = args[:maxArgsBytes]
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations (tool, args, outcome, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tool, string(args), outcome,
		latency.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("audit: record invocation: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool, args, outcome, duration_ms, created_at
		FROM invocations
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.Tool, &e.Args, &e.Outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("audit: scan entry: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM invocations WHERE created_at < ?",
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("audit: prune: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("audit: rows affected: %w", err)
	}
	return n, nil
}

// Len returns the total number of stored entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invocations").Scan(&count); err != nil {
		return 0, fmt.Errorf("audit: count entries: %w", err)
	}
	return count, nil
}
