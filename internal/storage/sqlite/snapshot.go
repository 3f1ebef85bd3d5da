package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
)

var _ project.SnapshotStore = (*SnapshotRepository)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		source     TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		hits       INTEGER NOT NULL,
		body       BLOB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS snapshots_fetched_at ON snapshots (fetched_at DESC)`,
}

// SnapshotRepository keeps raw listing bodies in a local SQLite file
type SnapshotRepository struct {
	db *sql.DB
}

// Open creates the database file and schema if needed
func Open(ctx context.Context, path string) (*SnapshotRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: migrate: %w", err)
		}
	}

	return &SnapshotRepository{db: db}, nil
}

// SaveSnapshot inserts a snapshot; saving the same ID twice replaces it
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, s project.Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, source, fetched_at, hits, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			fetched_at = excluded.fetched_at,
			hits = excluded.hits,
			body = excluded.body
	`, s.ID, s.Source, s.FetchedAt.UTC().UnixMilli(), s.Hits, s.Body)
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot %s: %w", s.ID, err)
	}
	return nil
}

// LatestSnapshot returns the most recently fetched snapshot
func (r *SnapshotRepository) LatestSnapshot(ctx context.Context) (project.Snapshot, error) {
	var (
		s         project.Snapshot
		fetchedAt int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, source, fetched_at, hits, body
		FROM snapshots
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&s.ID, &s.Source, &fetchedAt, &s.Hits, &s.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Snapshot{}, project.ErrNoSnapshot
	}
	if err != nil {
		return project.Snapshot{}, fmt.Errorf("sqlite: latest snapshot: %w", err)
	}

	s.FetchedAt = time.UnixMilli(fetchedAt).UTC()
	return s, nil
}

// Prune keeps the newest keep snapshots and deletes the rest
func (r *SnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY fetched_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying pool
func (r *SnapshotRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
