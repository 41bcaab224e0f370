package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps cached transcripts in a single SQLite database. Useful
// when many invocations share one cache and a directory of loose JSON files
// gets unwieldy.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLiteStore(path string, ttl time.Duration) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("cache: mkdir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		video_id   TEXT PRIMARY KEY,
		transcript TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}

	return &SQLiteStore{db: db, ttl: ttl}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, videoID string) (string, bool) {
	var transcript string
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT transcript, fetched_at FROM transcripts WHERE video_id = ?`, videoID).
		Scan(&transcript, &fetchedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Debug("cache: read failed", slog.String("id", videoID), slog.Any("error", err))
		}
		return "", false
	}
	if !fresh(fetchedAt, s.ttl) {
		return "", false
	}
	return transcript, true
}

func (s *SQLiteStore) Put(ctx context.Context, videoID, transcript string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (video_id, transcript, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(video_id) DO UPDATE SET
		   transcript = excluded.transcript,
		   fetched_at = excluded.fetched_at`,
		videoID, transcript, time.Now().Unix())
	if err != nil {
		slog.Warn("cache: write failed", slog.String("id", videoID), slog.Any("error", err))
	}
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
