package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
)

// FileStore keeps one JSON record per video ID under a cache directory.
// Writes go through renameio (temp file + atomic rename), so a reader racing
// a concurrent writer never observes a half-written record.
type FileStore struct {
	dir string
	ttl time.Duration
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created lazily on first Put.
func NewFileStore(dir string, ttl time.Duration) *FileStore {
	return &FileStore{dir: dir, ttl: ttl}
}

func (s *FileStore) Get(_ context.Context, videoID string) (string, bool) {
	data, err := os.ReadFile(s.path(videoID))
	if err != nil {
		return "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt record: treat as miss, a fresh fetch will overwrite it.
		slog.Debug("cache: unreadable record", slog.String("id", videoID), slog.Any("error", err))
		return "", false
	}
	if !fresh(rec.FetchedAt, s.ttl) {
		return "", false
	}
	return rec.Transcript, true
}

func (s *FileStore) Put(_ context.Context, videoID, transcript string) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		slog.Warn("cache: mkdir failed", slog.String("dir", s.dir), slog.Any("error", err))
		return
	}

	data, err := json.Marshal(record{
		VideoID:    videoID,
		Transcript: transcript,
		FetchedAt:  time.Now().Unix(),
	})
	if err != nil {
		return
	}

	if err := renameio.WriteFile(s.path(videoID), data, 0644); err != nil {
		slog.Warn("cache: write failed", slog.String("id", videoID), slog.Any("error", err))
	}
}

// path maps a video ID to its record file. IDs are validated 11-character
// strings, so they are safe as file names.
func (s *FileStore) path(videoID string) string {
	return filepath.Join(s.dir, videoID+".json")
}
