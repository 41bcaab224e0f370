package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store. It is the injectable substitute for the
// durable backends in tests, and doubles as a per-process cache for serve
// mode when persistence is not wanted.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[string]record
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, records: make(map[string]record)}
}

func (s *MemoryStore) Get(_ context.Context, videoID string) (string, bool) {
	s.mu.RLock()
	rec, ok := s.records[videoID]
	s.mu.RUnlock()
	if !ok || !fresh(rec.FetchedAt, s.ttl) {
		return "", false
	}
	return rec.Transcript, true
}

func (s *MemoryStore) Put(_ context.Context, videoID, transcript string) {
	s.mu.Lock()
	s.records[videoID] = record{
		VideoID:    videoID,
		Transcript: transcript,
		FetchedAt:  time.Now().Unix(),
	}
	s.mu.Unlock()
}
