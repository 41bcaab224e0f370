// Package cache persists formatted transcripts keyed by video ID.
//
// Every store enforces the same TTL contract on read: an expired or
// unreadable record reads as absent and is left in place, so a later Put for
// the same ID simply overwrites it. Writes are best effort; a failed write is
// logged and never fails the request that produced the transcript.
package cache

import (
	"context"
	"time"
)

// Store is the persistence contract for fetched transcripts. The pipeline
// takes a Store rather than a concrete backend so tests can inject the
// in-memory implementation.
type Store interface {
	Get(ctx context.Context, videoID string) (transcript string, ok bool)
	Put(ctx context.Context, videoID, transcript string)
}

// record is the stored form of one cached transcript.
type record struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	FetchedAt  int64  `json:"fetched_at"` // unix seconds
}

// fresh reports whether a record fetched at the given unix timestamp is still
// within ttl.
func fresh(fetchedAt int64, ttl time.Duration) bool {
	return time.Since(time.Unix(fetchedAt, 0)) < ttl
}
