package transcript

import (
	"context"
	"fmt"

	"github.com/osokin/go_transcript/internal/cache"
)

// Fetcher retrieves raw caption segments for a video ID. The production
// implementation lives in sources; tests inject a fake.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, langs []string) ([]Segment, error)
}

// Result is the outcome of one transcript request.
type Result struct {
	VideoID string
	Text    string   // full formatted transcript
	Chunks  []string // len > 1 when Text exceeded the chunk limit
	Cached  bool
}

// Pipeline wires extraction, cache, fetch, formatting, and chunking into a
// single request flow: extract → cache get → (miss: fetch → format → cache
// put) → chunk. The pipeline owns a request's lifecycle; the store owns the
// persisted records across requests.
type Pipeline struct {
	Store         cache.Store
	Fetcher       Fetcher
	Languages     []string
	MaxChunkChars int
}

// Run resolves raw input into a formatted, chunked transcript. Cache write
// failures never fail an otherwise-successful fetch; the stores log and
// swallow them.
func (p *Pipeline) Run(ctx context.Context, raw string) (Result, error) {
	videoID, err := ExtractVideoID(raw)
	if err != nil {
		return Result{}, err
	}

	if p.Store != nil {
		if text, ok := p.Store.Get(ctx, videoID); ok {
			IncrCacheHit()
			return p.finish(videoID, text, true), nil
		}
		IncrCacheMiss()
	}

	segments, err := p.Fetcher.Fetch(ctx, videoID, p.Languages)
	if err != nil {
		return Result{VideoID: videoID}, err
	}

	text := FormatSegments(segments)
	if text == "" {
		return Result{VideoID: videoID}, fmt.Errorf("%w: video %s", ErrEmptyTranscript, videoID)
	}

	if p.Store != nil {
		p.Store.Put(ctx, videoID, text)
	}
	return p.finish(videoID, text, false), nil
}

func (p *Pipeline) finish(videoID, text string, cached bool) Result {
	maxChars := p.MaxChunkChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	return Result{
		VideoID: videoID,
		Text:    text,
		Chunks:  ChunkTranscript(text, maxChars),
		Cached:  cached,
	}
}
