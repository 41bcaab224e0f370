package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osokin/go_transcript/internal/cache"
)

// fakeFetcher returns canned segments and counts calls, standing in for the
// network layer.
type fakeFetcher struct {
	segments []Segment
	err      error
	calls    int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, _ []string) ([]Segment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

func newTestPipeline(f *fakeFetcher) *Pipeline {
	return &Pipeline{
		Store:         cache.NewMemoryStore(time.Hour),
		Fetcher:       f,
		Languages:     []string{"en"},
		MaxChunkChars: DefaultMaxChunkChars,
	}
}

func TestPipeline_FetchFormatEmit(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{
		{Text: "never gonna give you up", Start: 0, Duration: 3},
		{Text: "never gonna let you down", Start: 3, Duration: 3},
	}}
	p := newTestPipeline(fetcher)

	res, err := p.Run(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Equal(t, "dQw4w9WgXcQ", res.VideoID)
	require.False(t, res.Cached)
	require.Len(t, res.Chunks, 1)
	require.Equal(t, "[00:00] never gonna give you up\n[00:03] never gonna let you down", res.Text)

	out := Render(res)
	require.Equal(t, res.Text, out)
	require.False(t, strings.HasPrefix(out, "ERROR:"))
}

func TestPipeline_SecondRunServedFromCache(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{{Text: "cached once", Start: 1}}}
	p := newTestPipeline(fetcher)
	ctx := context.Background()

	first, err := p.Run(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)

	second, err := p.Run(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	require.Equal(t, 1, fetcher.calls, "second run must not hit the network")
	require.True(t, second.Cached)
	require.Equal(t, Render(first), Render(second))
}

func TestPipeline_FetchFailureLeavesNoCacheRecord(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: captions disabled", ErrNoTranscript)}
	p := newTestPipeline(fetcher)
	ctx := context.Background()

	_, err := p.Run(ctx, "https://youtu.be/abc12345678")
	require.ErrorIs(t, err, ErrNoTranscript)

	// A second run fetches again: the failure was not cached.
	_, err = p.Run(ctx, "abc12345678")
	require.ErrorIs(t, err, ErrNoTranscript)
	require.Equal(t, 2, fetcher.calls)
}

func TestPipeline_InvalidInputSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := newTestPipeline(fetcher)

	_, err := p.Run(context.Background(), "not a url at all")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, fetcher.calls, "no network call for invalid input")
}

func TestPipeline_LongTranscriptChunks(t *testing.T) {
	// ~10k characters formatted.
	var segments []Segment
	for i := 0; i < 250; i++ {
		segments = append(segments, Segment{
			Text:  fmt.Sprintf("segment %03d with enough words to pad the line out", i),
			Start: float64(i * 5),
		})
	}
	fetcher := &fakeFetcher{segments: segments}
	p := newTestPipeline(fetcher)

	res, err := p.Run(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Text), 10000)
	require.GreaterOrEqual(t, len(res.Chunks), 3)
	for _, chunk := range res.Chunks {
		require.LessOrEqual(t, len(chunk), DefaultMaxChunkChars)
	}
	require.Equal(t, res.Text, strings.Join(res.Chunks, "\n"))

	var out struct {
		VideoID     string   `json:"video_id"`
		TotalChunks int      `json:"total_chunks"`
		Chunks      []string `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal([]byte(Render(res)), &out))
	require.Equal(t, "dQw4w9WgXcQ", out.VideoID)
	require.Equal(t, len(res.Chunks), out.TotalChunks)
	require.Equal(t, res.Chunks, out.Chunks)
}

func TestPipeline_EmptyTranscriptIsAnError(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{{Text: "   ", Start: 0}}}
	p := newTestPipeline(fetcher)

	_, err := p.Run(context.Background(), "dQw4w9WgXcQ")
	require.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestPipeline_NilStore(t *testing.T) {
	fetcher := &fakeFetcher{segments: []Segment{{Text: "no store", Start: 0}}}
	p := &Pipeline{Fetcher: fetcher}

	res, err := p.Run(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Equal(t, "[00:00] no store", res.Text)
}

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no transcript", err: ErrNoTranscript, want: "captions"},
		{name: "unavailable", err: ErrVideoUnavailable, want: "unavailable"},
		{name: "rate limited", err: ErrRateLimited, want: "temporary"},
		{name: "invalid", err: ErrInvalidInput, want: "Supported formats"},
		{name: "unknown", err: fmt.Errorf("boom"), want: "unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FriendlyMessage(fmt.Errorf("wrapped: %w", tt.err), "abc12345678")
			require.Contains(t, msg, tt.want)
			require.NotContains(t, msg, "wrapped", "internal detail must not leak")
		})
	}
}
