// go_transcript — YouTube transcript fetcher for LLM agents.
//
// One-shot mode resolves a video URL or ID, fetches and caches the caption
// transcript, and prints it to stdout as timestamped text (or chunked JSON
// when long). `serve` runs the same pipeline as an HTTP MCP server.
//
// Success and failure are distinguishable from stdout alone: failures print a
// single "ERROR: ..." line and nothing else. Exit status 1 is a secondary
// signal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/osokin/go_transcript/internal/cache"
	"github.com/osokin/go_transcript/internal/transcript"
	"github.com/osokin/go_transcript/internal/transcript/sources"
	"github.com/osokin/go_transcript/internal/transcriptserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	_ = godotenv.Load()
	initEngine()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("ERROR: No video ID or URL provided.")
		fmt.Fprintln(os.Stderr, "Usage: go_transcript <video_id_or_url> | go_transcript serve")
		os.Exit(1)
	}

	if args[0] == "serve" {
		runServer()
		return
	}
	runOnce(args[0])
}

func initEngine() {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", transcript.DefaultFetchTimeout)
	transcript.Init(transcript.Config{
		CacheDir:      env.Str("CACHE_DIR", defaultCacheDir()),
		CacheBackend:  env.Str("CACHE_BACKEND", "file"),
		CacheTTL:      env.Duration("CACHE_TTL", transcript.DefaultTTL),
		MaxChunkChars: env.Int("MAX_CHUNK_CHARS", transcript.DefaultMaxChunkChars),
		FetchTimeout:  fetchTimeout,
		Languages:     env.List("TRANSCRIPT_LANGS", "en"),
		RateLimit:     env.Float("YT_RATE_LIMIT", 0),
		HTTPClient:    &http.Client{Timeout: fetchTimeout},
	})
}

func defaultCacheDir() string {
	return filepath.Join(os.Getenv("HOME"), ".go_transcript", "cache")
}

func newPipeline() *transcript.Pipeline {
	return &transcript.Pipeline{
		Store:         openStore(),
		Fetcher:       sources.NewClient(transcript.Cfg.HTTPClient, transcript.Cfg.RateLimit),
		Languages:     transcript.Cfg.Languages,
		MaxChunkChars: transcript.Cfg.MaxChunkChars,
	}
}

func openStore() cache.Store {
	switch transcript.Cfg.CacheBackend {
	case "memory":
		return cache.NewMemoryStore(transcript.Cfg.CacheTTL)
	case "sqlite":
		store, err := cache.OpenSQLiteStore(
			filepath.Join(transcript.Cfg.CacheDir, "transcripts.db"), transcript.Cfg.CacheTTL)
		if err != nil {
			slog.Warn("cache: sqlite unavailable, using file store", slog.Any("error", err))
			return cache.NewFileStore(transcript.Cfg.CacheDir, transcript.Cfg.CacheTTL)
		}
		return store
	default:
		return cache.NewFileStore(transcript.Cfg.CacheDir, transcript.Cfg.CacheTTL)
	}
}

func runOnce(raw string) {
	res, err := newPipeline().Run(context.Background(), raw)
	if err != nil {
		fmt.Println("ERROR: " + transcript.FriendlyMessage(err, res.VideoID))
		os.Exit(1)
	}
	fmt.Println(transcript.Render(res))
}

func runServer() {
	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server, newPipeline())

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      transcript.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}
