package transcript

import (
	"net/http"
	"time"
)

// Defaults for the knobs that matter most; everything is overrideable via
// environment configuration in main.
const (
	DefaultTTL           = 7 * 24 * time.Hour
	DefaultMaxChunkChars = 4000
	DefaultFetchTimeout  = 15 * time.Second
)

// Config holds all engine configuration, injected from main.
type Config struct {
	CacheDir      string
	CacheBackend  string // file | sqlite | memory
	CacheTTL      time.Duration
	MaxChunkChars int
	FetchTimeout  time.Duration
	Languages     []string // preferred caption languages, in order
	RateLimit     float64  // requests/sec to YouTube; 0 = unlimited
	HTTPClient    *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, server).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
