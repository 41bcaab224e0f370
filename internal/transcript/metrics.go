package transcript

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	FetchRequests atomic.Int64
	FetchErrors   atomic.Int64
	CacheHits     atomic.Int64
	CacheMisses   atomic.Int64
}

func IncrFetch()      { metrics.FetchRequests.Add(1) }
func IncrFetchError() { metrics.FetchErrors.Add(1) }
func IncrCacheHit()   { metrics.CacheHits.Add(1) }
func IncrCacheMiss()  { metrics.CacheMisses.Add(1) }

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"fetch_requests": metrics.FetchRequests.Load(),
		"fetch_errors":   metrics.FetchErrors.Load(),
		"cache_hits":     metrics.CacheHits.Load(),
		"cache_misses":   metrics.CacheMisses.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	snapshot := GetMetrics()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, snapshot[k])
	}
	return sb.String()
}
