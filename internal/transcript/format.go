package transcript

import (
	"fmt"
	"strings"
)

// Segment is one timed caption span in playback order, as returned by the
// fetcher.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// FormatSegments renders segments as timestamped lines, one per segment:
//
//	[MM:SS] caption text
//
// Minutes run past 59 instead of rolling into hours, so every line keeps the
// same two-field shape. Whitespace inside a segment (including newlines)
// collapses to single spaces; segments with no text are dropped. Pure and
// deterministic.
func FormatSegments(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", timestamp(seg.Start), text))
	}
	return strings.Join(lines, "\n")
}

// timestamp converts seconds to MM:SS with unbounded minutes.
func timestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
