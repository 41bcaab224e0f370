package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// A video ID is exactly 11 characters of [A-Za-z0-9_-].
var bareIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Recognized URL forms, tried in order after the bare-ID check. The trailing
// group rejects IDs that continue past 11 characters, so a 12-character path
// segment never yields a truncated match.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?[^\s]*v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/live/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// ExtractVideoID resolves a raw URL or bare ID string into the canonical
// 11-character video ID. Extra query parameters and surrounding text are
// tolerated; anything that matches no recognized form fails with
// ErrInvalidInput.
func ExtractVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)

	if bareIDRe.MatchString(s) {
		return s, nil
	}

	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidInput, s)
}
