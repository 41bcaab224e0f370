package transcript

import (
	"errors"
	"fmt"
)

// Failure kinds for the pipeline. The fetch layer maps whatever the upstream
// endpoints return onto these sentinels; callers match with errors.Is rather
// than relying on upstream error identity.
var (
	ErrInvalidInput     = errors.New("not a recognized YouTube URL or video ID")
	ErrNoTranscript     = errors.New("no transcript available")
	ErrVideoUnavailable = errors.New("video unavailable")
	ErrRateLimited      = errors.New("requests blocked by YouTube")
	ErrEmptyTranscript  = errors.New("transcript is empty")
)

// FriendlyMessage translates a pipeline error into user-facing text with no
// technical detail. videoID may be empty when extraction itself failed.
func FriendlyMessage(err error, videoID string) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Could not extract a YouTube video ID from the input. " +
			"Supported formats: a youtube.com/watch, youtu.be, or Shorts URL, or a plain 11-character video ID."
	case errors.Is(err, ErrNoTranscript):
		return fmt.Sprintf("Could not fetch a transcript for video '%s'. "+
			"The video may not have captions/subtitles available.", videoID)
	case errors.Is(err, ErrVideoUnavailable):
		return fmt.Sprintf("Video '%s' is unavailable. "+
			"It may be private, deleted, or region-restricted.", videoID)
	case errors.Is(err, ErrRateLimited):
		return "YouTube is blocking requests right now. " +
			"This is usually temporary, please try again in a few minutes."
	case errors.Is(err, ErrEmptyTranscript):
		return "The transcript was fetched but appears to be empty."
	}
	return "An unexpected error occurred while fetching the transcript. Please try again."
}
