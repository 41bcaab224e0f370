package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"

	"github.com/osokin/go_transcript/internal/transcript"
)

// YouTube transcript fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track → timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks → timedtext XML
// Each strategy is attempted exactly once; failures are classified and
// returned to the caller, which owns any retry decision.

// ytInitialPlayerResponseMarker marks the start of the player response JSON
// in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// Fetch retrieves the caption segments for a video, preferring langs in
// order and falling back to any available track. Implements
// transcript.Fetcher.
func (c *Client) Fetch(ctx context.Context, videoID string, langs []string) ([]transcript.Segment, error) {
	transcript.IncrFetch()

	segments, err := c.fetchViaPageScrape(ctx, videoID, langs)
	if err == nil {
		return segments, nil
	}
	if isClassified(err) {
		// The watch page gave a definitive answer; the player endpoint
		// would only repeat it.
		transcript.IncrFetchError()
		return nil, err
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	segments, err = c.fetchViaPlayer(ctx, videoID, langs)
	if err != nil {
		transcript.IncrFetchError()
		return nil, err
	}
	return segments, nil
}

// isClassified reports whether err already carries one of the stable failure
// kinds, as opposed to an unclassified transport or parse error.
func isClassified(err error) bool {
	return errors.Is(err, transcript.ErrNoTranscript) ||
		errors.Is(err, transcript.ErrVideoUnavailable) ||
		errors.Is(err, transcript.ErrRateLimited)
}

// fetchViaPageScrape scrapes the YouTube watch page HTML and extracts the
// caption track URL from ytInitialPlayerResponse. Works from most IPs.
func (c *Client) fetchViaPageScrape(ctx context.Context, videoID string, langs []string) ([]transcript.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ytWatchURL+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: watch page HTTP 429", transcript.ErrRateLimited)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, fmt.Errorf("%w: watch page HTTP %d", transcript.ErrVideoUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		// 5xx is an upstream hiccup, not a verdict on the video; leave it
		// unclassified so the player fallback runs.
		return nil, fmt.Errorf("watch page HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResp
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}

	track, err := selectTrack(player, videoID, langs)
	if err != nil {
		return nil, err
	}
	return c.fetchTimedText(ctx, videoID, track.BaseURL)
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint, which answers
// from IP ranges where the watch page serves a consent or login wall.
func (c *Client) fetchViaPlayer(ctx context.Context, videoID string, langs []string) ([]transcript.Segment, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: player HTTP 429", transcript.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player HTTP %d", resp.StatusCode)
	}

	var player playerResp
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}

	track, err := selectTrack(player, videoID, langs)
	if err != nil {
		return nil, err
	}
	return c.fetchTimedText(ctx, videoID, track.BaseURL)
}

// selectTrack validates a player response and picks the caption track to
// fetch, mapping playability states onto the stable failure kinds.
func selectTrack(player playerResp, videoID string, langs []string) (captionTrack, error) {
	if player.Captions == nil {
		return captionTrack{}, classifyPlayability(player.PlayabilityStatus, videoID)
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return captionTrack{}, fmt.Errorf("%w: no caption tracks for video %s", transcript.ErrNoTranscript, videoID)
	}
	track, ok := pickTrack(tracks, langs)
	if !ok {
		return captionTrack{}, fmt.Errorf("%w: all caption tracks require PoToken", transcript.ErrNoTranscript)
	}
	return track, nil
}

// classifyPlayability maps a /player playability status (present when
// captions are absent) onto a failure kind.
func classifyPlayability(ps *playabilityStatus, videoID string) error {
	if ps == nil || ps.Status == "OK" {
		return fmt.Errorf("%w: no captions for video %s", transcript.ErrNoTranscript, videoID)
	}
	switch ps.Status {
	case "LOGIN_REQUIRED", "CONTENT_CHECK_REQUIRED":
		// YouTube demands a signed-in session; from a server this means the
		// IP is being throttled or challenged.
		return fmt.Errorf("%w: %s", transcript.ErrRateLimited, ps.Status)
	case "ERROR", "UNPLAYABLE", "AGE_CHECK_REQUIRED":
		return fmt.Errorf("%w: %s", transcript.ErrVideoUnavailable, ps.Status)
	}
	return fmt.Errorf("playability %s: %s", ps.Status, ps.Reason)
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the best usable caption track for the given language
// preferences: manual track in a preferred language, then auto-generated in a
// preferred language, then any English, then the first usable track.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches a caption track URL and parses the timedtext XML
// into ordered segments.
func (c *Client) fetchTimedText(ctx context.Context, videoID, baseURL string) ([]transcript.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: timedtext HTTP 429", transcript.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty caption track for video %s", transcript.ErrNoTranscript, videoID)
	}
	return segments, nil
}

// parseTimedText decodes timedtext XML into segments, dropping lines whose
// text is empty after cleanup.
func parseTimedText(body []byte) ([]transcript.Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	return segments, nil
}

var captionTagRe = regexp.MustCompile(`<[^>]+>`)

// cleanCaption strips inline markup and decodes the HTML entities YouTube
// leaves in caption text.
func cleanCaption(s string) string {
	return strings.TrimSpace(html.UnescapeString(captionTagRe.ReplaceAllString(s, "")))
}

// do applies the rate limiter, then executes the request.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(req)
}
