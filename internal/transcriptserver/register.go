// Package transcriptserver exposes the transcript pipeline as MCP tools for
// LLM agents.
package transcriptserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/osokin/go_transcript/internal/transcript"
)

// TranscriptInput is the input for youtube_transcript.
type TranscriptInput struct {
	Video    string `json:"video"`
	Language string `json:"language,omitempty"`
}

// TranscriptOutput carries either the whole transcript or its chunks, never
// both.
type TranscriptOutput struct {
	VideoID     string   `json:"video_id"`
	Transcript  string   `json:"transcript,omitempty"`
	TotalChunks int      `json:"total_chunks,omitempty"`
	Chunks      []string `json:"chunks,omitempty"`
	Cached      bool     `json:"cached"`
}

// RegisterTools registers the transcript tools on the given MCP server.
func RegisterTools(server *mcp.Server, pipeline *transcript.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "youtube_transcript",
		Description: "Fetch the caption transcript of a YouTube video as timestamped [MM:SS] text. " +
			"Accepts a watch/shorts/youtu.be URL or a bare 11-character video ID. " +
			"Long transcripts come back as a chunks array; read every chunk before answering.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		if input.Video == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("video is required")
		}

		p := pipeline
		if input.Language != "" {
			// Per-call language preference, keeping the configured fallbacks.
			override := *pipeline
			override.Languages = append([]string{input.Language}, pipeline.Languages...)
			p = &override
		}

		res, err := p.Run(ctx, input.Video)
		if err != nil {
			return nil, TranscriptOutput{}, errors.New(transcript.FriendlyMessage(err, res.VideoID))
		}

		out := TranscriptOutput{VideoID: res.VideoID, Cached: res.Cached}
		if len(res.Chunks) > 1 {
			out.TotalChunks = len(res.Chunks)
			out.Chunks = res.Chunks
		} else {
			out.Transcript = res.Text
		}
		return nil, out, nil
	})
}
