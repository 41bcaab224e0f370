package transcript

import "encoding/json"

// chunkedOutput is the JSON emitted when a transcript exceeds the chunk
// limit. The note tells the consuming agent to read every chunk before
// acting.
type chunkedOutput struct {
	VideoID     string   `json:"video_id"`
	TotalChunks int      `json:"total_chunks"`
	Note        string   `json:"note"`
	Chunks      []string `json:"chunks"`
}

const chunkedNote = "This transcript was split into chunks because the video is long. Process all chunks."

// Render returns the stdout form of a result: the plain transcript when it
// fits in one chunk, otherwise an indented JSON object carrying the chunks.
// Never both.
func Render(res Result) string {
	if len(res.Chunks) <= 1 {
		return res.Text
	}
	data, err := json.MarshalIndent(chunkedOutput{
		VideoID:     res.VideoID,
		TotalChunks: len(res.Chunks),
		Note:        chunkedNote,
		Chunks:      res.Chunks,
	}, "", "  ")
	if err != nil {
		return res.Text
	}
	return string(data)
}
