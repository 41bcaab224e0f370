package transcript

import "strings"

// ChunkTranscript splits formatted transcript text into pieces of at most
// maxChars, cutting only on line boundaries so a timestamped line is never
// split mid-line. A single line longer than maxChars stays intact as its own
// oversized chunk. Joining the chunks with "\n" reproduces the input exactly.
func ChunkTranscript(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var current []string
	length := 0

	for _, line := range strings.Split(text, "\n") {
		lineLen := len(line) + 1 // +1 for the newline
		if length+lineLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
			length = 0
		}
		current = append(current, line)
		length += lineLen
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}
