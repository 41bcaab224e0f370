package transcript

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare ID",
			input: "dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "bare ID with whitespace",
			input: "  dQw4w9WgXcQ\n",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "watch URL with extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120&list=PL123",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "watch URL with v not first",
			input: "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "short URL",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "short URL with tracking param",
			input: "https://youtu.be/dQw4w9WgXcQ?si=abcdef&t=42",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "shorts URL",
			input: "https://youtube.com/shorts/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "embed URL",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "live URL",
			input: "https://www.youtube.com/live/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "no scheme",
			input: "www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
		},
		{
			name:  "surrounding text",
			input: "check this out: https://youtu.be/dQw4w9WgXcQ so good",
			want:  "dQw4w9WgXcQ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractVideoID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a url", input: "not a url at all"},
		{name: "empty", input: ""},
		{name: "ten chars", input: "dQw4w9WgXc"},
		{name: "twelve chars", input: "dQw4w9WgXcQQ"},
		{name: "twelve char path segment", input: "https://youtu.be/dQw4w9WgXcQQ"},
		{name: "unrelated host", input: "https://vimeo.com/watch?v=dQw4w9WgXcQ"},
		{name: "playlist only", input: "https://www.youtube.com/playlist?list=PL123456"},
		{name: "id with space", input: "dQw4w9 gXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractVideoID(tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ExtractVideoID(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
		})
	}
}
