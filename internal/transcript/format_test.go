package transcript

import "testing"

func TestFormatSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{
			name: "basic lines",
			segments: []Segment{
				{Text: "hello world", Start: 0, Duration: 2.5},
				{Text: "second line", Start: 65.2, Duration: 3},
			},
			want: "[00:00] hello world\n[01:05] second line",
		},
		{
			name: "minutes run past 59",
			segments: []Segment{
				{Text: "deep into the video", Start: 3725},
			},
			want: "[62:05] deep into the video",
		},
		{
			name: "internal newlines collapse",
			segments: []Segment{
				{Text: "line\nwith\nbreaks", Start: 10},
			},
			want: "[00:10] line with breaks",
		},
		{
			name: "runs of whitespace collapse",
			segments: []Segment{
				{Text: "  spaced \t out  ", Start: 1},
			},
			want: "[00:01] spaced out",
		},
		{
			name: "empty segments dropped",
			segments: []Segment{
				{Text: "before", Start: 0},
				{Text: "   \n ", Start: 1},
				{Text: "after", Start: 2},
			},
			want: "[00:00] before\n[00:02] after",
		},
		{
			name:     "no segments",
			segments: nil,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSegments(tt.segments)
			if got != tt.want {
				t.Errorf("FormatSegments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSegments_Deterministic(t *testing.T) {
	segments := []Segment{
		{Text: "a", Start: 0.9},
		{Text: "b", Start: 59.99},
		{Text: "c", Start: 60.01},
	}
	first := FormatSegments(segments)
	for i := 0; i < 10; i++ {
		if got := FormatSegments(segments); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{9.7, "00:09"},
		{59.99, "00:59"},
		{60, "01:00"},
		{599, "09:59"},
		{3599, "59:59"},
		{3600, "60:00"},
		{7325, "122:05"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := timestamp(tt.seconds); got != tt.want {
			t.Errorf("timestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
