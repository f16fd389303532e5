package format

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		max       int
		expected  string
		truncated bool
	}{
		{
			name:      "short text untouched",
			input:     "hello",
			max:       10,
			expected:  "hello",
			truncated: false,
		},
		{
			name:      "exact length untouched",
			input:     "hello",
			max:       5,
			expected:  "hello",
			truncated: false,
		},
		{
			name:      "long text cut with marker",
			input:     "hello world",
			max:       5,
			expected:  "hello" + TruncationMarker,
			truncated: true,
		},
		{
			name:      "empty text",
			input:     "",
			max:       5,
			expected:  "",
			truncated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("TruncateText() = %q, expected %q", got, tt.expected)
			}
			if truncated != tt.truncated {
				t.Errorf("TruncateText() truncated = %v, expected %v", truncated, tt.truncated)
			}
		})
	}
}

func TestTruncateTextNeverSplitsRunes(t *testing.T) {
	// A string of multibyte characters; cutting at any byte offset inside a
	// character must back up to the previous boundary.
	input := strings.Repeat("日本語", 10)

	for max := 1; max < len(input); max++ {
		got, truncated := TruncateText(input, max)
		if !truncated {
			t.Fatalf("max=%d: expected truncation", max)
		}
		body := strings.TrimSuffix(got, TruncationMarker)
		if !utf8.ValidString(body) {
			t.Errorf("max=%d: truncated text is not valid UTF-8: %q", max, body)
		}
		if len(body) > max {
			t.Errorf("max=%d: body is %d bytes, above the limit", max, len(body))
		}
	}
}
