package format

import "unicode/utf8"

// MaxTextBytes bounds the text content embedded in a single tool result.
// Content above the retrieval size cap never reaches the formatter; this
// tighter bound keeps individual result payloads assistant-sized.
const MaxTextBytes = 50_000

// TruncationMarker is appended to truncated text so the cut is explicit.
const TruncationMarker = "\n[content truncated]"

// TruncateText cuts s to at most max bytes plus the marker, never splitting
// a multibyte character. Returns the (possibly shortened) text and whether
// truncation happened.
func TruncateText(s string, max int) (string, bool) {
	if len(s) <= max {
		return s, false
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncationMarker, true
}
