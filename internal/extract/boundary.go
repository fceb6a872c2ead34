package extract

import (
	"regexp"
	"strings"
)

// boundaryDelimiters are the tokens that typically begin the next field in
// flattened invoice-style text. Extraction without an after-anchor stops at
// the earliest of these.
var boundaryDelimiters = []string{
	"\n", "\r", "\t", "  ",
	" Invoice", " Date:", " Customer", " Company", " Total", " Amount",
}

// decimalTail matches a value ending in a decimal number, e.g. "1,234.56".
// Trailing-punctuation stripping must not break such values apart.
var decimalTail = regexp.MustCompile(`[0-9][.,][0-9]*$`)

// SmartBoundary returns the candidate span starting at the beginning of s,
// cut at min(maxLength, earliest delimiter). When the cut lands mid-word at
// maxLength, the span is trimmed back to the last space past 70% of its
// length. Trailing punctuation is stripped unless it is part of a decimal
// number.
func SmartBoundary(s string, maxLength int) string {
	if s == "" || maxLength <= 0 {
		return ""
	}

	earliest := len(s)
	for _, d := range boundaryDelimiters {
		if i := strings.Index(s, d); i >= 0 && i < earliest {
			earliest = i
		}
	}

	end := maxLength
	if earliest < end {
		end = earliest
	}
	if end > len(s) {
		end = len(s)
	}

	out := s[:end]

	// Hit the length cap mid-word: back off to a late word boundary.
	if end == maxLength && end < len(s) && !isSpace(s[end]) {
		if last := strings.LastIndexByte(out, ' '); last > int(float64(len(out))*0.7) {
			out = out[:last]
		}
	}

	for len(out) > 0 && strings.ContainsRune(".,;:!?", rune(out[len(out)-1])) && !decimalTail.MatchString(out) {
		out = out[:len(out)-1]
	}

	return strings.TrimSpace(out)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
