package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fieldsift/fieldsift/internal/model"
)

// ExtractApprox tolerates misspelled anchors. It prefers exact anchor
// positions and falls back to an equal-length sliding window scored by
// similarityRatio, accepting the best position at or above threshold.
// Word-anchored matching stays exact; fuzzing words of four characters
// produces too many false positives to be useful.
func (c *CompiledRule) ExtractApprox(text string, threshold float64) model.Attempt {
	if c.directRe != nil {
		return c.extractDirect(text)
	}

	r := c.Rule
	if r.BeforeText == "" {
		return c.Extract(text)
	}

	bPos, bLen, bExact, ok := locateAnchor(text, r.BeforeText, r.CaseSensitive, threshold)
	if !ok {
		if r.TargetSentence != "" {
			return c.extractByWords(text)
		}
		return model.Attempt{}
	}

	start := bPos + bLen
	for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
		start++
	}
	rest := text[start:]

	if r.AfterText != "" {
		aPos, _, aExact, ok := locateAnchor(rest, r.AfterText, r.CaseSensitive, threshold)
		if ok {
			span := strings.TrimSpace(rest[:aPos])
			if len(span) > c.MaxLength {
				span = SmartBoundary(span, c.MaxLength)
			}
			value := c.valueRun(span)
			att := c.finish(value, model.MatchedViaAnchor, bExact && aExact, true)
			if att.Found && (!bExact || !aExact) {
				att.Method = model.MatchedViaApproximate
			}
			return att
		}
		if c.settings.RequireAfterMatch {
			return model.Attempt{}
		}
	}

	candidate := SmartBoundary(rest, c.MaxLength)
	att := c.finish(c.valueRun(candidate), model.MatchedViaAnchor, bExact, false)
	if att.Found && !bExact {
		att.Method = model.MatchedViaApproximate
	}
	return att
}

// locateAnchor returns the byte offset and matched length of anchor within
// text, first by exact search, then by sliding an anchor-length window (in
// runes) across the text and keeping the highest-similarity position at or
// above threshold. The third return reports whether the match was exact.
// Offsets and window bounds are taken from the original text, so multi-byte
// runes cannot skew them.
func locateAnchor(text, anchor string, caseSensitive bool, threshold float64) (int, int, bool, bool) {
	if idx, n := indexFold(text, anchor, caseSensitive); idx >= 0 {
		return idx, n, true, true
	}

	needle := anchor
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	runes := utf8.RuneCountInString(anchor)
	if runes == 0 {
		return 0, 0, false, false
	}

	starts := make([]int, 0, len(text)+1)
	for i := range text {
		starts = append(starts, i)
	}
	starts = append(starts, len(text))

	best, bestLen := -1, 0
	bestScore := 0.0
	for i := 0; i+runes < len(starts); i++ {
		window := text[starts[i]:starts[i+runes]]
		if !caseSensitive {
			window = strings.ToLower(window)
		}
		if score := similarityRatio(window, needle); score > bestScore {
			bestScore = score
			best = starts[i]
			bestLen = starts[i+runes] - starts[i]
		}
	}
	if best < 0 || bestScore < threshold {
		return 0, 0, false, false
	}
	return best, bestLen, false, true
}

// similarityRatio is 2*M/T where M counts characters in common subsequences
// and T is the combined length of both strings, so "Invioce:" against
// "Invoice:" scores 0.875.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	matched := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return 2.0 * float64(matched) / float64(total)
}
