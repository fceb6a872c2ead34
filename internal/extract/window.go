package extract

import (
	"strings"

	"github.com/fieldsift/fieldsift/internal/model"
)

// windowRadius bounds the search region around a located target sentence.
const windowRadius = 300

// ExtractInWindow narrows the document to a region around the rule's target
// sentence and re-runs the anchor chain inside it. When the full sentence is
// absent the first significant word (longer than three characters) stands in
// for it. Attempts that succeed here report the window method.
func (c *CompiledRule) ExtractInWindow(text string) model.Attempt {
	window, ok := c.locateWindow(text)
	if !ok {
		return model.Attempt{}
	}

	r := c.Rule

	if r.BeforeText != "" && r.AfterText != "" {
		if att := c.extractBetween(window); att.Found {
			return asWindow(att)
		}
		if !c.settings.RequireAfterMatch {
			if att := c.extractFollowing(window); att.Found {
				return asWindow(att)
			}
		}
	}

	if r.BeforeText != "" && r.AfterText == "" {
		if att := c.extractFollowing(window); att.Found {
			return asWindow(att)
		}
	}

	if r.AfterText != "" && r.BeforeText == "" {
		if att := c.extractPreceding(window); att.Found {
			return asWindow(att)
		}
	}

	if att := c.extractByWords(window); att.Found {
		return asWindow(att)
	}

	return model.Attempt{}
}

// locateWindow finds the target sentence, or its first significant word, and
// returns the surrounding slice of the document.
func (c *CompiledRule) locateWindow(text string) (string, bool) {
	target := c.Rule.TargetSentence
	if target == "" {
		return "", false
	}

	idx, matchLen := indexFold(text, target, c.Rule.CaseSensitive)
	if idx < 0 {
		word := firstSignificantWord(target)
		if word == "" {
			return "", false
		}
		idx, matchLen = indexFold(text, word, c.Rule.CaseSensitive)
		if idx < 0 {
			return "", false
		}
	}

	lo := idx - windowRadius
	if lo < 0 {
		lo = 0
	}
	hi := idx + matchLen + windowRadius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi], true
}

func firstSignificantWord(sentence string) string {
	for _, w := range strings.Fields(sentence) {
		if len(w) > 3 {
			return w
		}
	}
	return ""
}

func asWindow(att model.Attempt) model.Attempt {
	att.Method = model.MatchedViaWindow
	return att
}
