package extract

import (
	"regexp"
	"strings"

	"github.com/fieldsift/fieldsift/internal/model"
)

var specialChars = regexp.MustCompile(`[^A-Za-z0-9_\s.-]`)

// Extract attempts exact extraction against the whole document, in strict
// priority order: explicit pattern, both anchors, before-anchor only,
// word-anchored via target sentence, then the before-anchor safety net.
// Matching respects per-rule case sensitivity; returned text preserves the
// document's original casing. Failure at every step yields an empty Attempt,
// never an error.
func (c *CompiledRule) Extract(text string) model.Attempt {
	if c.directRe != nil {
		return c.extractDirect(text)
	}

	r := c.Rule

	if r.BeforeText != "" && r.AfterText != "" {
		att := c.extractBetween(text)
		if att.Found {
			return att
		}
		// The anchors are a joint contract: a missing after-anchor is a
		// miss unless the lenient policy is configured.
		if !c.settings.RequireAfterMatch {
			return c.extractFollowing(text)
		}
		return att
	}

	if r.BeforeText != "" {
		if att := c.extractFollowing(text); att.Found {
			return att
		}
	} else if r.TargetSentence != "" {
		if att := c.extractByWords(text); att.Found {
			return att
		}
	}

	// Safety net: a before-anchor paired with a target sentence but no
	// after-anchor gets one more before-only pass.
	if r.TargetSentence != "" && r.BeforeText != "" && r.AfterText == "" {
		return c.extractFollowing(text)
	}

	return model.Attempt{}
}

// extractDirect applies an explicit pattern, returning the first capture
// group, or the whole match when the pattern has no groups.
func (c *CompiledRule) extractDirect(text string) model.Attempt {
	m := c.directRe.FindStringSubmatch(text)
	if m == nil {
		return model.Attempt{}
	}
	value := m[0]
	if len(m) > 1 && m[1] != "" {
		value = m[1]
	}
	return c.finish(value, model.MatchedViaRegexDirect, true, true)
}

// extractBetween requires both literal anchors with the value-type run
// contiguous between them.
func (c *CompiledRule) extractBetween(text string) model.Attempt {
	m := c.bothRe.FindStringSubmatch(text)
	if m == nil {
		return model.Attempt{}
	}
	value := strings.TrimSpace(m[1])
	if len(value) > c.MaxLength {
		value = SmartBoundary(value, c.MaxLength)
	}
	return c.finish(value, model.MatchedViaAnchor, true, true)
}

// extractFollowing captures the value-type run immediately following the
// before-anchor, bounded by smart boundary detection.
func (c *CompiledRule) extractFollowing(text string) model.Attempt {
	idx, matchLen := indexFold(text, c.Rule.BeforeText, c.Rule.CaseSensitive)
	if idx < 0 {
		return model.Attempt{}
	}

	start := idx + matchLen
	for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
		start++
	}

	candidate := SmartBoundary(text[start:], c.MaxLength)
	value := c.valueRun(candidate)
	return c.finish(value, model.MatchedViaAnchor, true, false)
}

// extractPreceding captures the value-type run immediately before the
// after-anchor. Used by windowed extraction.
func (c *CompiledRule) extractPreceding(text string) model.Attempt {
	m := c.afterRe.FindStringSubmatch(text)
	if m == nil {
		return model.Attempt{}
	}
	value := strings.TrimSpace(m[1])
	if len(value) > c.MaxLength {
		value = SmartBoundary(value, c.MaxLength)
	}
	return c.finish(value, model.MatchedViaAnchor, true, true)
}

// extractByWords tries each significant word of the target sentence, in
// order, as an anchor followed by an optional separator and a value run.
func (c *CompiledRule) extractByWords(text string) model.Attempt {
	for _, re := range c.wordRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if len(value) > c.MaxLength {
			value = SmartBoundary(value, c.MaxLength)
		}
		if att := c.finish(value, model.MatchedViaAnchor, true, false); att.Found {
			return att
		}
	}
	return model.Attempt{}
}

// valueRun trims a boundary candidate down to the value-type run beginning
// at its start. A candidate that leads with out-of-class characters yields
// nothing.
func (c *CompiledRule) valueRun(candidate string) string {
	if candidate == "" {
		return ""
	}
	if c.anyType {
		return candidate
	}
	return strings.TrimSpace(c.valueRe.FindString(candidate))
}

// finish applies the run-wide cleanup settings and assembles the attempt
func (c *CompiledRule) finish(value string, method model.MatchMethod, exactAnchor, afterAnchored bool) model.Attempt {
	if c.settings.RemoveSpecialChars {
		value = specialChars.ReplaceAllString(value, "")
	}
	if c.settings.TrimWhitespace {
		value = strings.TrimSpace(value)
	}
	value = trimTrailingSeparators(value)

	if value == "" {
		return model.Attempt{}
	}
	return model.Attempt{
		Value:         value,
		Found:         true,
		Method:        method,
		ExactAnchor:   exactAnchor,
		AfterAnchored: afterAnchored,
	}
}

// trimTrailingSeparators drops trailing commas and periods, preserving
// decimal tails such as "1,234.56".
func trimTrailingSeparators(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		if (last != ',' && last != '.') || decimalTail.MatchString(s) {
			break
		}
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}
