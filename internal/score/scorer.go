package score

import (
	"regexp"
	"strings"

	"github.com/fieldsift/fieldsift/internal/model"
)

// Mode selects the confidence model applied to extraction attempts.
type Mode string

const (
	// ModeExact yields a binary confidence: a found value scores 1.0,
	// a miss scores 0.0.
	ModeExact Mode = "exact"
	// ModeApproximate grades by anchor quality and blends in a shape
	// check keyed off the rule name.
	ModeApproximate Mode = "approximate"
)

// Scorer assigns a confidence to each extraction attempt
type Scorer struct {
	mode Mode
}

// NewScorer creates a scorer for the given mode
func NewScorer(mode Mode) *Scorer {
	return &Scorer{mode: mode}
}

// Confidence calculates the confidence for a single attempt.
//
// Exact mode is binary. Approximate mode starts at 0.8, adds 0.1 when the
// before-anchor matched exactly and another 0.1 when an after-anchor bounded
// the value, capped at 1.0; when the rule name implies a value shape
// (amounts, dates, invoice numbers), the method score is averaged with a
// shape score between 0.3 and 0.95.
func (s *Scorer) Confidence(ruleName string, att model.Attempt) float64 {
	if !att.Found {
		return 0.0
	}
	if s.mode == ModeExact {
		return 1.0
	}

	method := 0.8
	if att.ExactAnchor {
		method += 0.1
	}
	if att.AfterAnchored {
		method += 0.1
	}
	if method > 1.0 {
		method = 1.0
	}

	if shape, ok := shapeConfidence(ruleName, att.Value); ok {
		return (method + shape) / 2.0
	}
	return method
}

var (
	currencyRe   = regexp.MustCompile(`^[\$£€¥][\d,]+\.?\d*$`)
	plainAmtRe   = regexp.MustCompile(`^\d[\d,]*\.?\d*$`)
	dateNumRe    = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	dateWordRe   = regexp.MustCompile(`^[A-Za-z]+ \d{1,2},? \d{4}$`)
	dateISORe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	invoiceIDRe  = regexp.MustCompile(`^[A-Z]{2,}-?\d+$`)
	bareDigitsRe = regexp.MustCompile(`^\d+$`)
)

// shapeConfidence grades how well a value matches the shape its rule name
// implies. Rule names outside the known families report ok=false and leave
// the method score untouched.
func shapeConfidence(ruleName, value string) (float64, bool) {
	name := strings.ToLower(ruleName)
	value = strings.TrimSpace(value)

	switch {
	case strings.Contains(name, "amount") || strings.Contains(name, "total"):
		if currencyRe.MatchString(value) {
			return 0.95, true
		}
		if plainAmtRe.MatchString(value) {
			return 0.8, true
		}
		return 0.3, true

	case strings.Contains(name, "date"):
		if dateNumRe.MatchString(value) || dateWordRe.MatchString(value) || dateISORe.MatchString(value) {
			return 0.9, true
		}
		return 0.4, true

	case strings.Contains(name, "invoice") || strings.Contains(name, "number"):
		if invoiceIDRe.MatchString(value) {
			return 0.95, true
		}
		if bareDigitsRe.MatchString(value) {
			return 0.8, true
		}
		return 0.5, true
	}

	return 0, false
}
