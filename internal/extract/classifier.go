package extract

import "github.com/fieldsift/fieldsift/internal/model"

// ValuePattern maps a value type to its character-class pattern fragment.
// The fragments are embedded as a capture group inside compiled rule
// patterns; they are pure data and safe to share across matchers.
//
// number covers currency, percentages, dates and phone numbers; text covers
// names and company strings; both covers emails, IDs and mixed codes. Any
// unrecognized type falls back to a non-greedy match-anything pattern.
func ValuePattern(t model.ValueType) string {
	switch t {
	case model.ValueTypeNumber:
		return `[0-9$€£¥,.()%/\s-]+`
	case model.ValueTypeText:
		return `[A-Za-z\s&.,'-]+`
	case model.ValueTypeBoth:
		return `[A-Za-z0-9\s@._#&,()'/-]+`
	default:
		return `.+?`
	}
}
