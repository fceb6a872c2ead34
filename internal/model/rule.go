package model

// ValueType selects the character-class pattern a captured value may contain
type ValueType string

const (
	ValueTypeNumber ValueType = "number" // currency, percentages, dates, phone numbers
	ValueTypeText   ValueType = "text"   // names, companies, addresses
	ValueTypeBoth   ValueType = "both"   // emails, IDs, mixed codes
	ValueTypeAny    ValueType = "any"    // widest, least precise fallback
)

// Rule describes one field to extract from every document.
// Anchors are literal strings; Pattern, when set, is an explicit regular
// expression that bypasses anchor matching entirely.
type Rule struct {
	Name           string        `yaml:"name" json:"name"`
	BeforeText     string        `yaml:"before_text,omitempty" json:"before_text,omitempty"`
	AfterText      string        `yaml:"after_text,omitempty" json:"after_text,omitempty"`
	ValueType      ValueType     `yaml:"value_type,omitempty" json:"value_type,omitempty"`
	CaseSensitive  bool          `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	TargetSentence string        `yaml:"target_sentence,omitempty" json:"target_sentence,omitempty"`
	Pattern        string        `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	MaxLength      int           `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Alternatives   []Alternative `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
}

// Alternative is a partial Rule override tried only when the primary rule
// fails. Alternatives carry no nested alternative lists, so fallback chains
// cannot recurse.
type Alternative struct {
	BeforeText     string    `yaml:"before_text,omitempty" json:"before_text,omitempty"`
	AfterText      string    `yaml:"after_text,omitempty" json:"after_text,omitempty"`
	ValueType      ValueType `yaml:"value_type,omitempty" json:"value_type,omitempty"`
	CaseSensitive  *bool     `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	TargetSentence string    `yaml:"target_sentence,omitempty" json:"target_sentence,omitempty"`
	Pattern        string    `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	MaxLength      int       `yaml:"max_length,omitempty" json:"max_length,omitempty"`
}

// MergeAlternative overlays an alternative on its parent rule field-by-field.
// Alternative fields take precedence; unset fields inherit from the parent.
// The parent's Alternatives list is never propagated into the result.
func MergeAlternative(parent Rule, alt Alternative) Rule {
	merged := Rule{
		Name:           parent.Name,
		BeforeText:     parent.BeforeText,
		AfterText:      parent.AfterText,
		ValueType:      parent.ValueType,
		CaseSensitive:  parent.CaseSensitive,
		TargetSentence: parent.TargetSentence,
		Pattern:        parent.Pattern,
		MaxLength:      parent.MaxLength,
	}

	if alt.BeforeText != "" {
		merged.BeforeText = alt.BeforeText
	}
	if alt.AfterText != "" {
		merged.AfterText = alt.AfterText
	}
	if alt.ValueType != "" {
		merged.ValueType = alt.ValueType
	}
	if alt.CaseSensitive != nil {
		merged.CaseSensitive = *alt.CaseSensitive
	}
	if alt.TargetSentence != "" {
		merged.TargetSentence = alt.TargetSentence
	}
	if alt.Pattern != "" {
		merged.Pattern = alt.Pattern
	}
	if alt.MaxLength > 0 {
		merged.MaxLength = alt.MaxLength
	}

	return merged
}
