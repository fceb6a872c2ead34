package model

// MatchMethod identifies which matching strategy produced a value
type MatchMethod string

const (
	MatchedViaAnchor      MatchMethod = "anchor"
	MatchedViaWindow      MatchMethod = "window"
	MatchedViaApproximate MatchMethod = "approximate"
	MatchedViaRegexDirect MatchMethod = "regex-direct"
)

// Attempt is the transient result of a single matcher invocation
type Attempt struct {
	Value  string      `json:"value,omitempty"`
	Found  bool        `json:"found"`
	Method MatchMethod `json:"matched_via,omitempty"`

	// Scoring inputs: whether the anchor was located by exact search (as
	// opposed to fuzzy sliding-window search) and whether an explicit
	// after-anchor bounded the value.
	ExactAnchor   bool `json:"-"`
	AfterAnchored bool `json:"-"`
}

// Record is the persisted output unit for one (document, rule) pair.
// Exactly one Record exists per pair, including failures; a Record is never
// mutated after creation.
type Record struct {
	DocumentID string      `json:"document_id"`
	RuleName   string      `json:"rule_name"`
	Value      string      `json:"value"`
	Found      bool        `json:"found"`
	Confidence float64     `json:"confidence"`
	Method     MatchMethod `json:"matched_via,omitempty"`

	// MatchedAlternative is the 1-based index of the alternative that
	// produced the value; 0 means the primary rule matched (or nothing did).
	MatchedAlternative int `json:"matched_alternative,omitempty"`
}
