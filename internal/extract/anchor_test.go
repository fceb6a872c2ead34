package extract

import (
	"testing"

	"github.com/fieldsift/fieldsift/internal/model"
)

func testSettings() model.Settings {
	return model.Settings{
		MaxExtractionLength: 100,
		TrimWhitespace:      true,
		NotFoundValue:       "NOT_FOUND",
		RequireAfterMatch:   true,
	}
}

func mustCompile(t *testing.T, rule model.Rule) *CompiledRule {
	t.Helper()
	c, err := Compile(rule, testSettings())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return c
}

func TestExtract_BothAnchors(t *testing.T) {
	text := "Invoice Summary\nAmount Due: $1,234.56\nThank you for your business"
	rule := model.Rule{
		Name:       "amount_due",
		BeforeText: "Amount Due:",
		AfterText:  "\n",
		ValueType:  model.ValueTypeNumber,
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a match")
	}
	if att.Value != "$1,234.56" {
		t.Errorf("expected $1,234.56, got %q", att.Value)
	}
	if att.Method != model.MatchedViaAnchor {
		t.Errorf("expected anchor method, got %q", att.Method)
	}
	if !att.ExactAnchor || !att.AfterAnchored {
		t.Errorf("expected exact and after-anchored flags, got %+v", att)
	}
}

func TestExtract_BothAnchorsStrict(t *testing.T) {
	// After-anchor absent from the document: both-anchor rules must miss
	// rather than degrade to before-only matching.
	text := "Amount Due: $1,234.56 and nothing else"
	rule := model.Rule{
		Name:       "amount_due",
		BeforeText: "Amount Due:",
		AfterText:  "TOTAL-END",
		ValueType:  model.ValueTypeNumber,
	}

	att := mustCompile(t, rule).Extract(text)
	if att.Found {
		t.Errorf("expected a miss with strict after-anchor, got %q", att.Value)
	}
}

func TestExtract_BothAnchorsLenient(t *testing.T) {
	text := "Amount Due: $1,234.56\nThank you"
	rule := model.Rule{
		Name:       "amount_due",
		BeforeText: "Amount Due:",
		AfterText:  "TOTAL-END",
		ValueType:  model.ValueTypeNumber,
	}

	settings := testSettings()
	settings.RequireAfterMatch = false
	c, err := Compile(rule, settings)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	att := c.Extract(text)
	if !att.Found {
		t.Fatal("expected before-only fallback to match")
	}
	if att.Value != "$1,234.56" {
		t.Errorf("expected $1,234.56, got %q", att.Value)
	}
	if att.AfterAnchored {
		t.Error("fallback match must not report an after-anchored value")
	}
}

func TestExtract_LenientFallbackStopsAtFieldLabel(t *testing.T) {
	// The before-only fallback still honors boundary detection: the value
	// ends where the next field label begins.
	text := "Invoice #: INV-2024-001 Date: 01/15/2024"
	rule := model.Rule{
		Name:       "invoice_number",
		BeforeText: "Invoice #:",
		AfterText:  "Due:",
		ValueType:  model.ValueTypeBoth,
	}

	settings := testSettings()
	settings.RequireAfterMatch = false
	c, err := Compile(rule, settings)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	att := c.Extract(text)
	if !att.Found {
		t.Fatal("expected the before-only fallback to match")
	}
	if att.Value != "INV-2024-001" {
		t.Errorf("expected INV-2024-001, got %q", att.Value)
	}
}

func TestExtract_BeforeOnly(t *testing.T) {
	tests := []struct {
		name string
		text string
		rule model.Rule
		want string
	}{
		{
			name: "stops at next field label",
			text: "Invoice Date: 2024-01-15 Customer: Acme Corp",
			rule: model.Rule{Name: "invoice_date", BeforeText: "Invoice Date:", ValueType: model.ValueTypeNumber},
			want: "2024-01-15",
		},
		{
			name: "stops at newline",
			text: "Customer Name: Acme Widgets Ltd.\nPhone: 555-0100",
			rule: model.Rule{Name: "customer_name", BeforeText: "Customer Name:", ValueType: model.ValueTypeText},
			want: "Acme Widgets Ltd",
		},
		{
			name: "case insensitive by default",
			text: "ORDER ID: INV-998\nnext line",
			rule: model.Rule{Name: "order_id", BeforeText: "Order ID:", ValueType: model.ValueTypeBoth},
			want: "INV-998",
		},
		{
			name: "decimal tail survives punctuation strip",
			text: "Balance: 1,234.56\nmore",
			rule: model.Rule{Name: "balance", BeforeText: "Balance:", ValueType: model.ValueTypeNumber},
			want: "1,234.56",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := mustCompile(t, tt.rule).Extract(tt.text)
			if !att.Found {
				t.Fatal("expected a match")
			}
			if att.Value != tt.want {
				t.Errorf("expected %q, got %q", tt.want, att.Value)
			}
			if att.AfterAnchored {
				t.Error("before-only match must not report after-anchored")
			}
		})
	}
}

func TestExtract_FoldedMultibyteText(t *testing.T) {
	// Runes like Ⱥ grow when lowercased; a folded anchor search must still
	// produce offsets valid in the original text instead of slicing out of
	// range.
	rule := model.Rule{
		Name:       "t_field",
		BeforeText: "T:",
		ValueType:  model.ValueTypeNumber,
	}
	c := mustCompile(t, rule)

	att := c.Extract("ȺȺȺȺȺȺT: 42")
	if !att.Found {
		t.Fatal("expected a match after the multibyte prefix")
	}
	if att.Value != "42" {
		t.Errorf("expected 42, got %q", att.Value)
	}

	// Anchor at the very end of the document: a miss, never a panic.
	if att := c.Extract("ȺȺȺȺȺȺT:"); att.Found {
		t.Errorf("expected a miss for an anchor with no value, got %q", att.Value)
	}
}

func TestExtract_ValueRunAnchoredToStart(t *testing.T) {
	// A text-type value must begin right after the anchor; a text run
	// further along the candidate is some other field's content.
	rule := model.Rule{
		Name:       "customer",
		BeforeText: "Customer:",
		ValueType:  model.ValueTypeText,
	}

	att := mustCompile(t, rule).Extract("Customer: 12345 John")
	if att.Found {
		t.Errorf("expected a miss when the run is detached from the anchor, got %q", att.Value)
	}
}

func TestExtract_CaseSensitive(t *testing.T) {
	text := "order id: 123\nOrder ID: 456"
	rule := model.Rule{
		Name:          "order_id",
		BeforeText:    "Order ID:",
		ValueType:     model.ValueTypeNumber,
		CaseSensitive: true,
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a match")
	}
	if att.Value != "456" {
		t.Errorf("case-sensitive match should skip the lowercase label, got %q", att.Value)
	}
}

func TestExtract_DirectPattern(t *testing.T) {
	text := "Contact us at billing@example.com for questions"
	rule := model.Rule{
		Name:    "email",
		Pattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		// Anchors present but ignored: an explicit pattern wins.
		BeforeText: "nonexistent anchor",
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a match")
	}
	if att.Value != "billing@example.com" {
		t.Errorf("expected billing@example.com, got %q", att.Value)
	}
	if att.Method != model.MatchedViaRegexDirect {
		t.Errorf("expected regex-direct method, got %q", att.Method)
	}
}

func TestExtract_DirectPatternCaptureGroup(t *testing.T) {
	text := "Ref: ABC-7781 issued"
	rule := model.Rule{
		Name:    "ref",
		Pattern: `Ref: ([A-Z]+-\d+)`,
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a match")
	}
	if att.Value != "ABC-7781" {
		t.Errorf("expected capture group value, got %q", att.Value)
	}
}

func TestExtract_WordAnchored(t *testing.T) {
	text := "Summary section\nGrand total: $500.00\nEnd"
	rule := model.Rule{
		Name:           "grand_total",
		TargetSentence: "the grand total for this order",
		ValueType:      model.ValueTypeNumber,
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a word-anchored match")
	}
	if att.Value != "$500.00" {
		t.Errorf("expected $500.00, got %q", att.Value)
	}
}

func TestExtract_NoMatch(t *testing.T) {
	rule := model.Rule{
		Name:       "missing",
		BeforeText: "Never Present:",
		ValueType:  model.ValueTypeText,
	}

	att := mustCompile(t, rule).Extract("completely unrelated text")
	if att.Found {
		t.Errorf("expected a miss, got %q", att.Value)
	}
	if att.Value != "" {
		t.Errorf("missed attempt must carry no value, got %q", att.Value)
	}
}

func TestExtract_MaxLengthBoundary(t *testing.T) {
	text := "Description: " + "alpha beta gamma delta epsilon zeta eta theta" + " tail"
	rule := model.Rule{
		Name:       "description",
		BeforeText: "Description:",
		ValueType:  model.ValueTypeText,
		MaxLength:  20,
	}

	att := mustCompile(t, rule).Extract(text)
	if !att.Found {
		t.Fatal("expected a match")
	}
	if len(att.Value) > 20 {
		t.Errorf("value exceeds max length: %q (%d)", att.Value, len(att.Value))
	}
}
