package resolve

import (
	"strings"
	"testing"

	"github.com/fieldsift/fieldsift/internal/extract"
	"github.com/fieldsift/fieldsift/internal/model"
)

func newTestResolver(approx bool) *Resolver {
	cfg := *model.DefaultConfig()
	cfg.Approximate.Enabled = approx
	return NewResolver(cfg)
}

func compileRule(t *testing.T, rule model.Rule) *extract.CompiledRule {
	t.Helper()
	c, err := extract.Compile(rule, model.DefaultConfig().Settings)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return c
}

func TestResolve_PrimaryMatch(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:       "order_id",
		BeforeText: "Order ID:",
		ValueType:  model.ValueTypeBoth,
	})

	rec := newTestResolver(false).Resolve("doc1.txt", "Order ID: A-100\nend", rule)
	if !rec.Found {
		t.Fatal("expected a match")
	}
	if rec.Value != "A-100" {
		t.Errorf("expected A-100, got %q", rec.Value)
	}
	if rec.MatchedAlternative != 0 {
		t.Errorf("primary match must report alternative 0, got %d", rec.MatchedAlternative)
	}
	if rec.Confidence != 1.0 {
		t.Errorf("exact mode match must score 1.0, got %v", rec.Confidence)
	}
	if rec.DocumentID != "doc1.txt" || rec.RuleName != "order_id" {
		t.Errorf("record identity wrong: %+v", rec)
	}
}

func TestResolve_FallbackChain(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:       "order_id",
		BeforeText: "Order ID:",
		ValueType:  model.ValueTypeBoth,
		Alternatives: []model.Alternative{
			{BeforeText: "Order No:", TargetSentence: "order reference line"},
			{BeforeText: "Order Number:", TargetSentence: "order summary"},
		},
	})

	// Only the second alternative's anchor and sentence appear in the text.
	text := "Order summary\nOrder Number: 98765\nend"
	rec := newTestResolver(false).Resolve("doc1.txt", text, rule)
	if !rec.Found {
		t.Fatal("expected an alternative match")
	}
	if rec.Value != "98765" {
		t.Errorf("expected 98765, got %q", rec.Value)
	}
	if rec.MatchedAlternative != 2 {
		t.Errorf("expected alternative 2, got %d", rec.MatchedAlternative)
	}
}

func TestResolve_AlternativesStopAtFirstHit(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:       "total",
		BeforeText: "Grand Total:",
		ValueType:  model.ValueTypeNumber,
		Alternatives: []model.Alternative{
			{BeforeText: "Total:", TargetSentence: "order totals"},
			{BeforeText: "Amount:", TargetSentence: "order totals"},
		},
	})

	// Both alternative anchors appear; the first one declared wins.
	rec := newTestResolver(false).Resolve("doc1.txt", "Order totals\nTotal: 10\nAmount: 20\n", rule)
	if rec.Value != "10" {
		t.Errorf("expected first alternative's value 10, got %q", rec.Value)
	}
	if rec.MatchedAlternative != 1 {
		t.Errorf("expected alternative 1, got %d", rec.MatchedAlternative)
	}
}

func TestResolve_WindowBeatsDistantAnchor(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:           "net_total",
		BeforeText:     "Total:",
		ValueType:      model.ValueTypeNumber,
		TargetSentence: "Net amount due before tax",
	})

	// A decoy anchor sits far outside the target sentence's window; the
	// in-window value must win over the earlier whole-document hit.
	filler := strings.Repeat("x", 400)
	text := "Items Total: 111.11\n" + filler + "\nNet amount due before tax\nTotal: 222.22\nEnd"

	rec := newTestResolver(false).Resolve("doc1.txt", text, rule)
	if !rec.Found {
		t.Fatal("expected a windowed match")
	}
	if rec.Value != "222.22" {
		t.Errorf("expected the in-window value 222.22, got %q", rec.Value)
	}
	if rec.Method != model.MatchedViaWindow {
		t.Errorf("expected window method, got %q", rec.Method)
	}
}

func TestResolve_NotFound(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:       "missing_field",
		BeforeText: "Nowhere:",
		ValueType:  model.ValueTypeText,
		Alternatives: []model.Alternative{
			{BeforeText: "Also Nowhere:", TargetSentence: "never present either"},
		},
	})

	rec := newTestResolver(false).Resolve("doc1.txt", "unrelated text", rule)
	if rec.Found {
		t.Fatal("expected a miss")
	}
	if rec.Value != "NOT_FOUND" {
		t.Errorf("expected the not-found sentinel, got %q", rec.Value)
	}
	if rec.Confidence != 0.0 {
		t.Errorf("missed record must score 0.0, got %v", rec.Confidence)
	}
	if rec.MatchedAlternative != 0 {
		t.Errorf("missed record must report alternative 0, got %d", rec.MatchedAlternative)
	}
}

func TestResolve_WindowFallback(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:           "due_date",
		BeforeText:     "Due on",
		ValueType:      model.ValueTypeNumber,
		TargetSentence: "payment schedule",
	})

	// The anchor text never appears, but the target sentence does; the
	// windowed word-anchor pass finds the value near it.
	text := "Intro\npayment schedule: 2024-12-01\nEnd"
	rec := newTestResolver(false).Resolve("doc1.txt", text, rule)
	if !rec.Found {
		t.Fatal("expected a windowed match")
	}
	if rec.Method != model.MatchedViaWindow {
		t.Errorf("expected window method, got %q", rec.Method)
	}
	if rec.Value != "2024-12-01" {
		t.Errorf("expected 2024-12-01, got %q", rec.Value)
	}
}

func TestResolve_ApproximateConfidence(t *testing.T) {
	rule := compileRule(t, model.Rule{
		Name:       "invoice_number",
		BeforeText: "Invoice:",
		ValueType:  model.ValueTypeBoth,
	})

	rec := newTestResolver(true).Resolve("doc1.txt", "Invioce: INV-12345 Date: x", rule)
	if !rec.Found {
		t.Fatal("expected a fuzzy match")
	}
	// Method score 0.8 (fuzzy anchor, no after bound) averaged with the
	// invoice shape score 0.95 for "INV-12345".
	want := (0.8 + 0.95) / 2
	if diff := rec.Confidence - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("expected confidence %.3f, got %.3f", want, rec.Confidence)
	}
}
