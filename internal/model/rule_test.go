package model

import "testing"

func TestMergeAlternative(t *testing.T) {
	parent := Rule{
		Name:           "total",
		BeforeText:     "Total:",
		AfterText:      "USD",
		ValueType:      ValueTypeNumber,
		CaseSensitive:  true,
		TargetSentence: "grand total line",
		MaxLength:      40,
		Alternatives:   []Alternative{{BeforeText: "x"}},
	}

	t.Run("override takes precedence", func(t *testing.T) {
		merged := MergeAlternative(parent, Alternative{
			BeforeText: "Amount:",
			ValueType:  ValueTypeBoth,
			MaxLength:  10,
		})

		if merged.BeforeText != "Amount:" {
			t.Errorf("expected overridden before_text, got %q", merged.BeforeText)
		}
		if merged.ValueType != ValueTypeBoth {
			t.Errorf("expected overridden value type, got %q", merged.ValueType)
		}
		if merged.MaxLength != 10 {
			t.Errorf("expected overridden max length, got %d", merged.MaxLength)
		}
	})

	t.Run("unset fields inherit", func(t *testing.T) {
		merged := MergeAlternative(parent, Alternative{BeforeText: "Amount:"})

		if merged.Name != "total" {
			t.Errorf("name must inherit, got %q", merged.Name)
		}
		if merged.AfterText != "USD" {
			t.Errorf("after_text must inherit, got %q", merged.AfterText)
		}
		if !merged.CaseSensitive {
			t.Error("case sensitivity must inherit when the alternative leaves it unset")
		}
		if merged.TargetSentence != "grand total line" {
			t.Errorf("target sentence must inherit, got %q", merged.TargetSentence)
		}
	})

	t.Run("explicit case sensitivity override", func(t *testing.T) {
		off := false
		merged := MergeAlternative(parent, Alternative{CaseSensitive: &off})
		if merged.CaseSensitive {
			t.Error("expected case sensitivity turned off by the alternative")
		}
	})

	t.Run("alternatives never nest", func(t *testing.T) {
		merged := MergeAlternative(parent, Alternative{BeforeText: "Amount:"})
		if len(merged.Alternatives) != 0 {
			t.Errorf("merged rule must carry no alternatives, got %d", len(merged.Alternatives))
		}
	})
}
