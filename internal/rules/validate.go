package rules

import (
	"fmt"

	"github.com/fieldsift/fieldsift/internal/model"
)

// Problem describes a single validation finding
type Problem struct {
	RuleName string
	Message  string
	Fatal    bool
}

func (p Problem) String() string {
	return fmt.Sprintf("rule %q: %s", p.RuleName, p.Message)
}

// Report summarizes a validation pass over a rule list
type Report struct {
	Kept     []model.Rule
	Problems []Problem
}

// Fatal reports whether any finding should abort the run
func (r *Report) Fatal() bool {
	for _, p := range r.Problems {
		if p.Fatal {
			return true
		}
	}
	return false
}

// Validate checks every rule and prunes what cannot be evaluated. A rule
// with no name, or with neither anchors nor a target sentence nor a pattern,
// is fatal. An alternative without its own target sentence is dropped from
// the rule with a warning; the rule itself survives.
func Validate(in []model.Rule) *Report {
	rep := &Report{}
	seen := make(map[string]bool, len(in))

	for _, rule := range in {
		if rule.Name == "" {
			rep.Problems = append(rep.Problems, Problem{
				RuleName: "(unnamed)",
				Message:  "missing name",
				Fatal:    true,
			})
			continue
		}
		if seen[rule.Name] {
			rep.Problems = append(rep.Problems, Problem{
				RuleName: rule.Name,
				Message:  "duplicate rule name",
				Fatal:    true,
			})
			continue
		}
		seen[rule.Name] = true

		if rule.BeforeText == "" && rule.TargetSentence == "" && rule.Pattern == "" {
			rep.Problems = append(rep.Problems, Problem{
				RuleName: rule.Name,
				Message:  "needs before_text, target_sentence, or pattern",
				Fatal:    true,
			})
			continue
		}

		kept := rule
		kept.Alternatives = nil
		for i, alt := range rule.Alternatives {
			if alt.TargetSentence == "" {
				rep.Problems = append(rep.Problems, Problem{
					RuleName: rule.Name,
					Message:  fmt.Sprintf("alternative %d has no target sentence; dropped", i+1),
				})
				continue
			}
			kept.Alternatives = append(kept.Alternatives, alt)
		}
		rep.Kept = append(rep.Kept, kept)
	}

	return rep
}
