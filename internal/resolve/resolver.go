// Package resolve walks a rule's fallback chain against a single document
// and produces the final record for the (document, rule) pair.
package resolve

import (
	"github.com/fieldsift/fieldsift/internal/extract"
	"github.com/fieldsift/fieldsift/internal/model"
	"github.com/fieldsift/fieldsift/internal/score"
)

// Resolver evaluates compiled rules against document text
type Resolver struct {
	cfg    model.Config
	scorer *score.Scorer
}

// NewResolver creates a resolver for the given configuration
func NewResolver(cfg model.Config) *Resolver {
	mode := score.ModeExact
	if cfg.Approximate.Enabled {
		mode = score.ModeApproximate
	}
	return &Resolver{cfg: cfg, scorer: score.NewScorer(mode)}
}

// Resolve runs the primary rule, then each alternative in declaration order,
// stopping at the first successful attempt. A rule that fails everywhere
// still yields a record carrying the not-found sentinel and zero confidence.
func (r *Resolver) Resolve(docID, text string, rule *extract.CompiledRule) model.Record {
	att := r.attempt(text, rule)
	matched := 0

	if !att.Found {
		for i, alt := range rule.Alternatives {
			att = r.attempt(text, alt)
			if att.Found {
				matched = i + 1
				break
			}
		}
	}

	rec := model.Record{
		DocumentID:         docID,
		RuleName:           rule.Rule.Name,
		Found:              att.Found,
		Confidence:         r.scorer.Confidence(rule.Rule.Name, att),
		MatchedAlternative: matched,
	}
	if att.Found {
		rec.Value = att.Value
		rec.Method = att.Method
	} else {
		rec.Value = r.cfg.Settings.NotFoundValue
		rec.MatchedAlternative = 0
	}
	return rec
}

// attempt tries one compiled rule-or-alternative. A declared target sentence
// narrows the search to its window first, so an anchor recurring elsewhere in
// the document cannot shadow the value near the sentence; the whole-document
// pass is the fallback when the window yields nothing.
func (r *Resolver) attempt(text string, c *extract.CompiledRule) model.Attempt {
	if c.Rule.TargetSentence != "" {
		if att := c.ExtractInWindow(text); att.Found {
			return att
		}
	}
	if r.cfg.Approximate.Enabled {
		return c.ExtractApprox(text, r.cfg.Approximate.Threshold)
	}
	return c.Extract(text)
}
