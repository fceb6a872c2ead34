// Package export writes batch results to CSV, JSON, and XLSX and computes
// the run summary.
package export

import (
	"sort"

	"github.com/fieldsift/fieldsift/internal/model"
)

// RuleStats aggregates outcomes for a single rule across the batch
type RuleStats struct {
	RuleName       string  `json:"rule_name"`
	Attempts       int     `json:"attempts"`
	Found          int     `json:"found"`
	ViaAlternative int     `json:"via_alternative"`
	AvgConfidence  float64 `json:"avg_confidence"`
}

// Summary aggregates a whole batch run
type Summary struct {
	TotalRecords int         `json:"total_records"`
	Found        int         `json:"found"`
	NotFound     int         `json:"not_found"`
	SuccessRate  float64     `json:"success_rate"`
	Documents    int         `json:"documents"`
	Rules        int         `json:"rules"`
	PerRule      []RuleStats `json:"per_rule"`
}

// Summarize computes batch statistics from the record list
func Summarize(records []model.Record) Summary {
	s := Summary{TotalRecords: len(records)}

	docs := make(map[string]bool)
	perRule := make(map[string]*RuleStats)
	confSums := make(map[string]float64)
	var ruleOrder []string

	for _, r := range records {
		docs[r.DocumentID] = true

		stats, ok := perRule[r.RuleName]
		if !ok {
			stats = &RuleStats{RuleName: r.RuleName}
			perRule[r.RuleName] = stats
			ruleOrder = append(ruleOrder, r.RuleName)
		}
		stats.Attempts++
		confSums[r.RuleName] += r.Confidence

		if r.Found {
			s.Found++
			stats.Found++
			if r.MatchedAlternative > 0 {
				stats.ViaAlternative++
			}
		} else {
			s.NotFound++
		}
	}

	s.Documents = len(docs)
	s.Rules = len(perRule)
	if s.TotalRecords > 0 {
		s.SuccessRate = float64(s.Found) / float64(s.TotalRecords) * 100
	}

	sort.Strings(ruleOrder)
	for _, name := range ruleOrder {
		stats := perRule[name]
		if stats.Attempts > 0 {
			stats.AvgConfidence = confSums[name] / float64(stats.Attempts)
		}
		s.PerRule = append(s.PerRule, *stats)
	}
	return s
}
