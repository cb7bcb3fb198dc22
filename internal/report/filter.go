package report

import (
	"sort"

	"lagscope-backend/internal/analysis"
)

// FilterIssues returns the subset of issues matching the given severity.
// An empty severity keeps everything. The input is never mutated.
func FilterIssues(issues []analysis.Issue, severity analysis.Severity) []analysis.Issue {
	out := make([]analysis.Issue, 0, len(issues))
	for _, issue := range issues {
		if severity == "" || issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// SortIssues returns a new slice ordered by severity, high first. Ties keep
// their original relative order.
func SortIssues(issues []analysis.Issue) []analysis.Issue {
	out := make([]analysis.Issue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Weight() > out[j].Severity.Weight()
	})
	return out
}

// FilterRecommendations returns the subset matching the given priority.
// An empty priority keeps everything. The input is never mutated.
func FilterRecommendations(recs []analysis.Recommendation, priority analysis.Severity) []analysis.Recommendation {
	out := make([]analysis.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if priority == "" || rec.Priority == priority {
			out = append(out, rec)
		}
	}
	return out
}

// SortRecommendations returns a new slice ordered by priority, high first.
func SortRecommendations(recs []analysis.Recommendation) []analysis.Recommendation {
	out := make([]analysis.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Weight() > out[j].Priority.Weight()
	})
	return out
}
