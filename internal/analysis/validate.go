package analysis

import (
	"encoding/json"
	"fmt"
)

var requiredFields = []string{"overallScore", "status", "issues", "metrics", "recommendations"}

// ValidateResult decodes raw model output and checks it against the analysis
// schema. Malformed JSON, missing top-level fields, or illegal enum values
// reject the result; out-of-range numerics are clamped instead of rejected.
func ValidateResult(raw []byte) (AnalysisResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	for _, field := range requiredFields {
		if _, ok := top[field]; !ok {
			return AnalysisResult{}, fmt.Errorf("%w: missing field %q", ErrSchemaMismatch, field)
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	if !result.Status.Valid() {
		return AnalysisResult{}, fmt.Errorf("%w: unknown status %q", ErrSchemaMismatch, result.Status)
	}
	for _, issue := range result.Issues {
		if !issue.Severity.Valid() {
			return AnalysisResult{}, fmt.Errorf("%w: issue %s has unknown severity %q", ErrSchemaMismatch, issue.ID, issue.Severity)
		}
	}
	for _, rec := range result.Recommendations {
		if !rec.Priority.Valid() {
			return AnalysisResult{}, fmt.Errorf("%w: recommendation %s has unknown priority %q", ErrSchemaMismatch, rec.ID, rec.Priority)
		}
	}

	result.OverallScore = clamp(result.OverallScore, 0, 100)
	for i := range result.Metrics.LagSpikes {
		result.Metrics.LagSpikes[i].Severity = clamp(result.Metrics.LagSpikes[i].Severity, 0, 10)
	}

	return result, nil
}

// CheckShape reports whether stored dashboard data still satisfies the
// result schema. Retrieved records pass through this before they are served.
func CheckShape(raw []byte) error {
	_, err := ValidateResult(raw)
	return err
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
