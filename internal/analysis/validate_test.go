package analysis_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"lagscope-backend/internal/analysis"
)

const sampleResult = `{
	"overallScore": 72,
	"status": "fair",
	"issues": [
		{"id": "i1", "title": "Frame drops during combat", "description": "FPS falls below 30", "severity": "high", "category": "gpu", "impact": "Visible stutter"},
		{"id": "i2", "title": "Memory growth", "description": "Usage climbs steadily", "severity": "medium", "category": "memory", "impact": "Risk of paging"}
	],
	"metrics": {
		"averageFps": 48.5,
		"frameTimeVariance": 12.1,
		"fps": [60, 58, 31, 45],
		"memoryUsage": [41.2, 44.8, 52.1, 55.0],
		"cpuUsage": [62.0, 66.5, 81.3, 77.2],
		"timestamps": ["2024-05-01T10:00:00Z", "2024-05-01T10:00:05Z", "2024-05-01T10:00:10Z", "2024-05-01T10:00:15Z"],
		"lagSpikes": [{"timestamp": "2024-05-01T10:00:10Z", "duration": 180, "severity": 7}]
	},
	"recommendations": [
		{"id": "r1", "title": "Lower shadow quality", "description": "Reduce GPU load", "priority": "high", "category": "graphics", "icon": "gpu", "learnmore": "https://example.com/shadows"}
	]
}`

func TestValidateResultAccepts(t *testing.T) {
	result, err := analysis.ValidateResult([]byte(sampleResult))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.OverallScore != 72 {
		t.Fatalf("expected score 72, got %v", result.OverallScore)
	}
	if result.Status != analysis.StatusFair {
		t.Fatalf("expected status fair, got %s", result.Status)
	}
	if len(result.Issues) != 2 || result.Issues[0].Severity != analysis.SeverityHigh {
		t.Fatalf("unexpected issues: %+v", result.Issues)
	}
	if len(result.Metrics.LagSpikes) != 1 {
		t.Fatalf("expected one lag spike, got %d", len(result.Metrics.LagSpikes))
	}
}

func TestValidateResultMissingFields(t *testing.T) {
	for _, field := range []string{"overallScore", "status", "issues", "metrics", "recommendations"} {
		var top map[string]json.RawMessage
		if err := json.Unmarshal([]byte(sampleResult), &top); err != nil {
			t.Fatalf("decode sample: %v", err)
		}
		delete(top, field)
		raw, err := json.Marshal(top)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		_, err = analysis.ValidateResult(raw)
		if !errors.Is(err, analysis.ErrSchemaMismatch) {
			t.Fatalf("dropping %s: expected schema mismatch, got %v", field, err)
		}
	}
}

func TestValidateResultRejectsBadEnums(t *testing.T) {
	bad := strings.Replace(sampleResult, `"status": "fair"`, `"status": "terrible"`, 1)
	if _, err := analysis.ValidateResult([]byte(bad)); !errors.Is(err, analysis.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch for bad status, got %v", err)
	}

	bad = strings.Replace(sampleResult, `"severity": "high"`, `"severity": "catastrophic"`, 1)
	if _, err := analysis.ValidateResult([]byte(bad)); !errors.Is(err, analysis.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch for bad severity, got %v", err)
	}
}

func TestValidateResultRejectsMalformedJSON(t *testing.T) {
	if _, err := analysis.ValidateResult([]byte("not json at all")); !errors.Is(err, analysis.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestValidateResultClampsRanges(t *testing.T) {
	raw := strings.Replace(sampleResult, `"overallScore": 72`, `"overallScore": 140`, 1)
	raw = strings.Replace(raw, `"severity": 7`, `"severity": 22`, 1)

	result, err := analysis.ValidateResult([]byte(raw))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.OverallScore != 100 {
		t.Fatalf("expected score clamped to 100, got %v", result.OverallScore)
	}
	if result.Metrics.LagSpikes[0].Severity != 10 {
		t.Fatalf("expected spike severity clamped to 10, got %v", result.Metrics.LagSpikes[0].Severity)
	}
}

func TestValidateResultFoldsUnknownIcons(t *testing.T) {
	raw := strings.Replace(sampleResult, `"icon": "gpu"`, `"icon": "sparkles"`, 1)
	result, err := analysis.ValidateResult([]byte(raw))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Recommendations[0].Icon != analysis.IconSettings {
		t.Fatalf("expected unknown icon folded to settings, got %s", result.Recommendations[0].Icon)
	}
}
