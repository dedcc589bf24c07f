package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityCritical), SeverityRank(SeverityHigh))
	assert.Less(t, SeverityRank(SeverityHigh), SeverityRank(SeverityMedium))
	assert.Less(t, SeverityRank(SeverityMedium), SeverityRank(SeverityLow))
}

func TestParseSeverity_Known(t *testing.T) {
	assert.Equal(t, SeverityCritical, ParseSeverity("CRITICAL"))
	assert.Equal(t, SeverityHigh, ParseSeverity(" High "))
	assert.Equal(t, SeverityMedium, ParseSeverity("medium"))
	assert.Equal(t, SeverityLow, ParseSeverity("low"))
}

func TestParseSeverity_DefaultsToLow(t *testing.T) {
	assert.Equal(t, SeverityLow, ParseSeverity(""))
	assert.Equal(t, SeverityLow, ParseSeverity("banana"))
	assert.Equal(t, SeverityLow, ParseSeverity("-3"))
}

func TestReport_FindingsByKind(t *testing.T) {
	r := &Report{
		Findings: []Finding{
			{Type: "sql_injection", IssueKind: KindSecurity, Line: 10},
			{Type: "infinite_loop", IssueKind: KindLogic, Line: 4},
			{Type: "nested_loops", IssueKind: KindPerformance, Line: 7},
			{Type: "unreachable_code", IssueKind: KindLogic, Line: 20},
		},
	}

	grouped := r.FindingsByKind()
	assert.Len(t, grouped[KindLogic], 2)
	assert.Len(t, grouped[KindSecurity], 1)
	assert.Len(t, grouped[KindPerformance], 1)
	assert.Empty(t, grouped[KindComplexity])

	counts := r.CountByKind()
	assert.Equal(t, 2, counts[KindLogic])
}

func TestReport_JSONRoundTrip(t *testing.T) {
	metric := 11.0
	original := Report{
		ScanID:    "20260831-abc",
		Language:  "python",
		Timestamp: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		FilePath:  "app.py",
		RiskScore: 42,
		Summary:   "one issue",
		Findings: []Finding{{
			Type:      "high_cyclomatic_complexity",
			Severity:  SeverityLow,
			Line:      3,
			Origin:    OriginStructuralAnalyzer,
			IssueKind: KindComplexity,
			Metric:    &metric,
		}},
		TotalLines:   120,
		ScanDuration: 1.5,
		StaticSummary: &StaticSummary{
			TotalIssues: 1,
			ByKind:      map[string]int{"complexity": 1},
			BySeverity:  map[string]int{"low": 1},
			Synopsis:    "1 complexity issues",
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
