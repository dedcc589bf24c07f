package risk

import (
	"strings"
	"testing"

	"github.com/codegate-sec/codegate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityScore_Empty(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.SecurityScore(nil, 100))
}

func TestSecurityScore_WeightsAndDensity(t *testing.T) {
	e := New()

	// weight 7 + (1/100)*100 = 8
	findings := []types.ExternalFinding{{Severity: "high"}}
	assert.Equal(t, 8, e.SecurityScore(findings, 100))
}

func TestSecurityScore_ZeroLinesSkipsDensity(t *testing.T) {
	e := New()
	findings := []types.ExternalFinding{{Severity: "critical"}}
	assert.Equal(t, 12, e.SecurityScore(findings, 0))
}

func TestSecurityScore_UnknownSeverityDefaultsToLow(t *testing.T) {
	e := New()
	findings := []types.ExternalFinding{{Severity: "bogus"}}

	// weight 1 + (1/100)*100 = 2
	assert.Equal(t, 2, e.SecurityScore(findings, 100))
}

func TestSecurityScore_ClampedAt100(t *testing.T) {
	e := New()
	var findings []types.ExternalFinding
	for i := 0; i < 50; i++ {
		findings = append(findings, types.ExternalFinding{Severity: "critical"})
	}
	assert.Equal(t, 100, e.SecurityScore(findings, 10))
}

func TestStaticScore_TruncatesFraction(t *testing.T) {
	e := New()

	// logic/high weight 5 + (1/100)*50 = 5.5, truncated to 5.
	issues := []types.Issue{{Kind: types.KindLogic, Severity: types.SeverityHigh}}
	assert.Equal(t, 5, e.StaticScore(issues, 100))
}

func TestStaticScore_PerKindWeights(t *testing.T) {
	e := New()

	logic := []types.Issue{{Kind: types.KindLogic, Severity: types.SeverityCritical}}
	relevance := []types.Issue{{Kind: types.KindRelevance, Severity: types.SeverityCritical}}

	assert.Greater(t, e.StaticScore(logic, 0), e.StaticScore(relevance, 0))
}

func TestStaticScore_UnknownKindFallsBackToLogicTable(t *testing.T) {
	e := New()
	issues := []types.Issue{{Kind: types.IssueKind("mystery"), Severity: types.SeverityHigh}}
	assert.Equal(t, 5, e.StaticScore(issues, 0))
}

func TestRiskScore_WorkedExample(t *testing.T) {
	e := New()
	findings := []types.ExternalFinding{{Severity: "high"}}
	issues := []types.Issue{{Kind: types.KindLogic, Severity: types.SeverityHigh}}

	// security = 8, static = 5, round(0.8*8 + 0.2*5) = round(7.4) = 7
	assert.Equal(t, 7, e.RiskScore(findings, issues, 100))
}

func TestRiskScore_Boundaries(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.RiskScore(nil, nil, 100))

	var findings []types.ExternalFinding
	for i := 0; i < 20; i++ {
		findings = append(findings, types.ExternalFinding{Severity: "critical"})
	}
	var issues []types.Issue
	for i := 0; i < 30; i++ {
		issues = append(issues, types.Issue{Kind: types.KindLogic, Severity: types.SeverityCritical})
	}

	// Both sub-scores saturate at 100, so the combined score is exactly 100.
	assert.Equal(t, 100, e.RiskScore(findings, issues, 10))
}

func TestBuildReport_EmptyInputs(t *testing.T) {
	e := New()
	report := e.BuildReport(nil, nil, Meta{TotalLines: 10, Language: "python"})

	assert.Equal(t, 0, report.RiskScore)
	assert.Empty(t, report.Findings)
	assert.Equal(t, "No security analysis summary provided.", report.Summary)
	require.NotNil(t, report.StaticSummary)
	assert.Equal(t, 0, report.StaticSummary.TotalIssues)
}

func TestBuildReport_MergesAndTagsFindings(t *testing.T) {
	e := New()
	metricValue := 11.0
	findings := []types.ExternalFinding{{
		Type:     "sql_injection",
		Severity: "HIGH",
		Line:     12,
		CWEID:    "CWE-89",
	}}
	issues := []types.Issue{{
		Kind:     types.KindComplexity,
		Category: "high_cyclomatic_complexity",
		Severity: types.SeverityLow,
		Line:     3,
		Metric:   &metricValue,
	}}

	report := e.BuildReport(findings, issues, Meta{TotalLines: 100, Summary: "One injection found."})
	require.Len(t, report.Findings, 2)

	security := report.Findings[0]
	assert.Equal(t, types.OriginSecurityScanner, security.Origin)
	assert.Equal(t, types.KindSecurity, security.IssueKind)
	assert.Equal(t, types.SeverityHigh, security.Severity)
	assert.Equal(t, "CWE-89", security.CWEID)

	static := report.Findings[1]
	assert.Equal(t, types.OriginStructuralAnalyzer, static.Origin)
	assert.Equal(t, types.KindComplexity, static.IssueKind)
	assert.Equal(t, "high_cyclomatic_complexity", static.Type)
	require.NotNil(t, static.Metric)
	assert.Equal(t, 11.0, *static.Metric)

	assert.True(t, strings.HasPrefix(report.Summary, "One injection found."))
	assert.Contains(t, report.Summary, "Static analysis found 1 additional issues")
	assert.Contains(t, report.Summary, "1 complexity")
}

func TestBuildReport_StaticSummaryCounts(t *testing.T) {
	e := New()
	issues := []types.Issue{
		{Kind: types.KindLogic, Severity: types.SeverityHigh},
		{Kind: types.KindLogic, Severity: types.SeverityMedium},
		{Kind: types.KindPerformance, Severity: types.SeverityLow},
	}

	report := e.BuildReport(nil, issues, Meta{TotalLines: 100})
	summary := report.StaticSummary
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.TotalIssues)
	assert.Equal(t, 2, summary.ByKind["logic"])
	assert.Equal(t, 1, summary.ByKind["performance"])
	assert.Equal(t, 1, summary.BySeverity["high"])
	assert.Equal(t, "2 logic, 1 performance issues", summary.Synopsis)
}
