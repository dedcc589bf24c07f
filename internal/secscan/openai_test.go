package secscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReview_PlainJSON(t *testing.T) {
	raw := `{
		"summary": "One injection found.",
		"vulnerabilities": [{
			"vulnerability_type": "sql_injection",
			"severity": "HIGH",
			"line_number": 12,
			"code_snippet": "cursor.execute(q)",
			"description": "User input reaches the query.",
			"impact": "Database compromise.",
			"remediation": "Use parameterized queries.",
			"cwe_id": "CWE-89"
		}],
		"dependencies_analysis": {
			"detected_imports": ["sqlite3"],
			"security_notes": ["raw SQL construction"]
		}
	}`

	result, err := parseReview(raw)
	require.NoError(t, err)
	assert.Equal(t, "One injection found.", result.Summary)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "sql_injection", result.Findings[0].Type)
	assert.Equal(t, "high", result.Findings[0].Severity)
	assert.Equal(t, 12, result.Findings[0].Line)
	assert.Equal(t, "CWE-89", result.Findings[0].CWEID)
	assert.Equal(t, []string{"sqlite3"}, result.DetectedImports)
}

func TestParseReview_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"summary\": \"ok\", \"vulnerabilities\": []}\n```"
	result, err := parseReview(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Summary)
	assert.Empty(t, result.Findings)
}

func TestParseReview_StringLineNumber(t *testing.T) {
	raw := `{"summary": "x", "vulnerabilities": [{"vulnerability_type": "xss", "severity": "low", "line_number": "7"}]}`
	result, err := parseReview(raw)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, 7, result.Findings[0].Line)
}

func TestParseReview_UnparseableLineDefaultsToZero(t *testing.T) {
	raw := `{"summary": "x", "vulnerabilities": [{"vulnerability_type": "xss", "severity": "low", "line_number": "n/a"}]}`
	result, err := parseReview(raw)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, 0, result.Findings[0].Line)
}

func TestParseReview_RejectsNonJSON(t *testing.T) {
	_, err := parseReview("I could not analyze this code.")
	require.Error(t, err)
}

func TestNewOpenAIScanner_RequiresKey(t *testing.T) {
	_, err := NewOpenAIScanner("", "gpt-4o-mini", "")
	require.Error(t, err)
}

func TestDisabledSourceReturnsEmptyReview(t *testing.T) {
	result, err := Disabled{}.Review(context.Background(), "print('x')")
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.NotEmpty(t, result.Summary)
}
