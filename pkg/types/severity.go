package types

import "strings"

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// ParseSeverity normalizes a severity string from an external source.
// Unknown or empty values default to low rather than failing, so a
// partially-shaped finding never rejects the whole batch.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// IssueKind classifies a finding by the concern it belongs to.
type IssueKind string

const (
	KindSecurity    IssueKind = "security"
	KindLogic       IssueKind = "logic"
	KindPerformance IssueKind = "performance"
	KindRelevance   IssueKind = "relevance"
	KindComplexity  IssueKind = "complexity"
)

// IssueKinds returns all kinds in display order (security first).
func IssueKinds() []IssueKind {
	return []IssueKind{KindSecurity, KindLogic, KindPerformance, KindRelevance, KindComplexity}
}

// StaticKinds returns the kinds produced by the structural analyzer.
func StaticKinds() []IssueKind {
	return []IssueKind{KindLogic, KindPerformance, KindRelevance, KindComplexity}
}
