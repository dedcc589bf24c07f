package types

import "time"

// Finding origins.
const (
	OriginSecurityScanner    = "security-scanner"
	OriginStructuralAnalyzer = "structural-analyzer"
)

// Finding is the unified diagnostic record in a Report. It carries both
// externally supplied vulnerabilities and structural issues, tagged with
// the subsystem that produced them.
type Finding struct {
	Type        string    `json:"type"`
	Severity    Severity  `json:"severity"`
	Line        int       `json:"line_number"`
	Snippet     string    `json:"code_snippet"`
	Description string    `json:"description"`
	Impact      string    `json:"impact"`
	Remediation string    `json:"remediation"`
	CWEID       string    `json:"cwe_id,omitempty"`
	Origin      string    `json:"origin"`
	IssueKind   IssueKind `json:"issue_kind"`
	Category    string    `json:"category,omitempty"`
	Metric      *float64  `json:"metric_value,omitempty"`
}

// StaticSummary aggregates structural issue counts by kind and severity.
type StaticSummary struct {
	TotalIssues int            `json:"total_issues"`
	ByKind      map[string]int `json:"by_kind,omitempty"`
	BySeverity  map[string]int `json:"by_severity,omitempty"`
	Synopsis    string         `json:"synopsis"`
}

// DependencyAnalysis carries the external reviewer's notes on imports.
type DependencyAnalysis struct {
	DetectedImports []string `json:"detected_imports,omitempty"`
	SecurityNotes   []string `json:"security_notes,omitempty"`
}

// Report is the aggregate result of one scan over one source unit.
// All fields are plain strings, integers, or small closed enumerations so
// the report round-trips losslessly through JSON.
type Report struct {
	ScanID        string              `json:"scan_id,omitempty"`
	Language      string              `json:"language"`
	Timestamp     time.Time           `json:"analysis_timestamp"`
	FilePath      string              `json:"file_path,omitempty"`
	RiskScore     int                 `json:"risk_score"`
	Summary       string              `json:"summary"`
	Findings      []Finding           `json:"findings"`
	Dependencies  *DependencyAnalysis `json:"dependencies_analysis,omitempty"`
	TotalLines    int                 `json:"total_lines"`
	ScanDuration  float64             `json:"scan_duration"`
	StaticSummary *StaticSummary      `json:"static_analysis_summary,omitempty"`
}

// FindingsByKind groups the report's findings by issue kind, preserving
// their relative order within each group.
func (r *Report) FindingsByKind() map[IssueKind][]Finding {
	grouped := make(map[IssueKind][]Finding)
	for _, f := range r.Findings {
		grouped[f.IssueKind] = append(grouped[f.IssueKind], f)
	}
	return grouped
}

// CountByKind returns the number of findings per issue kind.
func (r *Report) CountByKind() map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, f := range r.Findings {
		counts[f.IssueKind]++
	}
	return counts
}
