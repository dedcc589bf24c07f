// Package risk merges externally supplied vulnerability findings with the
// structural analyzer's issues into a single scored report.
package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/codegate-sec/codegate/pkg/types"
)

// Config holds the scoring constants. Weight tables are passed explicitly
// so nothing in the engine depends on process-wide state.
type Config struct {
	// SeverityWeights scores external findings.
	SeverityWeights map[types.Severity]float64

	// StaticWeights scores structural issues per (kind, severity). Kinds
	// missing from the table fall back to the logic weights.
	StaticWeights map[types.IssueKind]map[types.Severity]float64

	// Density term scales: finding count per source line, times the scale.
	SecurityDensityScale float64
	StaticDensityScale   float64

	// Share of each sub-score in the combined score. External findings are
	// treated as higher-confidence signal than heuristic structural ones.
	SecurityShare float64
	StaticShare   float64
}

// DefaultConfig returns the documented scoring constants.
func DefaultConfig() Config {
	return Config{
		SeverityWeights: map[types.Severity]float64{
			types.SeverityLow:      1,
			types.SeverityMedium:   3,
			types.SeverityHigh:     7,
			types.SeverityCritical: 12,
		},
		StaticWeights: map[types.IssueKind]map[types.Severity]float64{
			types.KindLogic: {
				types.SeverityCritical: 8, types.SeverityHigh: 5,
				types.SeverityMedium: 3, types.SeverityLow: 1,
			},
			types.KindPerformance: {
				types.SeverityCritical: 6, types.SeverityHigh: 4,
				types.SeverityMedium: 2, types.SeverityLow: 1,
			},
			types.KindRelevance: {
				types.SeverityCritical: 4, types.SeverityHigh: 2,
				types.SeverityMedium: 1, types.SeverityLow: 0.5,
			},
			types.KindComplexity: {
				types.SeverityCritical: 5, types.SeverityHigh: 3,
				types.SeverityMedium: 2, types.SeverityLow: 1,
			},
		},
		SecurityDensityScale: 100,
		StaticDensityScale:   50,
		SecurityShare:        0.8,
		StaticShare:          0.2,
	}
}

// Meta carries the scan context the engine cannot derive from findings.
type Meta struct {
	Language     string
	FilePath     string
	TotalLines   int
	ScanDuration float64
	Summary      string // external reviewer's analysis summary, may be empty
	Dependencies *types.DependencyAnalysis
}

// Engine computes risk scores and assembles reports. It holds only
// configuration: every method is a pure function of its inputs.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given scoring configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// New creates an engine with the default scoring configuration.
func New() *Engine {
	return NewEngine(DefaultConfig())
}

// SecurityScore computes the external-findings sub-score: weighted
// severity sum plus a density term, truncated and clamped to [0, 100].
func (e *Engine) SecurityScore(findings []types.ExternalFinding, totalLines int) int {
	if len(findings) == 0 {
		return 0
	}

	weighted := 0.0
	for _, f := range findings {
		weighted += e.cfg.SeverityWeights[types.ParseSeverity(f.Severity)]
	}

	density := 0.0
	if totalLines > 0 {
		density = float64(len(findings)) / float64(totalLines) * e.cfg.SecurityDensityScale
	}

	return clamp(int(weighted + density))
}

// StaticScore computes the structural-issues sub-score using the per-kind
// weight tables, truncated and clamped to [0, 100].
func (e *Engine) StaticScore(issues []types.Issue, totalLines int) int {
	if len(issues) == 0 {
		return 0
	}

	weighted := 0.0
	for _, issue := range issues {
		table, ok := e.cfg.StaticWeights[issue.Kind]
		if !ok {
			table = e.cfg.StaticWeights[types.KindLogic]
		}
		weight, ok := table[issue.Severity]
		if !ok {
			weight = 1
		}
		weighted += weight
	}

	density := 0.0
	if totalLines > 0 {
		density = float64(len(issues)) / float64(totalLines) * e.cfg.StaticDensityScale
	}

	return clamp(int(weighted + density))
}

// RiskScore combines the two sub-scores into the final 0-100 risk number.
func (e *Engine) RiskScore(findings []types.ExternalFinding, issues []types.Issue, totalLines int) int {
	security := e.SecurityScore(findings, totalLines)
	static := e.StaticScore(issues, totalLines)
	combined := e.cfg.SecurityShare*float64(security) + e.cfg.StaticShare*float64(static)
	return clamp(int(math.Round(combined)))
}

// BuildReport merges both finding sources into one report: external
// findings first, tagged with their origin, then structural issues.
func (e *Engine) BuildReport(findings []types.ExternalFinding, issues []types.Issue, meta Meta) types.Report {
	merged := make([]types.Finding, 0, len(findings)+len(issues))

	for _, f := range findings {
		merged = append(merged, types.Finding{
			Type:        f.Type,
			Severity:    types.ParseSeverity(f.Severity),
			Line:        f.Line,
			Snippet:     f.Snippet,
			Description: f.Description,
			Impact:      f.Impact,
			Remediation: f.Remediation,
			CWEID:       f.CWEID,
			Origin:      types.OriginSecurityScanner,
			IssueKind:   types.KindSecurity,
		})
	}

	for _, issue := range issues {
		category := issue.Category
		if category == "" {
			category = string(issue.Kind)
		}
		merged = append(merged, types.Finding{
			Type:        category,
			Severity:    issue.Severity,
			Line:        issue.Line,
			Snippet:     issue.Snippet,
			Description: issue.Description,
			Impact:      issue.Impact,
			Remediation: issue.Remediation,
			Origin:      types.OriginStructuralAnalyzer,
			IssueKind:   issue.Kind,
			Category:    issue.Category,
			Metric:      issue.Metric,
		})
	}

	staticSummary := summarizeStatic(issues)

	summary := meta.Summary
	if summary == "" {
		summary = "No security analysis summary provided."
	}
	if staticSummary.TotalIssues > 0 {
		summary += fmt.Sprintf(" Static analysis found %d additional issues: %s",
			staticSummary.TotalIssues, staticSummary.Synopsis)
	}

	language := meta.Language
	if language == "" {
		language = "python"
	}

	return types.Report{
		Language:      language,
		Timestamp:     time.Now(),
		FilePath:      meta.FilePath,
		RiskScore:     e.RiskScore(findings, issues, meta.TotalLines),
		Summary:       summary,
		Findings:      merged,
		Dependencies:  meta.Dependencies,
		TotalLines:    meta.TotalLines,
		ScanDuration:  meta.ScanDuration,
		StaticSummary: staticSummary,
	}
}

// summarizeStatic aggregates issue counts by kind and severity and renders
// the short synopsis in a fixed kind order.
func summarizeStatic(issues []types.Issue) *types.StaticSummary {
	if len(issues) == 0 {
		return &types.StaticSummary{Synopsis: "No static analysis issues found."}
	}

	byKind := make(map[string]int)
	bySeverity := make(map[string]int)
	for _, issue := range issues {
		byKind[string(issue.Kind)]++
		bySeverity[string(issue.Severity)]++
	}

	var parts []string
	for _, kind := range types.StaticKinds() {
		if count := byKind[string(kind)]; count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, kind))
		}
	}

	return &types.StaticSummary{
		TotalIssues: len(issues),
		ByKind:      byKind,
		BySeverity:  bySeverity,
		Synopsis:    fmt.Sprintf("%s issues", strings.Join(parts, ", ")),
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
