package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/codegate-sec/codegate/pkg/types"
)

// TableFormatter renders a report as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, report *types.Report) error {
	target := report.FilePath
	if target == "" {
		target = "pasted code"
	}

	fmt.Fprintf(w, "\nSecurity Report — %s\n", target)
	fmt.Fprintf(w, "Risk Score: %s   Lines: %d   Duration: %.1fs\n",
		colorRiskScore(report.RiskScore), report.TotalLines, report.ScanDuration)
	if report.ScanID != "" {
		fmt.Fprintf(w, "Scan ID: %s\n", report.ScanID)
	}

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "\nNo issues found.")
		fmt.Fprintf(w, "\n%s\n", report.Summary)
		return nil
	}

	grouped := report.FindingsByKind()
	for _, kind := range types.IssueKinds() {
		findings := grouped[kind]
		if len(findings) == 0 {
			continue
		}

		// Stable order: by line, then severity.
		sort.SliceStable(findings, func(i, j int) bool {
			if findings[i].Line != findings[j].Line {
				return findings[i].Line < findings[j].Line
			}
			return types.SeverityRank(findings[i].Severity) < types.SeverityRank(findings[j].Severity)
		})

		fmt.Fprintf(w, "\n%s issues (%d)\n", titleKind(kind), len(findings))

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Severity", "Line", "Type", "Description"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		table.SetColumnSeparator("│")

		for _, finding := range findings {
			desc := finding.Description
			if finding.Metric != nil {
				desc = fmt.Sprintf("%s (value: %.0f)", desc, *finding.Metric)
			}
			table.Append([]string{
				colorSeverity(finding.Severity),
				lineLabel(finding.Line),
				finding.Type,
				desc,
			})
		}
		table.Render()
	}

	counts := map[types.Severity]int{}
	for _, finding := range report.Findings {
		counts[finding.Severity]++
	}
	fmt.Fprintf(w, "\nSummary: %s\n", formatSummary(counts))
	fmt.Fprintf(w, "\n%s\n", report.Summary)

	if report.Dependencies != nil && len(report.Dependencies.SecurityNotes) > 0 {
		fmt.Fprintln(w, "\nDependency notes:")
		for _, note := range report.Dependencies.SecurityNotes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}

	return nil
}

func titleKind(kind types.IssueKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lineLabel(line int) string {
	if line <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", line)
}

// colorRiskScore renders the 0-100 score with escalating urgency.
func colorRiskScore(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case score >= 60:
		return color.RedString(label)
	case score >= 40:
		return color.YellowString(label)
	default:
		return color.GreenString(label)
	}
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	default:
		return strings.ToUpper(string(s))
	}
}

func formatSummary(counts map[types.Severity]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	return fmt.Sprintf("%d findings (%d critical, %d high, %d medium, %d low)",
		total,
		counts[types.SeverityCritical],
		counts[types.SeverityHigh],
		counts[types.SeverityMedium],
		counts[types.SeverityLow],
	)
}
