package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/codegate-sec/codegate/pkg/types"
)

// MarkdownFormatter renders the report as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, report *types.Report) error {
	target := report.FilePath
	if target == "" {
		target = "pasted code"
	}

	fmt.Fprintf(w, "# Security Report — %s\n\n", escapeMarkdown(target))
	fmt.Fprintf(w, "**Risk Score:** %d/100  \n", report.RiskScore)
	fmt.Fprintf(w, "**Lines:** %d · **Duration:** %.1fs\n\n", report.TotalLines, report.ScanDuration)

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "_No issues found._")
		fmt.Fprintf(w, "\n%s\n", escapeMarkdown(report.Summary))
		return nil
	}

	grouped := report.FindingsByKind()
	for _, kind := range types.IssueKinds() {
		findings := grouped[kind]
		if len(findings) == 0 {
			continue
		}

		sort.SliceStable(findings, func(i, j int) bool {
			if findings[i].Line != findings[j].Line {
				return findings[i].Line < findings[j].Line
			}
			return types.SeverityRank(findings[i].Severity) < types.SeverityRank(findings[j].Severity)
		})

		fmt.Fprintf(w, "## %s issues\n\n", titleKind(kind))
		fmt.Fprintln(w, "| Severity | Line | Type | Description |")
		fmt.Fprintln(w, "|----------|------|------|-------------|")

		for _, finding := range findings {
			desc := finding.Description
			if finding.Metric != nil {
				desc = fmt.Sprintf("%s (value: %.0f)", desc, *finding.Metric)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
				severityBadge(finding.Severity),
				lineLabel(finding.Line),
				escapeMarkdown(finding.Type),
				escapeMarkdown(desc),
			)
		}
		fmt.Fprintln(w)
	}

	counts := map[types.Severity]int{}
	for _, finding := range report.Findings {
		counts[finding.Severity]++
	}
	fmt.Fprintf(w, "**Summary:** %s\n\n", formatSummary(counts))
	fmt.Fprintf(w, "%s\n", escapeMarkdown(report.Summary))

	return nil
}

// severityBadge returns a bold, uppercased severity label for Markdown.
func severityBadge(s types.Severity) string {
	return fmt.Sprintf("**%s**", strings.ToUpper(string(s)))
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
