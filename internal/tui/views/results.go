package views

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/tui/styles"
	"github.com/codegate-sec/codegate/pkg/types"
)

// exportFile is where the results view writes the JSON report.
const exportFile = "codegate-report.json"

// ResultsModel is the view model for displaying a finished report.
type ResultsModel struct {
	report    *types.Report
	cursor    int
	offset    int
	maxRows   int
	exported  bool
	exportErr string
}

// NewResultsModel creates a results view from a scan report.
func NewResultsModel(report *types.Report) ResultsModel {
	return ResultsModel{
		report:  report,
		maxRows: 20,
	}
}

// Init returns nil (no initial command).
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events for scrolling and export.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	findings := m.findings()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(findings)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxRows {
					m.offset = m.cursor - m.maxRows + 1
				}
			}
		case "e":
			m.exportJSON()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the report.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Scan Results"))
	b.WriteString("\n\n")

	if m.report != nil {
		score := m.report.RiskScore
		b.WriteString(fmt.Sprintf("Risk Score: %s\n",
			styles.RiskStyle(score).Render(fmt.Sprintf("%d/100", score))))
		if m.report.Summary != "" {
			b.WriteString(m.report.Summary)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	findings := m.findings()
	if len(findings) == 0 {
		b.WriteString("No issues found.\n")
	} else {
		b.WriteString(m.summaryLine(findings))
		b.WriteString("\n\n")

		header := fmt.Sprintf("  %-10s %-6s %-30s %s", "SEVERITY", "LINE", "TYPE", "KIND")
		b.WriteString(styles.HeaderStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		end := m.offset + m.maxRows
		if end > len(findings) {
			end = len(findings)
		}

		for i := m.offset; i < end; i++ {
			f := findings[i]
			cursor := "  "
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
			}

			sevStyle := styles.SeverityStyle(string(f.Severity))
			severity := sevStyle.Render(fmt.Sprintf("%-10s", f.Severity))
			kind := styles.HelpStyle.Render(string(f.IssueKind))

			b.WriteString(fmt.Sprintf("%s%s %-6s %-30s %s\n",
				cursor, severity, lineLabel(f.Line), truncate(f.Type, 30), kind))
		}

		if len(findings) > m.maxRows {
			b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d findings\n",
				m.offset+1, end, len(findings)))
		}
	}

	if len(findings) > 0 && m.cursor < len(findings) {
		b.WriteString("\n")
		b.WriteString(m.detailView(findings[m.cursor]))
	}

	if m.exported {
		b.WriteString("\n")
		b.WriteString(styles.SelectedStyle.Render("Report exported to " + exportFile))
	}
	if m.exportErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.exportErr))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • e export JSON • esc back • q quit"))

	return b.String()
}

func (m ResultsModel) findings() []types.Finding {
	if m.report == nil {
		return nil
	}
	return m.report.Findings
}

func (m ResultsModel) summaryLine(findings []types.Finding) string {
	counts := map[types.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}

	parts := []string{}
	for _, sev := range []types.Severity{
		types.SeverityCritical, types.SeverityHigh,
		types.SeverityMedium, types.SeverityLow,
	} {
		if c, ok := counts[sev]; ok && c > 0 {
			style := styles.SeverityStyle(string(sev))
			parts = append(parts, style.Render(fmt.Sprintf("%s: %d", sev, c)))
		}
	}

	return fmt.Sprintf("Total: %d findings  [%s]", len(findings), strings.Join(parts, "  "))
}

func (m ResultsModel) detailView(f types.Finding) string {
	var b strings.Builder
	b.WriteString(styles.BorderStyle.Render(
		fmt.Sprintf("Type: %s\nSeverity: %s\nDescription: %s",
			f.Type,
			f.Severity,
			f.Description,
		),
	))

	if f.Snippet != "" {
		b.WriteString(fmt.Sprintf("\n  Snippet: %s", truncate(f.Snippet, 70)))
	}
	if f.Impact != "" {
		b.WriteString(fmt.Sprintf("\n  Impact: %s", f.Impact))
	}
	if f.Remediation != "" {
		b.WriteString(fmt.Sprintf("\n  Remediation: %s", f.Remediation))
	}
	if f.CWEID != "" {
		b.WriteString(fmt.Sprintf("\n  CWE: %s", f.CWEID))
	}

	return b.String()
}

func (m *ResultsModel) exportJSON() {
	data, err := json.MarshalIndent(m.report, "", "  ")
	if err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	if err := os.WriteFile(exportFile, data, 0644); err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	m.exported = true
	m.exportErr = ""
}

func lineLabel(line int) string {
	if line <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", line)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
