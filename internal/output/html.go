package output

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/codegate-sec/codegate/pkg/types"
)

// HTMLFormatter renders the report as a self-contained HTML page with
// styled severity badges grouped by issue kind.
type HTMLFormatter struct{}

// kindSection is one rendered group of findings.
type kindSection struct {
	Kind     string
	Findings []types.Finding
}

type htmlData struct {
	Report   *types.Report
	Target   string
	Sections []kindSection
}

func (f *HTMLFormatter) Format(w io.Writer, report *types.Report) error {
	grouped := report.FindingsByKind()

	var sections []kindSection
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
		sections = append(sections, kindSection{Kind: titleKind(kind), Findings: findings})
	}

	target := report.FilePath
	if target == "" {
		target = "pasted code"
	}

	return htmlTpl.Execute(w, htmlData{Report: report, Target: target, Sections: sections})
}

// severityClass maps a Severity to a CSS class name.
func severityClass(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "critical"
	case types.SeverityHigh:
		return "high"
	case types.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// riskClass maps the 0-100 score to a CSS class name.
func riskClass(score int) string {
	switch {
	case score >= 80:
		return "critical"
	case score >= 60:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
	"riskClass":     riskClass,
	"countSeverity": func(findings []types.Finding, sev types.Severity) int {
		n := 0
		for _, f := range findings {
			if f.Severity == sev {
				n++
			}
		}
		return n
	},
	"severityCritical": func() types.Severity { return types.SeverityCritical },
	"severityHigh":     func() types.Severity { return types.SeverityHigh },
	"severityMedium":   func() types.Severity { return types.SeverityMedium },
	"severityLow":      func() types.Severity { return types.SeverityLow },
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>CodeGate Security Report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>CodeGate Security Report</h1>
  <p class="target">{{.Target}}</p>

  <div class="summary-bar">
    <span class="badge {{riskClass .Report.RiskScore}}">Risk {{.Report.RiskScore}}/100</span>
    <span class="badge critical">{{countSeverity .Report.Findings severityCritical}} Critical</span>
    <span class="badge high">{{countSeverity .Report.Findings severityHigh}} High</span>
    <span class="badge medium">{{countSeverity .Report.Findings severityMedium}} Medium</span>
    <span class="badge low">{{countSeverity .Report.Findings severityLow}} Low</span>
    <span class="total">{{len .Report.Findings}} total findings</span>
  </div>

  <p class="summary">{{.Report.Summary}}</p>

  {{if not .Sections}}
    <p class="no-findings">No issues found.</p>
  {{end}}

  {{range .Sections}}
  <section class="kind-section">
    <h2>{{.Kind}} issues</h2>
    <table>
      <thead>
        <tr><th>Severity</th><th>Line</th><th>Type</th><th>Description</th></tr>
      </thead>
      <tbody>
        {{range .Findings}}
        <tr>
          <td><span class="badge {{severityClass .Severity}}">{{.Severity}}</span></td>
          <td>{{if gt .Line 0}}{{.Line}}{{else}}-{{end}}</td>
          <td>{{.Type}}</td>
          <td>
            {{.Description}}
            {{if or .Snippet .Remediation}}
            <details>
              <summary>Details</summary>
              {{if .Snippet}}<p><strong>Code:</strong> <code>{{.Snippet}}</code></p>{{end}}
              {{if .Impact}}<p><strong>Impact:</strong> {{.Impact}}</p>{{end}}
              {{if .Remediation}}<p><strong>Remediation:</strong> {{.Remediation}}</p>{{end}}
            </details>
            {{end}}
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:.25rem;font-size:1.8rem}
.target{color:#555;margin-bottom:1rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1rem}
.summary{margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
details{margin-top:.4rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
code{background:#eee;padding:1px 4px;border-radius:3px;font-size:.85em}
.no-findings{color:#666;font-style:italic}
.kind-section{margin-bottom:2rem}
`
