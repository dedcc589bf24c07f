package types

// Issue is a single structural diagnostic produced by the static analyzer.
// Issues are immutable once created; the analyzer emits each one exactly
// once per run and hands the whole list to the risk engine.
type Issue struct {
	Kind        IssueKind `json:"kind"`
	Category    string    `json:"category"`
	Severity    Severity  `json:"severity"`
	Line        int       `json:"line_number"`
	Snippet     string    `json:"code_snippet"`
	Description string    `json:"description"`
	Impact      string    `json:"impact"`
	Remediation string    `json:"remediation"`
	Metric      *float64  `json:"metric_value,omitempty"`
}

// ExternalFinding is a vulnerability diagnostic supplied by an external
// security reviewer. It is treated as untrusted input: missing fields are
// defaulted during report construction, never rejected.
type ExternalFinding struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Line        int    `json:"line_number"`
	Snippet     string `json:"code_snippet"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Remediation string `json:"remediation"`
	CWEID       string `json:"cwe_id,omitempty"`
}
