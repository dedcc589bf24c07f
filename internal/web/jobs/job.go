package jobs

import (
	"time"

	"github.com/codegate-sec/codegate/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job represents an async analysis job. The submitted code is kept out
// of JSON responses.
type Job struct {
	ID          string        `json:"id"`
	FilePath    string        `json:"file_path,omitempty"`
	Code        string        `json:"-"`
	Status      JobStatus     `json:"status"`
	Report      *types.Report `json:"report,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   time.Time     `json:"started_at,omitempty"`
	CompletedAt time.Time     `json:"completed_at,omitempty"`
}

// FindingCount returns the number of findings in the finished report.
func (j *Job) FindingCount() int {
	if j.Report == nil {
		return 0
	}
	return len(j.Report.Findings)
}

// RiskScore returns the report's risk score, or -1 while unfinished.
func (j *Job) RiskScore() int {
	if j.Report == nil {
		return -1
	}
	return j.Report.RiskScore
}
