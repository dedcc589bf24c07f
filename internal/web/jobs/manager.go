package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codegate-sec/codegate/internal/scan"
)

// newUUID generates job IDs. Extracted as a variable for testing.
var newUUID = uuid.NewString

// Manager manages analysis job lifecycle: create, execute, track,
// store results in memory.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	service *scan.Service
}

// NewManager creates a job manager backed by the given scan service.
func NewManager(service *scan.Service) *Manager {
	return &Manager{
		jobs:    make(map[string]*Job),
		service: service,
	}
}

// Create creates a new pending analysis job.
func (m *Manager) Create(code, filePath string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:        newUUID(),
		FilePath:  filePath,
		Code:      code,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	m.jobs[job.ID] = job
	return job
}

// Start launches the analysis job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	m.mu.Unlock()

	go m.execute(job)
	return nil
}

func (m *Manager) execute(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = time.Now()
			m.mu.Unlock()
		}
	}()

	report, err := m.service.Scan(context.Background(), job.Code, job.FilePath)

	m.mu.Lock()
	defer m.mu.Unlock()
	job.CompletedAt = time.Now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		return
	}
	job.Report = report
	job.Status = StatusCompleted
}

// Get returns a snapshot of a job by ID. Callers receive a copy so the
// job can be read or serialized without holding the manager lock while
// the background goroutine updates the stored entry.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %q not found", jobID)
	}
	snapshot := *job
	return &snapshot, nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		snapshot := *j
		result = append(result, &snapshot)
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}
