// Package jobs tracks synthesis jobs submitted to the engine: a
// circuit comes in, the collapse/minimize pipeline runs on it, and
// the per-output cube counts (and any error) are recorded against the
// job's id. Manager's CRUD shape and status lifecycle follow the
// teacher's case-manager pattern: a sync.RWMutex-guarded id-keyed map
// with small, independently-lockable accessor methods.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is where a Job sits in its lifecycle.
type Status string

const (
	Queued  Status = "queued"
	Running Status = "running"
	Done    Status = "done"
	Failed  Status = "failed"
)

// Engine names which pipeline produced a job's result.
type Engine string

const (
	AIGEngine    Engine = "aig"
	PSDKROEngine Engine = "psdkro"
)

// OutputResult is one primary output's collapse/extraction result.
type OutputResult struct {
	CubesBefore int `json:"cubesBefore"`
	CubesAfter  int `json:"cubesAfter"` // after EXORCISM, if requested
}

// Job is one submitted synthesis run.
type Job struct {
	ID          string         `json:"id"`
	Engine      Engine         `json:"engine"`
	NInputs     int            `json:"nInputs"`
	NOutputs    int            `json:"nOutputs"`
	Exorcism    bool           `json:"exorcism"`
	Status      Status         `json:"status"`
	Results     []OutputResult `json:"results,omitempty"`
	Error       string         `json:"error,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Duration    time.Duration  `json:"duration"`
}

// Manager handles CRUD for submitted jobs.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewManager creates an empty job manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// Submit registers a new job in the queued state and returns it.
func (m *Manager) Submit(engine Engine, nInputs, nOutputs int, exorcism bool) *Job {
	now := time.Now()
	job := &Job{
		ID:          uuid.New().String(),
		Engine:      engine,
		NInputs:     nInputs,
		NOutputs:    nOutputs,
		Exorcism:    exorcism,
		Status:      Queued,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job
}

// Get retrieves a job by id, or nil if none exists.
func (m *Manager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// List returns every tracked job.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		list = append(list, j)
	}
	return list
}

// MarkRunning transitions a queued job to running.
func (m *Manager) MarkRunning(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Status = Running
		j.UpdatedAt = time.Now()
	}
}

// Complete records a job's final results and marks it done.
func (m *Manager) Complete(id string, results []OutputResult, dur time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return
	}
	j.Status = Done
	j.Results = results
	j.Duration = dur
	j.UpdatedAt = time.Now()
}

// Fail records a job's failure reason and marks it failed.
func (m *Manager) Fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return
	}
	j.Status = Failed
	j.Error = err.Error()
	j.UpdatedAt = time.Now()
}
