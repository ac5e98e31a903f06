package jobs

import (
	"errors"
	"testing"
)

func TestSubmitStartsQueued(t *testing.T) {
	m := NewManager()
	j := m.Submit(AIGEngine, 4, 1, true)
	if j.Status != Queued {
		t.Errorf("new job status = %v, want %v", j.Status, Queued)
	}
	if j.ID == "" {
		t.Error("expected a non-empty job id")
	}
}

func TestLifecycleTransitions(t *testing.T) {
	m := NewManager()
	j := m.Submit(PSDKROEngine, 3, 2, false)

	m.MarkRunning(j.ID)
	if got := m.Get(j.ID).Status; got != Running {
		t.Errorf("status after MarkRunning = %v, want %v", got, Running)
	}

	results := []OutputResult{{CubesBefore: 5, CubesAfter: 3}}
	m.Complete(j.ID, results, 0)
	got := m.Get(j.ID)
	if got.Status != Done {
		t.Errorf("status after Complete = %v, want %v", got.Status, Done)
	}
	if len(got.Results) != 1 || got.Results[0].CubesAfter != 3 {
		t.Errorf("Results = %v, want one entry with CubesAfter=3", got.Results)
	}
}

func TestFailRecordsError(t *testing.T) {
	m := NewManager()
	j := m.Submit(AIGEngine, 40, 1, false)
	m.Fail(j.ID, errors.New("too many inputs"))
	got := m.Get(j.ID)
	if got.Status != Failed {
		t.Errorf("status after Fail = %v, want %v", got.Status, Failed)
	}
	if got.Error != "too many inputs" {
		t.Errorf("Error = %q, want %q", got.Error, "too many inputs")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	m := NewManager()
	if m.Get("nonexistent") != nil {
		t.Error("Get of unknown id should return nil")
	}
}

func TestListReturnsAllJobs(t *testing.T) {
	m := NewManager()
	m.Submit(AIGEngine, 2, 1, false)
	m.Submit(AIGEngine, 2, 1, false)
	if got := len(m.List()); got != 2 {
		t.Errorf("List returned %d jobs, want 2", got)
	}
}
