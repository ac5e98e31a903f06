// Package benchwatch tracks a named set of benchmark circuits and
// their last-known-good per-output cube counts, and raises an alert
// when a rerun regresses beyond tolerance. It is the synthesis-tool
// analogue of the teacher's address watchlist and alert manager: the
// watched entities are benchmark names instead of addresses, and a
// "hit" is a cube-count regression instead of a tainted-address
// match. There is no webhook delivery here (no SOC/Slack/Discord
// analogue in this domain) — alerts are recorded in memory and handed
// to a broadcast callback, typically internal/api's websocket Hub.
package benchwatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Baseline is the last-known-good result recorded for a benchmark
// circuit: one cube count per primary output.
type Baseline struct {
	Name       string    `json:"name"`
	CubeCounts []int     `json:"cubeCounts"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Regression describes a benchmark rerun whose cube count exceeded
// its baseline beyond tolerance, for one output index.
type Regression struct {
	Name         string  `json:"name"`
	OutputIndex  int     `json:"outputIndex"`
	BaselineSize int     `json:"baselineSize"`
	CurrentSize  int     `json:"currentSize"`
	DeltaPct     float64 `json:"deltaPct"`
}

// Alert is a structured regression notification, broadcast to
// whatever callback the watchlist was constructed with.
type Alert struct {
	ID          string       `json:"id"`
	Timestamp   time.Time    `json:"timestamp"`
	Severity    string       `json:"severity"` // "info" or "regression"
	Title       string       `json:"title"`
	Regressions []Regression `json:"regressions"`
}

// Watchlist is a concurrent-safe benchmark regression tracker.
type Watchlist struct {
	mu         sync.RWMutex
	baselines  map[string]Baseline
	history    []Alert
	maxHistory int
	broadcast  func(Alert)
}

// New creates an empty watchlist. broadcastFn is called (if non-nil)
// every time CheckRun records a regression.
func New(broadcastFn func(Alert)) *Watchlist {
	return &Watchlist{
		baselines:  make(map[string]Baseline),
		maxHistory: 1000,
		broadcast:  broadcastFn,
	}
}

// SetBaseline records name's current cube counts as its new baseline.
func (w *Watchlist) SetBaseline(name string, cubeCounts []int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.baselines[name] = Baseline{
		Name:       name,
		CubeCounts: append([]int{}, cubeCounts...),
		RecordedAt: time.Now(),
	}
}

// Baseline returns the recorded baseline for name, if any.
func (w *Watchlist) Baseline(name string) (Baseline, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.baselines[name]
	return b, ok
}

// CheckRun compares cubeCounts against name's recorded baseline (if
// any) per output, flagging any output whose count grew by more than
// tolerance (a fraction, e.g. 0.10 for 10%). If any output regresses,
// an Alert is recorded and broadcast. A benchmark with no prior
// baseline always passes (and CheckRun does not set one — callers
// that want to start tracking a new benchmark must call SetBaseline
// explicitly).
func (w *Watchlist) CheckRun(name string, cubeCounts []int, tolerance float64) []Regression {
	w.mu.RLock()
	base, ok := w.baselines[name]
	w.mu.RUnlock()
	if !ok {
		return nil
	}

	var regressions []Regression
	for i, count := range cubeCounts {
		if i >= len(base.CubeCounts) {
			break
		}
		baseline := base.CubeCounts[i]
		if baseline == 0 {
			continue
		}
		delta := float64(count-baseline) / float64(baseline)
		if delta > tolerance {
			regressions = append(regressions, Regression{
				Name:         name,
				OutputIndex:  i,
				BaselineSize: baseline,
				CurrentSize:  count,
				DeltaPct:     delta * 100,
			})
		}
	}

	if len(regressions) > 0 {
		w.emit(name, regressions)
	}
	return regressions
}

func (w *Watchlist) emit(name string, regressions []Regression) {
	alert := Alert{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		Severity:    "regression",
		Title:       fmt.Sprintf("%s: cube count regressed on %d output(s)", name, len(regressions)),
		Regressions: regressions,
	}

	w.mu.Lock()
	w.history = append(w.history, alert)
	if len(w.history) > w.maxHistory {
		w.history = w.history[len(w.history)-w.maxHistory:]
	}
	w.mu.Unlock()

	if w.broadcast != nil {
		w.broadcast(alert)
	}
}

// RecentAlerts returns up to limit of the most recently emitted
// alerts, most recent first.
func (w *Watchlist) RecentAlerts(limit int) []Alert {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if limit <= 0 || limit > len(w.history) {
		limit = len(w.history)
	}
	out := make([]Alert, limit)
	for i := 0; i < limit; i++ {
		out[i] = w.history[len(w.history)-1-i]
	}
	return out
}
