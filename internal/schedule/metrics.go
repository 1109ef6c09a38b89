package schedule

import (
	"sync/atomic"
	"time"
)

// Metrics tracks run-level counters using atomic operations so the gateway
// can read them lock-free while runs are in flight.
type Metrics struct {
	runs          atomic.Int64
	successes     atomic.Int64
	failures      atomic.Int64
	totalDuration atomic.Int64 // nanoseconds
}

// RecordSuccess records a completed run.
func (m *Metrics) RecordSuccess(d time.Duration) {
	m.runs.Add(1)
	m.successes.Add(1)
	m.totalDuration.Add(int64(d))
}

// RecordFailure records a failed run.
func (m *Metrics) RecordFailure(d time.Duration) {
	m.runs.Add(1)
	m.failures.Add(1)
	m.totalDuration.Add(int64(d))
}

// Runs returns the total number of completed or failed runs.
func (m *Metrics) Runs() int64 { return m.runs.Load() }

// Successes returns the number of completed runs.
func (m *Metrics) Successes() int64 { return m.successes.Load() }

// Failures returns the number of failed runs.
func (m *Metrics) Failures() int64 { return m.failures.Load() }

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	runs := m.runs.Load()
	snap := MetricsSnapshot{
		Runs:      runs,
		Successes: m.successes.Load(),
		Failures:  m.failures.Load(),
	}
	if runs > 0 {
		snap.AvgRunDuration = time.Duration(m.totalDuration.Load() / runs)
	}
	return snap
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Runs           int64         `json:"runs"`
	Successes      int64         `json:"successes"`
	Failures       int64         `json:"failures"`
	AvgRunDuration time.Duration `json:"avg_run_duration_ns"`
}
