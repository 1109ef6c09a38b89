// Package schedule runs the external strategy agent on a fixed interval.
// Each run cycle invokes the agent once per risk mode (low, then high),
// tracks run counts, and dispatches the configured callbacks. A failed run
// never stops the scheduler; only Stop or the run cap does.
package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stratrun/stratrun/internal/agent"
)

// RunResult describes one completed run cycle.
type RunResult struct {
	// RunNumber is 1-based and monotonic across the scheduler's lifetime.
	// It is never reset, not even by Stop.
	RunNumber int `json:"run_number"`

	StartedAt time.Time    `json:"started_at"`
	LowRisk   agent.Result `json:"low_risk"`
	HighRisk  agent.Result `json:"high_risk"`
}

// Status is a point-in-time lifecycle snapshot.
type Status struct {
	Running  bool `json:"running"`
	RunCount int  `json:"run_count"`

	// NextRun approximates the next firing as now + interval. It does not
	// account for time already elapsed in the current cycle, so it can be
	// late by up to one full interval. Zero when stopped.
	NextRun time.Time `json:"next_run,omitzero"`
}

// Scheduler owns the lifecycle state, the run counter, and the recurring
// timer. All mutation goes through Start, Stop, and the run cycle; state is
// guarded by a single mutex.
//
// Ticks fire regardless of whether the previous run has finished, so runs
// that outlast the interval overlap. Within one run the two agent
// invocations are strictly sequential.
type Scheduler struct {
	cfg    Config
	agent  agent.Agent
	logger *slog.Logger
	m      *Metrics
	tracer trace.Tracer
	now    func() time.Time

	mu       sync.Mutex
	running  bool
	runCount int
	timer    *cron.Cron    // non-nil iff running
	done     chan struct{} // closed when leaving the running state
}

// New creates a stopped Scheduler. The configuration is validated and
// snapshotted here.
func New(cfg Config, ag agent.Agent, logger *slog.Logger) (*Scheduler, error) {
	if ag == nil {
		return nil, errors.New("schedule: nil agent")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:    cfg,
		agent:  ag,
		logger: logger,
		m:      &Metrics{},
		tracer: otel.Tracer("stratrun/schedule"),
		now:    time.Now,
	}, nil
}

// Start marks the scheduler running, performs the immediate run when
// configured, then arms the recurring timer. It returns once the immediate
// run (if any) has completed; recurring runs proceed asynchronously. ctx is
// the base context for every run this Start initiates; cancelling it aborts
// in-flight agent invocations, Stop does not.
//
// Calling Start while running is a logged no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("schedule: already running, start ignored")
		return
	}
	s.running = true
	s.done = make(chan struct{})
	s.timer = cron.New()
	s.timer.Schedule(cron.Every(s.cfg.Interval()), cron.FuncJob(func() {
		s.runCycle(ctx)
	}))
	s.mu.Unlock()

	s.logger.Info("schedule: started",
		"interval_minutes", s.cfg.IntervalMinutes,
		"max_runs", s.cfg.MaxRuns,
		"immediate", s.cfg.StartImmediately,
	)

	if s.cfg.StartImmediately {
		s.runCycle(ctx)
	}

	s.mu.Lock()
	// The immediate run can race an explicit Stop; only arm the timer if
	// still running so a stopped scheduler never keeps a live timer.
	if s.running {
		s.timer.Start()
	}
	s.mu.Unlock()
}

// Stop cancels future ticks and marks the scheduler stopped. It does not
// wait for an in-flight run; that run finishes (or fails) on its own.
// Safe to call when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
	s.logger.Info("schedule: stopped")
}

// stopLocked cancels the timer and leaves the running state. Callers hold mu.
func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.running = false
}

// Done returns a channel closed when the scheduler leaves the running state,
// whether by Stop or by reaching the run cap. When the scheduler is not
// running the returned channel is already closed.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// Status returns a lifecycle snapshot.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Running: s.running, RunCount: s.runCount}
	if s.running {
		st.NextRun = s.now().Add(s.cfg.Interval())
	}
	return st
}

// Metrics exposes the scheduler's run counters.
func (s *Scheduler) Metrics() *Metrics { return s.m }

// runCycle executes one run: cap guard, counter increment, the two agent
// invocations in mode order, then callback dispatch.
func (s *Scheduler) runCycle(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if s.cfg.MaxRuns != Unlimited && s.runCount >= s.cfg.MaxRuns {
		// Self-terminating transition: stop before the run that would
		// exceed the cap, and skip that run entirely.
		s.stopLocked()
		s.mu.Unlock()
		s.logger.Info("schedule: run cap reached, stopping", "max_runs", s.cfg.MaxRuns)
		return
	}
	s.runCount++
	run := s.runCount
	s.mu.Unlock()

	started := s.now()
	ctx, span := s.tracer.Start(ctx, "schedule.run",
		trace.WithAttributes(attribute.Int("run.number", run)))
	defer span.End()

	s.logger.Info("schedule: run started", "run", run)

	var high agent.Result
	low, err := s.invoke(ctx, agent.ModeLow)
	if err == nil {
		high, err = s.invoke(ctx, agent.ModeHigh)
	}
	elapsed := time.Since(started)

	if err != nil {
		s.m.RecordFailure(elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		s.logger.Error("schedule: run failed", "run", run, "duration", elapsed, "error", err)
		if s.cfg.OnError != nil {
			s.cfg.OnError(err)
		}
		return
	}

	s.m.RecordSuccess(elapsed)
	s.logger.Info("schedule: run complete", "run", run, "duration", elapsed)
	if s.cfg.OnRunComplete != nil {
		s.cfg.OnRunComplete(RunResult{
			RunNumber: run,
			StartedAt: started,
			LowRisk:   low,
			HighRisk:  high,
		})
	}
}

// invoke runs the agent for one mode, tagging any failure with that mode.
func (s *Scheduler) invoke(ctx context.Context, mode agent.Mode) (agent.Result, error) {
	res, err := s.agent.Invoke(ctx, mode)
	if err != nil {
		return agent.Result{}, &agent.InvokeError{Mode: mode, Err: err}
	}
	return res, nil
}
