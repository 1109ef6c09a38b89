package schedule

import (
	"fmt"
	"time"
)

// Unlimited is the MaxRuns sentinel meaning no cap on run count.
const Unlimited = -1

// DefaultIntervalMinutes is the spacing between runs when none is configured.
const DefaultIntervalMinutes = 60

// Config controls a Scheduler. It is snapshotted at construction; later
// mutations by the caller have no effect on a live scheduler.
type Config struct {
	// IntervalMinutes is the spacing between runs. Must be > 0.
	IntervalMinutes int

	// StartImmediately fires the first run inside Start, before the first tick.
	StartImmediately bool

	// MaxRuns caps the total run count; reaching it stops the scheduler.
	// Unlimited disables the cap.
	MaxRuns int

	// OnRunComplete, when set, is invoked synchronously after each
	// successful run.
	OnRunComplete func(RunResult)

	// OnError, when set, is invoked synchronously after each failed run.
	OnError func(error)
}

// Defaults returns the baseline configuration: hourly runs, immediate first
// run, no run cap.
func Defaults() Config {
	return Config{
		IntervalMinutes:  DefaultIntervalMinutes,
		StartImmediately: true,
		MaxRuns:          Unlimited,
	}
}

// Interval returns the spacing between runs as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c Config) validate() error {
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("schedule: interval must be positive, got %d", c.IntervalMinutes)
	}
	if c.MaxRuns != Unlimited && c.MaxRuns <= 0 {
		return fmt.Errorf("schedule: max runs must be positive or Unlimited, got %d", c.MaxRuns)
	}
	return nil
}
