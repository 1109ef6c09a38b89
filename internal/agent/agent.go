// Package agent defines the contract with the external strategy-selection
// routine and provides the subprocess adapter used in production. The agent's
// internals are opaque: stratrun only knows how to invoke it for a risk mode
// and how to carry its output around.
package agent

import (
	"context"
	"fmt"
	"time"
)

// Mode selects the strategy-selection profile passed to the agent.
type Mode string

const (
	ModeLow  Mode = "low"
	ModeHigh Mode = "high"
)

// Modes returns the invocation modes of a single run cycle, in execution order.
func Modes() [2]Mode { return [2]Mode{ModeLow, ModeHigh} }

// Result is the outcome of one successful agent invocation. Output is opaque
// to the caller: whatever the agent wrote to stdout, trimmed.
type Result struct {
	Mode     Mode
	Output   string
	Duration time.Duration
}

// Agent invokes the external strategy-selection routine for one risk mode.
type Agent interface {
	Invoke(ctx context.Context, mode Mode) (Result, error)
}

// Func adapts a plain function to Agent.
type Func func(ctx context.Context, mode Mode) (Result, error)

// Invoke implements Agent.
func (f Func) Invoke(ctx context.Context, mode Mode) (Result, error) {
	return f(ctx, mode)
}

// InvokeError tags an invocation failure with the risk mode that produced it,
// so callers can tell a low-risk failure from a high-risk one.
type InvokeError struct {
	Mode Mode
	Err  error
}

// Error implements error.
func (e *InvokeError) Error() string {
	return fmt.Sprintf("agent: %s risk invocation: %v", e.Mode, e.Err)
}

// Unwrap returns the underlying invocation error.
func (e *InvokeError) Unwrap() error { return e.Err }
