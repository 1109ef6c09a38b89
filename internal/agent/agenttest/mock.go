// Package agenttest provides test doubles for the agent package.
package agenttest

import (
	"context"
	"sync"

	"github.com/stratrun/stratrun/internal/agent"
)

// Mock is a configurable test double for agent.Agent.
type Mock struct {
	// InvokeFunc, when set, produces the result of each invocation.
	// The default returns a success Result echoing the mode.
	InvokeFunc func(ctx context.Context, mode agent.Mode) (agent.Result, error)

	mu    sync.Mutex
	calls []agent.Mode
}

// Compile-time interface check.
var _ agent.Agent = (*Mock)(nil)

// Invoke implements agent.Agent and records the invocation mode.
func (m *Mock) Invoke(ctx context.Context, mode agent.Mode) (agent.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mode)
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, mode)
	}
	return agent.Result{Mode: mode, Output: "ok"}, nil
}

// Calls returns a copy of the invocation modes seen so far, in order.
func (m *Mock) Calls() []agent.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]agent.Mode(nil), m.calls...)
}

// CallCount returns the number of invocations seen so far.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
