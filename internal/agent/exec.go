package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// stderrTailLimit caps how much agent stderr is carried in error messages.
const stderrTailLimit = 512

// ExecConfig configures the subprocess agent adapter.
type ExecConfig struct {
	Command string        // agent executable, required
	Args    []string      // static arguments; the risk mode is appended last
	Dir     string        // working directory, empty = inherit
	Timeout time.Duration // per-invocation timeout, <= 0 = none
	Logger  *slog.Logger
}

// ExecAgent runs the external agent as a subprocess. The risk mode is passed
// as the final command-line argument and stdout is the invocation result.
type ExecAgent struct {
	cfg    ExecConfig
	tracer trace.Tracer
}

// Compile-time interface check.
var _ Agent = (*ExecAgent)(nil)

// NewExec creates an ExecAgent from the given configuration.
func NewExec(cfg ExecConfig) (*ExecAgent, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, errors.New("agent: command is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ExecAgent{
		cfg:    cfg,
		tracer: otel.Tracer("stratrun/agent"),
	}, nil
}

// Invoke implements Agent. A non-zero exit status or a timeout is returned as
// an error carrying the tail of the agent's stderr.
func (a *ExecAgent) Invoke(ctx context.Context, mode Mode) (Result, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	ctx, span := a.tracer.Start(ctx, "agent.invoke",
		trace.WithAttributes(attribute.String("agent.mode", string(mode))))
	defer span.End()

	args := append(append([]string(nil), a.cfg.Args...), string(mode))
	cmd := exec.CommandContext(ctx, a.cfg.Command, args...)
	cmd.Dir = a.cfg.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		// A killed process reports the signal, not the deadline; prefer the
		// context error so callers can match context.DeadlineExceeded.
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = ctxErr
		}
		err := fmt.Errorf("agent: running %s: %w", a.cfg.Command, runErr)
		if tail := stderrTail(stderr.Bytes()); tail != "" {
			err = fmt.Errorf("%w (stderr: %s)", err, tail)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "invocation failed")
		a.cfg.Logger.Error("agent: invocation failed",
			"mode", mode,
			"duration", elapsed,
			"error", err,
		)
		return Result{}, err
	}

	a.cfg.Logger.Debug("agent: invocation complete", "mode", mode, "duration", elapsed)
	return Result{
		Mode:     mode,
		Output:   strings.TrimSpace(stdout.String()),
		Duration: elapsed,
	}, nil
}

// stderrTail returns the last stderrTailLimit bytes of b, newlines collapsed.
func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return strings.ReplaceAll(s, "\n", " ")
}
