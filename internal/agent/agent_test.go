package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestInvokeError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := &InvokeError{Mode: ModeHigh, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("InvokeError should unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "high") {
		t.Errorf("error message %q should name the mode", err.Error())
	}
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var got Mode
	f := Func(func(_ context.Context, mode Mode) (Result, error) {
		got = mode
		return Result{Mode: mode}, nil
	})

	res, err := f.Invoke(context.Background(), ModeLow)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != ModeLow || res.Mode != ModeLow {
		t.Errorf("mode = %q / %q, want low", got, res.Mode)
	}
}

func TestModes_Order(t *testing.T) {
	t.Parallel()

	modes := Modes()
	if modes[0] != ModeLow || modes[1] != ModeHigh {
		t.Errorf("modes = %v, want low before high", modes)
	}
}
