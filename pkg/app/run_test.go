package app

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stratrun/stratrun/internal/config"
)

func TestResolveConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "stratrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := filepath.Join(dir, "stratrun.yaml")
	if err := os.WriteFile(want, []byte("agent:\n  command: a\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ResolveConfigPath()
	if err != nil {
		t.Fatalf("ResolveConfigPath failed: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestResolveConfigPath_NotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	if _, err := ResolveConfigPath(); err == nil {
		t.Error("expected an error when no config exists")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	logger := NewLogger(config.LogConfig{Level: "debug"})
	if !logger.Enabled(context.Background(), -4) {
		t.Error("debug level should be enabled")
	}

	logger = NewLogger(config.LogConfig{Level: "error"})
	if logger.Enabled(context.Background(), 0) {
		t.Error("info should be disabled at error level")
	}
}

func TestRun_ShutdownOnCancel(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := filepath.Join(t.TempDir(), "stratrun.yaml")
	cfgYAML := `
schedule:
  interval_minutes: 60
agent:
  command: sh
  args: ["-c", "echo picked"]
log:
  level: error
`
	if err := os.WriteFile(path, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, RunParams{ConfigPath: path, Version: "test"})
	}()

	// Give the immediate run time to complete, then request shutdown.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stratrun.yaml")
	if err := os.WriteFile(path, []byte("agent:\n  command: \"\"\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if err := Run(context.Background(), RunParams{ConfigPath: path}); err == nil {
		t.Error("expected validation error for empty agent command")
	}
}
