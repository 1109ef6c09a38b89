package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stratrun.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
schedule:
  interval_minutes: 30
  start_immediately: false
  max_runs: 5
agent:
  command: /usr/local/bin/strategy-agent
  args: ["--portfolio", "main"]
  timeout: 5m
gateway:
  enabled: true
  bind: 127.0.0.1:9090
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sched := cfg.Schedule.Schedule()
	if sched.IntervalMinutes != 30 || sched.MaxRuns != 5 || sched.StartImmediately {
		t.Errorf("schedule = %+v, want 30m interval, 5 runs, no immediate start", sched)
	}
	if cfg.Agent.Command != "/usr/local/bin/strategy-agent" {
		t.Errorf("agent command = %q", cfg.Agent.Command)
	}
	if got := cfg.Agent.Timeout.Std(); got != 5*time.Minute {
		t.Errorf("agent timeout = %v, want 5m", got)
	}
	if !cfg.Gateway.Enabled || cfg.Gateway.Bind != "127.0.0.1:9090" {
		t.Errorf("gateway = %+v", cfg.Gateway)
	}
}

func TestLoad_ScheduleDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "agent:\n  command: run-agent\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sched := cfg.Schedule.Schedule()
	if sched.IntervalMinutes != 60 || !sched.StartImmediately || sched.MaxRuns != -1 {
		t.Errorf("schedule = %+v, want defaults (60m, immediate, unlimited)", sched)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("STRATRUN_TEST_AGENT", "/opt/agent")

	path := writeConfig(t, `
agent:
  command: ${STRATRUN_TEST_AGENT}
  dir: ${STRATRUN_TEST_MISSING:-/tmp}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.Command != "/opt/agent" {
		t.Errorf("command = %q, want env value", cfg.Agent.Command)
	}
	if cfg.Agent.Dir != "/tmp" {
		t.Errorf("dir = %q, want fallback default", cfg.Agent.Dir)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "agent:\n  command: ${STRATRUN_TEST_NOT_SET_ANYWHERE}\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "STRATRUN_TEST_NOT_SET_ANYWHERE") {
		t.Errorf("err = %v, want unresolved variable error", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "agent:\n  command: a\n  timeout: sometimes\n")

	if _, err := Load(path); err == nil {
		t.Error("invalid duration should fail to parse")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should return an error")
	}
}
