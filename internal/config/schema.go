// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for stratrun.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/stratrun/stratrun/internal/schedule"
)

// Config is the top-level configuration structure.
type Config struct {
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Agent     AgentConfig     `yaml:"agent"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// ScheduleConfig mirrors the schedule package configuration in file form.
// Zero values mean "not set" and fall back to the schedule defaults.
type ScheduleConfig struct {
	IntervalMinutes  int   `yaml:"interval_minutes"`
	StartImmediately *bool `yaml:"start_immediately"`
	MaxRuns          int   `yaml:"max_runs"`
}

// Schedule maps the file values onto the schedule defaults. File values only
// override what they explicitly set, so CLI flags layered on top see the
// same base that flag-only invocations get.
func (c ScheduleConfig) Schedule() schedule.Config {
	cfg := schedule.Defaults()
	if c.IntervalMinutes > 0 {
		cfg.IntervalMinutes = c.IntervalMinutes
	}
	if c.StartImmediately != nil {
		cfg.StartImmediately = *c.StartImmediately
	}
	if c.MaxRuns > 0 {
		cfg.MaxRuns = c.MaxRuns
	}
	return cfg
}

// AgentConfig names the external strategy-selection agent.
type AgentConfig struct {
	// Command is the agent executable. Required for start.
	Command string `yaml:"command"`

	// Args are static arguments; the risk mode is appended after them.
	Args []string `yaml:"args,omitempty"`

	// Dir is the agent's working directory. Empty inherits the process dir.
	Dir string `yaml:"dir,omitempty"`

	// Timeout bounds each invocation (e.g. "5m"). Zero means no bound.
	Timeout Duration `yaml:"timeout,omitempty"`
}

// GatewayConfig controls the optional status HTTP server.
type GatewayConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Bind            string   `yaml:"bind"`
	BearerToken     string   `yaml:"bearer_token,omitempty"`
	ReadTimeout     Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    Duration `yaml:"write_timeout,omitempty"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout,omitempty"`
}

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty"` // host:port of an OTLP/HTTP collector
	Insecure bool   `yaml:"insecure,omitempty"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text or json
}

// Duration is a time.Duration that unmarshals from YAML strings like "90s"
// or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	if parsed < 0 {
		return fmt.Errorf("config: duration %q must be >= 0", raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
