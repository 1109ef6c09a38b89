package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var logLevels = map[string]struct{}{
	"": {}, "debug": {}, "info": {}, "warn": {}, "error": {},
}

var logFormats = map[string]struct{}{
	"": {}, "text": {}, "json": {},
}

// Validate checks the structural validity of a Config: the agent command is
// present, explicit schedule values are in range, the gateway bind address
// resolves, and log settings are recognized.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Agent.Command) == "" {
		errs = append(errs, errors.New("config: agent.command is required"))
	}

	if cfg.Schedule.IntervalMinutes < 0 {
		errs = append(errs, fmt.Errorf("config: schedule.interval_minutes must be positive, got %d", cfg.Schedule.IntervalMinutes))
	}
	if cfg.Schedule.MaxRuns < 0 {
		errs = append(errs, fmt.Errorf("config: schedule.max_runs must be positive, got %d", cfg.Schedule.MaxRuns))
	}

	if cfg.Gateway.Enabled && cfg.Gateway.Bind != "" {
		if _, err := net.ResolveTCPAddr("tcp", cfg.Gateway.Bind); err != nil {
			errs = append(errs, fmt.Errorf("config: gateway.bind: invalid address %q", cfg.Gateway.Bind))
		}
	}

	if cfg.Telemetry.Enabled && strings.TrimSpace(cfg.Telemetry.Endpoint) == "" {
		errs = append(errs, errors.New("config: telemetry.endpoint is required when telemetry is enabled"))
	}

	if _, ok := logLevels[cfg.Log.Level]; !ok {
		errs = append(errs, fmt.Errorf("config: log.level: unknown level %q", cfg.Log.Level))
	}
	if _, ok := logFormats[cfg.Log.Format]; !ok {
		errs = append(errs, fmt.Errorf("config: log.format: unknown format %q", cfg.Log.Format))
	}

	return errors.Join(errs...)
}
