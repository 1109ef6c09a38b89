// Package app provides the shared entry point for the stratrun binary and
// its system-service wrapper.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/stratrun/stratrun/internal/agent"
	"github.com/stratrun/stratrun/internal/config"
	"github.com/stratrun/stratrun/internal/gateway"
	"github.com/stratrun/stratrun/internal/schedule"
	"github.com/stratrun/stratrun/internal/telemetry"
)

// RunParams configures the main application loop.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, ResolveConfigPath is called automatically.
	ConfigPath string

	// ScheduleArgs are the raw schedule flags from the command line. They
	// are applied on top of the file's schedule section with the lenient
	// parser, so flags win over the file and the file wins over defaults.
	ScheduleArgs []string

	// Version is injected at build time via ldflags.
	Version string
}

// Run loads configuration, starts the scheduler and the optional gateway,
// and blocks until ctx is cancelled or the scheduler stops itself by
// reaching its run cap.
func Run(ctx context.Context, params RunParams) error {
	cfgPath := params.ConfigPath
	if cfgPath == "" {
		resolved, err := ResolveConfigPath()
		if err != nil {
			return err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	shutdownTraces, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Insecure: cfg.Telemetry.Insecure,
	}, params.Version)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTraces(context.Background()) }()

	ag, err := agent.NewExec(agent.ExecConfig{
		Command: cfg.Agent.Command,
		Args:    cfg.Agent.Args,
		Dir:     cfg.Agent.Dir,
		Timeout: cfg.Agent.Timeout.Std(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	schedCfg := schedule.ParseArgsFrom(cfg.Schedule.Schedule(), params.ScheduleArgs).Config
	schedCfg.OnError = func(err error) {
		logger.Error("app: run error", "error", err)
	}
	schedCfg.OnRunComplete = func(r schedule.RunResult) {
		logger.Info("app: strategy outputs",
			"run", r.RunNumber,
			"low", r.LowRisk.Output,
			"high", r.HighRisk.Output,
		)
	}

	sched, err := schedule.New(schedCfg, ag, logger)
	if err != nil {
		return err
	}

	var gw *gateway.Gateway
	if cfg.Gateway.Enabled {
		gw, err = gateway.New(gateway.Config{
			Bind:            cfg.Gateway.Bind,
			BearerToken:     cfg.Gateway.BearerToken,
			ReadTimeout:     cfg.Gateway.ReadTimeout.Std(),
			WriteTimeout:    cfg.Gateway.WriteTimeout.Std(),
			ShutdownTimeout: cfg.Gateway.ShutdownTimeout.Std(),
		}, sched, logger)
		if err != nil {
			return err
		}
		if err := gw.Start(); err != nil {
			return err
		}
	}

	sched.Start(ctx)

	select {
	case <-ctx.Done():
		logger.Info("app: shutdown requested")
	case <-sched.Done():
		logger.Info("app: scheduler finished")
	}

	sched.Stop()
	if gw != nil {
		if err := gw.Stop(context.Background()); err != nil {
			logger.Warn("app: gateway shutdown", "error", err)
		}
	}
	return nil
}

// NewLogger builds the process logger from the log configuration.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
