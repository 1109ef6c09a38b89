// Package main is the entry point for the stratrun CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stratrun/stratrun/internal/config"
	"github.com/stratrun/stratrun/internal/schedule"
	"github.com/stratrun/stratrun/pkg/app"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stratrun",
		Short:         "Periodic runner for an external strategy-selection agent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(startCmd(), versionCmd(), configCmd(), initCmd(), serviceCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("stratrun %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// startCmd runs the scheduler in the foreground. Flag parsing is disabled so
// the schedule arguments get their lenient semantics: value flags always
// consume the next token, malformed values fall back silently, and unknown
// flags are ignored.
func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "start [options]",
		Short:              "Start the scheduler with the configured agent",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := schedule.ParseArgs(args)
			if opts.ShowHelp {
				fmt.Fprint(cmd.OutOrStdout(), schedule.Usage)
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, app.RunParams{
				ConfigPath:   opts.ConfigPath,
				ScheduleArgs: args,
				Version:      version,
			})
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			sched := cfg.Schedule.Schedule()
			fmt.Printf("Configuration OK\n")
			fmt.Printf("  agent:    %s\n", cfg.Agent.Command)
			fmt.Printf("  interval: %d minutes\n", sched.IntervalMinutes)
			if sched.MaxRuns == schedule.Unlimited {
				fmt.Printf("  max runs: unlimited\n")
			} else {
				fmt.Printf("  max runs: %d\n", sched.MaxRuns)
			}
			return nil
		},
	})
	return cmd
}
