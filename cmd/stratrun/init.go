package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// initCmd interactively writes a starter configuration file.
func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a stratrun.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("output")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}

			var (
				command   string
				interval  = "60"
				immediate = true
			)

			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Agent command").
					Description("Executable invoked once per risk mode each cycle").
					Value(&command).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("command is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Interval (minutes)").
					Value(&interval).
					Validate(func(s string) error {
						if v, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || v <= 0 {
							return errors.New("must be a positive integer")
						}
						return nil
					}),
				huh.NewConfirm().
					Title("Run immediately on start?").
					Value(&immediate),
			))
			if err := form.Run(); err != nil {
				return err
			}

			content := fmt.Sprintf(`schedule:
  interval_minutes: %s
  start_immediately: %t
  # max_runs: 10             # uncomment to cap total runs

agent:
  command: %s
  # args: ["--portfolio", "main"]
  # timeout: 5m

# gateway:
#   enabled: true
#   bind: 127.0.0.1:8080

log:
  level: info
`, strings.TrimSpace(interval), immediate, strings.TrimSpace(command))

			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "stratrun.yaml", "Path of the configuration file to create")
	return cmd
}
