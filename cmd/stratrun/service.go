package main

import (
	"context"
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/stratrun/stratrun/pkg/app"
)

// program adapts app.Run to the service.Interface lifecycle.
type program struct {
	params app.RunParams

	cancel context.CancelFunc
	done   chan error
}

// Start implements service.Interface. It must not block.
func (p *program) Start(service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan error, 1)
	go func() {
		p.done <- app.Run(ctx, p.params)
	}()
	return nil
}

// Stop implements service.Interface. It requests shutdown and waits for the
// run loop to drain.
func (p *program) Stop(service.Service) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	return <-p.done
}

func newService(configPath string) (service.Service, error) {
	prg := &program{
		params: app.RunParams{ConfigPath: configPath, Version: version},
	}
	svcConfig := &service.Config{
		Name:        "stratrun",
		DisplayName: "stratrun scheduler",
		Description: "Periodically invokes the strategy-selection agent.",
		Arguments:   []string{"service", "run"},
	}
	if configPath != "" {
		svcConfig.Arguments = append(svcConfig.Arguments, "--config", configPath)
	}
	return service.New(prg, svcConfig)
}

// serviceCmd manages stratrun as a system service (systemd, launchd, ...).
func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Run stratrun as a system service",
	}

	var configPath string
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install the system service",
			RunE: func(_ *cobra.Command, _ []string) error {
				svc, err := newService(configPath)
				if err != nil {
					return err
				}
				if err := svc.Install(); err != nil {
					return err
				}
				fmt.Println("Service installed.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Remove the system service",
			RunE: func(_ *cobra.Command, _ []string) error {
				svc, err := newService(configPath)
				if err != nil {
					return err
				}
				if err := svc.Uninstall(); err != nil {
					return err
				}
				fmt.Println("Service removed.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Run under the service manager (invoked by the system)",
			RunE: func(_ *cobra.Command, _ []string) error {
				svc, err := newService(configPath)
				if err != nil {
					return err
				}
				return svc.Run()
			},
		},
	)
	return cmd
}
