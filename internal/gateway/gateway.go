// Package gateway exposes the scheduler's health, status, and metrics over
// HTTP. It is optional: the runner behaves identically with it disabled.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/stratrun/stratrun/internal/schedule"
)

// Config holds HTTP gateway configuration.
type Config struct {
	Bind            string
	BearerToken     string // empty = /status served without auth
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Bind == "" {
		c.Bind = "127.0.0.1:8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Gateway serves the status endpoints for one scheduler.
type Gateway struct {
	cfg       Config
	logger    *slog.Logger
	sched     *schedule.Scheduler
	server    *http.Server
	startedAt time.Time
}

// New creates a Gateway bound to the given scheduler.
func New(cfg Config, sched *schedule.Scheduler, logger *slog.Logger) (*Gateway, error) {
	if sched == nil {
		return nil, errors.New("gateway: nil scheduler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.defaults()
	return &Gateway{cfg: cfg, sched: sched, logger: logger}, nil
}

// Start binds the listener and serves in the background.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.cfg.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.cfg.ReadTimeout,
		WriteTimeout: g.cfg.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.cfg.Bind)
	if err != nil {
		return fmt.Errorf("gateway: listen on %s: %w", g.cfg.Bind, err)
	}

	go func() {
		g.logger.Info("gateway: listening", "addr", ln.Addr().String())
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway: serve error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down with the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.cfg.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway: shutting down")
	return g.server.Shutdown(shutdownCtx)
}
