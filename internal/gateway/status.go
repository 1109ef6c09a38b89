package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stratrun/stratrun/internal/schedule"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Scheduler     schedule.Status          `json:"scheduler"`
	Metrics       schedule.MetricsSnapshot `json:"metrics"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			UptimeSeconds: time.Since(g.startedAt).Round(time.Second).Seconds(),
			Scheduler:     g.sched.Status(),
			Metrics:       g.sched.Metrics().Snapshot(),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
