package gateway

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"` // "ok" while running, "stopped" otherwise
	RunCount int    `json:"run_count"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Returns 200 while the scheduler is running, 503 once it has stopped
// (explicitly or by reaching its run cap).
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := g.sched.Status()
		resp := HealthResponse{Status: "ok", RunCount: st.RunCount}
		if !st.Running {
			resp.Status = "stopped"
		}

		w.Header().Set("Content-Type", "application/json")
		if !st.Running {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
