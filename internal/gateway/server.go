package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Public routes, no auth required.
	r.Get("/health", g.handleHealth())
	r.Get("/metrics", promhttp.HandlerFor(g.buildRegistry(), promhttp.HandlerOpts{}).ServeHTTP)

	// Status requires auth when a bearer token is configured.
	if g.cfg.BearerToken != "" {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(g.cfg.BearerToken))
			r.Get("/status", g.handleStatus())
		})
	} else {
		r.Get("/status", g.handleStatus())
	}

	return r
}
