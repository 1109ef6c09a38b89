package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// buildRegistry exposes the scheduler's atomic counters through a private
// prometheus registry, so scrapes never contend with in-flight runs.
func (g *Gateway) buildRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	m := g.sched.Metrics()

	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "stratrun_runs_total",
			Help: "Total run cycles attempted, failures included.",
		}, func() float64 { return float64(m.Runs()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "stratrun_run_successes_total",
			Help: "Run cycles in which both agent invocations succeeded.",
		}, func() float64 { return float64(m.Successes()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "stratrun_run_failures_total",
			Help: "Run cycles in which an agent invocation failed.",
		}, func() float64 { return float64(m.Failures()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "stratrun_running",
			Help: "Whether the scheduler is currently running (1) or stopped (0).",
		}, func() float64 {
			if g.sched.Status().Running {
				return 1
			}
			return 0
		}),
	)

	return reg
}
