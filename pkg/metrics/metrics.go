// Package metrics exposes prometheus counters for the list core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the counters the services increment. A single instance
// is shared via the server wiring; tests construct their own registry.
type Metrics struct {
	registry *prometheus.Registry

	Moves                 prometheus.Counter
	Patches               prometheus.Counter
	PreconditionConflicts prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		Moves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranklist_moves_total",
			Help: "Completed position moves.",
		}),
		Patches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranklist_patches_total",
			Help: "Completed item patches.",
		}),
		PreconditionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ranklist_precondition_conflicts_total",
			Help: "Patches rejected for a stale version token.",
		}),
	}
	registry.MustRegister(m.Moves, m.Patches, m.PreconditionConflicts)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
