// Package metrics exposes prometheus instrumentation for the storage layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_store_ops_total",
		Help: "Storage operations by op, serving backend, and outcome.",
	}, []string{"op", "backend", "outcome"})

	backendState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_store_backend_state",
		Help: "Storage backend state: 0 disconnected, 1 connected, 2 degraded.",
	})
)

// StoreOp counts one storage operation.
func StoreOp(op, backend, outcome string) {
	storeOps.WithLabelValues(op, backend, outcome).Inc()
}

// SetBackendState records the failover state machine's current state.
func SetBackendState(state int) {
	backendState.Set(float64(state))
}

// Handler serves the prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
