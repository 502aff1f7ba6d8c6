// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/baton/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthzHandler handles liveness and metrics requests.
type HealthzHandler struct{}

// NewHealthzHandler creates a new healthz handler.
func NewHealthzHandler() *HealthzHandler {
	return &HealthzHandler{}
}

// HandleHealthz handles GET /healthz requests.
func (h *HealthzHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleMetrics serves Prometheus metrics from the custom registry.
func (h *HealthzHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
