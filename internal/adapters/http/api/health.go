package api

import (
	"net/http"

	"github.com/okian/pitchside/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /healthz by serving the Prometheus metrics of
// the active manager.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	g, err := metrics.Gatherer()
	if err != nil {
		g = metrics.GetRegistry()
	}
	promhttp.HandlerFor(g, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
