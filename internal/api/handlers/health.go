package handlers

import (
	"net/http"

	"github.com/hoanghai1803/newshub/internal/health"
	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/provider"
)

// Health handles GET /health.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "Server is running",
		})
	}
}

// upstreamServices are the collaborators the proxy probes; the news service
// is the proxy itself.
var upstreamServices = []provider.Service{
	provider.ServiceFactCheck,
	provider.ServiceBias,
	provider.ServiceSummarizer,
}

// ServicesHealth handles GET /api/health/services. It probes every upstream
// service concurrently. The status is 200 when all are up and 503 otherwise.
func ServicesHealth(prober health.Prober) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports := append([]models.Health{{
			Service: string(provider.ServiceNews),
			Status:  "OK",
			Message: "Server is running",
		}}, health.Check(r.Context(), prober, upstreamServices)...)

		status := http.StatusOK
		if !health.AllUp(reports) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"services": reports})
	}
}
