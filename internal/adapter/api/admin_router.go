package api

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/adapter/api/handler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewAdminRouter creates the router of the admin server: metrics, health and,
// when adminHandler is not nil, submission queue administration.
func NewAdminRouter(gatherer prometheus.Gatherer, adminHandler *handler.AdminHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError)}))
	mux.HandleFunc("GET /health", handler.HealthCheck)

	if adminHandler != nil {
		mux.HandleFunc("GET /admin/queue", adminHandler.QueueStats)
		mux.HandleFunc("POST /admin/queue/trim", adminHandler.TrimQueue)
	}

	return mux
}
