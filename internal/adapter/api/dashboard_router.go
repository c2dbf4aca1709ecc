package api

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/adapter/api/handler"
	"github.com/V4T54L/transit-complaints/internal/adapter/api/middleware"
	"github.com/V4T54L/transit-complaints/internal/pkg/config"
)

// NewDashboardRouter creates the HTTP router of the dashboard backend.
func NewDashboardRouter(
	cfg *config.Config,
	logger *slog.Logger,
	dashboardHandler *handler.DashboardHandler,
	settingsHandler *handler.SettingsHandler,
	broker *handler.SSEBroker,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dashboard", dashboardHandler.View)
	mux.HandleFunc("GET /api/dashboard/complaints", dashboardHandler.Complaints)
	mux.Handle("GET /api/dashboard/events", broker)

	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Put)

	mux.HandleFunc("GET /health", handler.HealthCheck)

	return middleware.Logging(logger)(middleware.CORS(cfg.CORSAllowedOrigin)(mux))
}
