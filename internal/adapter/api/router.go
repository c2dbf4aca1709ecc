package api

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/adapter/api/handler"
	"github.com/V4T54L/transit-complaints/internal/adapter/api/middleware"
	"github.com/V4T54L/transit-complaints/internal/pkg/config"
)

// NewRouter creates and configures the HTTP router of the complaints API.
func NewRouter(cfg *config.Config, logger *slog.Logger, complaintHandler *handler.ComplaintHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/complaints", complaintHandler.List)
	mux.HandleFunc("POST /api/complaints", complaintHandler.Submit)

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	return middleware.Logging(logger)(middleware.CORS(cfg.CORSAllowedOrigin)(mux))
}
