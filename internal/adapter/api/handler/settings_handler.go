package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

const maxSettingsBody = 4 << 10

// SettingsHandler serves GET and PUT /api/settings for the client named in
// the X-Client-ID header.
type SettingsHandler struct {
	store  domain.SettingsStore
	logger *slog.Logger
}

func NewSettingsHandler(store domain.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, logger: logger}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Get(r.Context(), clientID(r))
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, settings)
}

// Put handles PUT /api/settings.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSettingsBody)

	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	id := clientID(r)
	if err := h.store.Set(r.Context(), id, settings); err != nil {
		if errors.Is(err, domain.ErrInvalidSettings) {
			respondWithError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save settings", "client_id", id, "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, settings)
}
