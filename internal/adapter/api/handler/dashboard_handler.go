package handler

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/dashboard"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/i18n"
	"github.com/V4T54L/transit-complaints/internal/usecase"
)

// PollSnapshotter exposes the latest poll state.
type PollSnapshotter interface {
	Snapshot() usecase.PollState
}

type unavailableResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Detail   string `json:"detail"`
	Upstream string `json:"upstream"`
}

// DashboardHandler serves the derived dashboard views.
type DashboardHandler struct {
	poller      PollSnapshotter
	settings    domain.SettingsStore
	upstreamURL string
	logger      *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler. settings may be nil.
func NewDashboardHandler(poller PollSnapshotter, settings domain.SettingsStore, upstreamURL string, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		poller:      poller,
		settings:    settings,
		upstreamURL: upstreamURL,
		logger:      logger,
	}
}

// View handles GET /api/dashboard.
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	filter, state, lang, ok := h.prepare(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, dashboard.BuildView(dashboard.ViewInput{
		Records:     state.Complaints,
		Loading:     state.Loading,
		LastUpdated: state.LastUpdated,
		Filter:      filter,
		Language:    lang,
	}))
}

// Complaints handles GET /api/dashboard/complaints: the filtered records.
func (h *DashboardHandler) Complaints(w http.ResponseWriter, r *http.Request) {
	filter, state, _, ok := h.prepare(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, dashboard.Apply(state.Complaints, filter))
}

// prepare parses the filter and checks the poll state, writing the error
// response itself when it returns false.
func (h *DashboardHandler) prepare(w http.ResponseWriter, r *http.Request) (dashboard.Filter, usecase.PollState, domain.Language, bool) {
	lang := requestLanguage(r, h.storedLanguage(r))

	filter, err := dashboard.ParseFilter(r.URL.Query())
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error())
		return filter, usecase.PollState{}, lang, false
	}

	state := h.poller.Snapshot()
	if state.Err != nil {
		respondWithJSON(w, h.logger, http.StatusServiceUnavailable, unavailableResponse{
			Error:    i18n.T(lang, i18n.KeyErrorLoading),
			Message:  i18n.T(lang, i18n.KeyErrorMessage),
			Detail:   state.Err.Error(),
			Upstream: h.upstreamURL,
		})
		return filter, state, lang, false
	}
	return filter, state, lang, true
}

// storedLanguage looks up the caller's saved language. Callers without a
// client id have none.
func (h *DashboardHandler) storedLanguage(r *http.Request) func() (domain.Language, bool) {
	if h.settings == nil || r.Header.Get(ClientIDHeader) == "" {
		return nil
	}
	return func() (domain.Language, bool) {
		s, err := h.settings.Get(r.Context(), clientID(r))
		if err != nil {
			h.logger.Warn("failed to load settings", "client_id", clientID(r), "error", err)
			return "", false
		}
		return s.Language, true
	}
}
