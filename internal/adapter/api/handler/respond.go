package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/i18n"
)

// ClientIDHeader identifies a dashboard client for settings lookups.
const ClientIDHeader = "X-Client-ID"

const anonymousClient = "anonymous"

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, logger *slog.Logger, code int, message string) {
	respondWithJSON(w, logger, code, errorResponse{Error: message})
}

func clientID(r *http.Request) string {
	if id := r.Header.Get(ClientIDHeader); id != "" {
		return id
	}
	return anonymousClient
}

// requestLanguage resolves the response language from ?lang=, then stored
// (when the caller has one), then Accept-Language, then the default.
func requestLanguage(r *http.Request, stored func() (domain.Language, bool)) domain.Language {
	if lang, ok := i18n.ParseLanguage(r.URL.Query().Get("lang")); ok {
		return lang
	}
	if stored != nil {
		if lang, ok := stored(); ok {
			return lang
		}
	}
	if lang, ok := i18n.FromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return lang
	}
	return i18n.DefaultLanguage
}
