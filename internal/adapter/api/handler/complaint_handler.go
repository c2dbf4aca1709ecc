package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/i18n"
)

// ComplaintSubmitter accepts a citizen submission.
type ComplaintSubmitter interface {
	Submit(ctx context.Context, sub *domain.Submission) error
}

// ComplaintLister lists complaint records.
type ComplaintLister interface {
	List(ctx context.Context) ([]domain.Complaint, error)
}

// submissionRequest is the body the citizen form posts.
type submissionRequest struct {
	ComplaintText string            `json:"complaint_text"`
	RouteNumberQR domain.FlexString `json:"route_number_qr"`
	BusNumberQR   domain.FlexString `json:"bus_number_qr"`
	Latitude      *float64          `json:"latitude"`
	Longitude     *float64          `json:"longitude"`
}

// ComplaintHandler serves GET and POST /api/complaints.
type ComplaintHandler struct {
	submitter     ComplaintSubmitter
	lister        ComplaintLister
	logger        *slog.Logger
	metrics       *metrics.APIMetrics
	maxSubmission int64
}

// NewComplaintHandler creates a new ComplaintHandler. m may be nil.
func NewComplaintHandler(submitter ComplaintSubmitter, lister ComplaintLister, logger *slog.Logger, m *metrics.APIMetrics, maxSubmission int64) *ComplaintHandler {
	return &ComplaintHandler{
		submitter:     submitter,
		lister:        lister,
		logger:        logger,
		metrics:       m,
		maxSubmission: maxSubmission,
	}
}

// List handles GET /api/complaints.
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.lister.List(r.Context())
	if err != nil {
		h.logger.Error("Error fetching complaints", "error", err)
		h.countList("error")
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to fetch complaints")
		return
	}
	h.countList("ok")
	respondWithJSON(w, h.logger, http.StatusOK, complaints)
}

// Submit handles POST /api/complaints.
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r, nil)

	// Enforce max body size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSubmission)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.countSubmission("error_size")
			respondWithError(w, h.logger, http.StatusRequestEntityTooLarge, i18n.T(lang, i18n.KeyPayloadTooLarge))
			return
		}
		h.countSubmission("error_parse")
		respondWithError(w, h.logger, http.StatusBadRequest, i18n.T(lang, i18n.KeyInvalidRequest))
		return
	}

	var req submissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("failed to decode submission", "error", err)
		h.countSubmission("error_parse")
		respondWithError(w, h.logger, http.StatusBadRequest, i18n.T(lang, i18n.KeyInvalidRequest))
		return
	}

	sub := &domain.Submission{
		Text:        req.ComplaintText,
		RouteNumber: string(req.RouteNumberQR),
		BusNumber:   req.BusNumberQR,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.submitter.Submit(r.Context(), sub); err != nil {
		if errors.Is(err, domain.ErrEmptyComplaintText) {
			h.countSubmission("error_validation")
			respondWithError(w, h.logger, http.StatusBadRequest, i18n.T(lang, i18n.KeyComplaintTextRequired))
			return
		}
		h.logger.Error("Error processing complaint", "error", err)
		h.countSubmission("error_sink")
		respondWithError(w, h.logger, http.StatusInternalServerError, i18n.T(lang, i18n.KeyComplaintProcessingFailed))
		return
	}

	h.countSubmission("accepted")
	if h.metrics != nil {
		h.metrics.SubmissionBytes.Add(float64(len(body)))
	}
	respondWithJSON(w, h.logger, http.StatusCreated, domain.Acknowledgement{
		Success: true,
		Message: i18n.T(lang, i18n.KeyComplaintAccepted),
		ID:      sub.ID,
	})
}

func (h *ComplaintHandler) countSubmission(status string) {
	if h.metrics != nil {
		h.metrics.SubmissionsTotal.WithLabelValues(status).Inc()
	}
}

func (h *ComplaintHandler) countList(status string) {
	if h.metrics != nil {
		h.metrics.ListRequestsTotal.WithLabelValues(status).Inc()
	}
}
