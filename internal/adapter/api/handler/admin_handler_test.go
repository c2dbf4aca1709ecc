package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/domain/mocks"
	"github.com/V4T54L/transit-complaints/internal/usecase"
)

func TestAdminHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Queue Stats", func(t *testing.T) {
		repo := &mocks.MockQueueAdminRepository{Stats: &domain.QueueStats{
			Stream: "complaint_submissions", Length: 10, DLQLength: 1,
			Pending: domain.PendingSummary{Total: 2},
		}}
		h := NewAdminHandler(usecase.NewAdminQueueUseCase(repo, "complaint-writers"), logger)

		rr := httptest.NewRecorder()
		h.QueueStats(rr, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		var got domain.QueueStats
		json.Unmarshal(rr.Body.Bytes(), &got)
		if got.Length != 10 || got.DLQLength != 1 || got.Pending.Total != 2 {
			t.Errorf("unexpected stats: %+v", got)
		}
	})

	t.Run("Queue Stats Error", func(t *testing.T) {
		repo := &mocks.MockQueueAdminRepository{StatsErr: errors.New("redis is down")}
		h := NewAdminHandler(usecase.NewAdminQueueUseCase(repo, "g"), logger)

		rr := httptest.NewRecorder()
		h.QueueStats(rr, httptest.NewRequest(http.MethodGet, "/admin/queue", nil))
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", rr.Code)
		}
	})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Trim", `{"maxlen":1000}`, http.StatusOK},
		{"Zero Maxlen", `{"maxlen":0}`, http.StatusBadRequest},
		{"Bad Body", `maxlen=5`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockQueueAdminRepository{Trimmed: 7}
			h := NewAdminHandler(usecase.NewAdminQueueUseCase(repo, "g"), logger)

			rr := httptest.NewRecorder()
			h.TrimQueue(rr, httptest.NewRequest(http.MethodPost, "/admin/queue/trim", bytes.NewBufferString(tt.body)))
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK && rr.Body.String() != `{"trimmed":7}` {
				t.Errorf("body = %s", rr.Body.String())
			}
		})
	}
}
