package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/domain/mocks"
)

func TestSubmitComplaintUseCase_Submit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Successful Submission", func(t *testing.T) {
		repo := &mocks.MockSubmissionRepository{}
		uc := NewSubmitComplaintUseCase(repo, logger)

		zero := 0.0
		sub := &domain.Submission{
			Text:        "  Автобус опоздал  ",
			RouteNumber: "12",
			BusNumber:   "0",
			Latitude:    &zero,
			Longitude:   &zero,
		}
		if err := uc.Submit(context.Background(), sub); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sub.ID == "" {
			t.Error("expected submission ID to be generated")
		}
		if sub.ReceivedAt.IsZero() {
			t.Error("expected ReceivedAt to be set")
		}
		if len(repo.Submitted) != 1 {
			t.Fatalf("expected 1 submission in sink, got %d", len(repo.Submitted))
		}
		got := repo.Submitted[0]
		if got.Text != "Автобус опоздал" {
			t.Errorf("text not trimmed: %q", got.Text)
		}
		if got.BusNumber != "" || got.Latitude != nil || got.Longitude != nil {
			t.Errorf("placeholders not cleared: %+v", got)
		}
	})

	t.Run("Empty Text", func(t *testing.T) {
		repo := &mocks.MockSubmissionRepository{}
		uc := NewSubmitComplaintUseCase(repo, logger)

		err := uc.Submit(context.Background(), &domain.Submission{Text: " \n\t"})
		if !errors.Is(err, domain.ErrEmptyComplaintText) {
			t.Fatalf("expected ErrEmptyComplaintText, got %v", err)
		}
		if len(repo.Submitted) != 0 {
			t.Errorf("expected nothing submitted, got %d", len(repo.Submitted))
		}
	})

	t.Run("Sink Error", func(t *testing.T) {
		sinkErr := errors.New("stream unavailable")
		repo := &mocks.MockSubmissionRepository{SubmitErr: sinkErr}
		uc := NewSubmitComplaintUseCase(repo, logger)

		err := uc.Submit(context.Background(), &domain.Submission{Text: "Грязно"})
		if !errors.Is(err, sinkErr) {
			t.Fatalf("expected wrapped sink error, got %v", err)
		}
	})

	t.Run("Existing ID Is Kept", func(t *testing.T) {
		repo := &mocks.MockSubmissionRepository{}
		uc := NewSubmitComplaintUseCase(repo, logger)

		sub := &domain.Submission{ID: "fixed", Text: "x"}
		if err := uc.Submit(context.Background(), sub); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.Submitted[0].ID != "fixed" {
			t.Errorf("ID overwritten: %q", repo.Submitted[0].ID)
		}
	})
}

func TestListComplaintsUseCase_List(t *testing.T) {
	t.Run("Nil Becomes Empty", func(t *testing.T) {
		uc := NewListComplaintsUseCase(&mocks.MockComplaintReader{})
		got, err := uc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("Reader Error", func(t *testing.T) {
		readErr := errors.New("connection refused")
		uc := NewListComplaintsUseCase(&mocks.MockComplaintReader{Err: readErr})
		if _, err := uc.List(context.Background()); !errors.Is(err, readErr) {
			t.Fatalf("expected wrapped reader error, got %v", err)
		}
	})
}

func TestAdminQueueUseCase(t *testing.T) {
	repo := &mocks.MockQueueAdminRepository{
		Stats:   &domain.QueueStats{Stream: "complaint_submissions", Length: 4},
		Trimmed: 3,
	}
	uc := NewAdminQueueUseCase(repo, "complaint-writers")

	stats, err := uc.Stats(context.Background())
	if err != nil || stats.Length != 4 {
		t.Fatalf("Stats() = %+v, %v", stats, err)
	}

	if _, err := uc.Trim(context.Background(), 0); !errors.Is(err, ErrInvalidMaxLen) {
		t.Errorf("expected ErrInvalidMaxLen, got %v", err)
	}
	n, err := uc.Trim(context.Background(), 100)
	if err != nil || n != 3 || repo.TrimMaxLen != 100 {
		t.Errorf("Trim() = %d, %v (maxlen %d)", n, err, repo.TrimMaxLen)
	}
}
