package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/google/uuid"
)

// SubmitComplaintUseCase handles the business logic for accepting a complaint.
type SubmitComplaintUseCase struct {
	sink   domain.SubmissionSink
	logger *slog.Logger
}

// NewSubmitComplaintUseCase creates a new SubmitComplaintUseCase.
func NewSubmitComplaintUseCase(sink domain.SubmissionSink, logger *slog.Logger) *SubmitComplaintUseCase {
	return &SubmitComplaintUseCase{
		sink:   sink,
		logger: logger,
	}
}

// Submit normalises and validates sub, stamps it with an id and the receive
// time, and hands it to the sink.
func (uc *SubmitComplaintUseCase) Submit(ctx context.Context, sub *domain.Submission) error {
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return err
	}

	sub.ReceivedAt = time.Now().UTC()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	if err := uc.sink.Submit(ctx, *sub); err != nil {
		uc.logger.Error("failed to store submission", "error", err, "submission_id", sub.ID)
		return fmt.Errorf("store submission %s: %w", sub.ID, err)
	}

	uc.logger.Debug("submission accepted",
		"submission_id", sub.ID,
		"route_number", sub.RouteNumber,
		"bus_number", string(sub.BusNumber),
		"has_location", sub.Latitude != nil && sub.Longitude != nil,
	)
	return nil
}
