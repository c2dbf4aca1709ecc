package memory

import (
	"context"
	"log/slog"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// DiscardSink logs and drops submissions. It backs the intake endpoint when
// neither Redis nor Postgres is configured.
type DiscardSink struct {
	logger *slog.Logger
}

func NewDiscardSink(logger *slog.Logger) *DiscardSink {
	return &DiscardSink{logger: logger.With("component", "discard_sink")}
}

func (s *DiscardSink) Submit(ctx context.Context, sub domain.Submission) error {
	s.logger.Info("received complaint",
		"submission_id", sub.ID,
		"complaint_text", sub.Text,
		"route_number_qr", sub.RouteNumber,
		"bus_number_qr", string(sub.BusNumber),
		"latitude", sub.Latitude,
		"longitude", sub.Longitude,
	)
	return nil
}
