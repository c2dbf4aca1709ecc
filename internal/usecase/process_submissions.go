package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
)

// ErrBatchDeadLettered is returned when a batch could not be written and was
// parked on the dead-letter stream instead.
var ErrBatchDeadLettered = errors.New("batch moved to dead-letter stream")

// ProcessSubmissionsUseCase drains the submission stream into the writer.
type ProcessSubmissionsUseCase struct {
	queue        domain.SubmissionQueue
	writer       domain.SubmissionWriter
	logger       *slog.Logger
	metrics      *metrics.ConsumerMetrics
	group        string
	consumer     string
	batchSize    int
	retryCount   int
	retryBackoff time.Duration
}

// NewProcessSubmissionsUseCase creates a new use case for processing submissions.
// m may be nil.
func NewProcessSubmissionsUseCase(
	queue domain.SubmissionQueue,
	writer domain.SubmissionWriter,
	logger *slog.Logger,
	m *metrics.ConsumerMetrics,
	group, consumer string,
	batchSize, retryCount int,
	retryBackoff time.Duration,
) *ProcessSubmissionsUseCase {
	if retryCount < 1 {
		retryCount = 1
	}
	return &ProcessSubmissionsUseCase{
		queue:        queue,
		writer:       writer,
		logger:       logger,
		metrics:      m,
		group:        group,
		consumer:     consumer,
		batchSize:    batchSize,
		retryCount:   retryCount,
		retryBackoff: retryBackoff,
	}
}

// ProcessBatch reads one batch, writes it with retries and acknowledges it.
// A batch that still fails after the last retry is moved to the DLQ and
// acknowledged so it does not block the stream.
func (uc *ProcessSubmissionsUseCase) ProcessBatch(ctx context.Context) (int, error) {
	subs, err := uc.queue.ReadBatch(ctx, uc.group, uc.consumer, uc.batchSize)
	if err != nil {
		uc.logger.Error("failed to read submission batch", "error", err)
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}
	uc.logger.Debug("read submission batch", "count", len(subs))

	start := time.Now()
	writeErr := uc.writeWithRetry(ctx, subs)
	uc.observeDuration(time.Since(start))

	ids := make([]string, len(subs))
	for i, sub := range subs {
		ids[i] = sub.StreamMessageID
	}

	if writeErr != nil {
		if ctx.Err() != nil {
			// Left pending; the next run re-reads it.
			return 0, writeErr
		}
		uc.logger.Error("failed to write submission batch after retries, moving to DLQ",
			"error", writeErr, "count", len(subs))
		if err := uc.queue.MoveToDLQ(ctx, subs); err != nil {
			uc.logger.Error("failed to move batch to DLQ", "error", err)
			uc.observeBatch("failed", 0)
			return 0, fmt.Errorf("move batch to DLQ: %w", err)
		}
		if err := uc.queue.Acknowledge(ctx, uc.group, ids...); err != nil {
			uc.logger.Error("failed to acknowledge dead-lettered batch", "error", err)
			return 0, err
		}
		uc.observeBatch("dead_lettered", len(subs))
		return 0, fmt.Errorf("%w: %v", ErrBatchDeadLettered, writeErr)
	}

	if err := uc.queue.Acknowledge(ctx, uc.group, ids...); err != nil {
		// Written but not acknowledged: redelivery is absorbed by ON CONFLICT.
		uc.logger.Error("failed to acknowledge written batch", "error", err)
		return 0, err
	}

	uc.observeBatch("written", len(subs))
	uc.logger.Info("wrote submission batch", "count", len(subs))
	return len(subs), nil
}

func (uc *ProcessSubmissionsUseCase) writeWithRetry(ctx context.Context, subs []domain.Submission) error {
	var lastErr error
	for i := 0; i < uc.retryCount; i++ {
		err := uc.writer.WriteBatch(ctx, subs)
		if err == nil {
			return nil
		}
		lastErr = err
		uc.logger.Warn("failed to write batch, retrying", "attempt", i+1, "error", err)
		if i == uc.retryCount-1 {
			break
		}
		select {
		case <-time.After(uc.retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (uc *ProcessSubmissionsUseCase) observeBatch(outcome string, records int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.BatchesTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case "written":
		uc.metrics.RecordsWritten.Add(float64(records))
	case "dead_lettered":
		uc.metrics.RecordsDLQ.Add(float64(records))
	}
}

func (uc *ProcessSubmissionsUseCase) observeDuration(d time.Duration) {
	if uc.metrics != nil {
		uc.metrics.BatchDuration.Observe(d.Seconds())
	}
}
