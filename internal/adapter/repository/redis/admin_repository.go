package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/redis/go-redis/v9"
)

// AdminRepository implements domain.QueueAdminRepository for the submission stream.
type AdminRepository struct {
	client       *redis.Client
	logger       *slog.Logger
	streamKey    string
	dlqStreamKey string
}

// NewAdminRepository creates a new Redis admin repository.
func NewAdminRepository(client *redis.Client, logger *slog.Logger, streamKey, dlqStreamKey string) *AdminRepository {
	return &AdminRepository{
		client:       client,
		logger:       logger,
		streamKey:    streamKey,
		dlqStreamKey: dlqStreamKey,
	}
}

// QueueStats reports stream and DLQ lengths and the pending summary of group.
func (r *AdminRepository) QueueStats(ctx context.Context, group string) (*domain.QueueStats, error) {
	pipe := r.client.Pipeline()
	lenCmd := pipe.XLen(ctx, r.streamKey)
	dlqCmd := pipe.XLen(ctx, r.dlqStreamKey)
	pendingCmd := pipe.XPending(ctx, r.streamKey, group)
	// Exec reports the first failed command; each result is checked below.
	_, _ = pipe.Exec(ctx)

	length, err := lenCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get length of stream %s: %w", r.streamKey, err)
	}
	dlqLength, err := dlqCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get length of stream %s: %w", r.dlqStreamKey, err)
	}

	stats := &domain.QueueStats{
		Stream:    r.streamKey,
		Length:    length,
		DLQLength: dlqLength,
	}

	pending, err := pendingCmd.Result()
	switch {
	case err == nil:
		stats.Pending = domain.PendingSummary{
			Total:          pending.Count,
			FirstMessageID: pending.Lower,
			LastMessageID:  pending.Higher,
			ConsumerTotals: pending.Consumers,
		}
	case strings.HasPrefix(err.Error(), "NOGROUP"):
		// No consumer has started yet.
		r.logger.Debug("consumer group does not exist yet", "group", group)
	default:
		return nil, fmt.Errorf("failed to get pending summary for stream %s, group %s: %w", r.streamKey, group, err)
	}
	return stats, nil
}

// Trim trims the submission stream to at most maxLen entries.
func (r *AdminRepository) Trim(ctx context.Context, maxLen int64) (int64, error) {
	trimmed, err := r.client.XTrimMaxLen(ctx, r.streamKey, maxLen).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to trim stream %s: %w", r.streamKey, err)
	}
	r.logger.Info("trimmed submission stream", "stream", r.streamKey, "maxlen", maxLen, "trimmed", trimmed)
	return trimmed, nil
}
