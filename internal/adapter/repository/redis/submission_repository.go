package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/redis/go-redis/v9"
)

const readBlock = 2 * time.Second

// SubmissionRepository implements domain.SubmissionSink and
// domain.SubmissionQueue on top of a Redis stream.
type SubmissionRepository struct {
	client       *redis.Client
	logger       *slog.Logger
	streamKey    string
	dlqStreamKey string
}

// NewSubmissionRepository creates a new Redis-backed SubmissionRepository.
func NewSubmissionRepository(client *redis.Client, logger *slog.Logger, streamKey, dlqStreamKey string) *SubmissionRepository {
	return &SubmissionRepository{
		client:       client,
		logger:       logger.With("component", "redis_submission_repository"),
		streamKey:    streamKey,
		dlqStreamKey: dlqStreamKey,
	}
}

// SetupConsumerGroup creates the consumer group, and the stream with it, if
// it does not exist yet.
func (r *SubmissionRepository) SetupConsumerGroup(ctx context.Context, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, r.streamKey, group, "0").Err()
	if err != nil && !isBusyGroupError(err) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Submit appends a submission to the stream.
func (r *SubmissionRepository) Submit(ctx context.Context, sub domain.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: r.streamKey,
		Values: map[string]interface{}{"payload": payload},
	}
	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to XADD to redis stream: %w", err)
	}
	return nil
}

// ReadBatch first re-reads messages already delivered to this consumer but
// never acknowledged, then blocks for new ones.
func (r *SubmissionRepository) ReadBatch(ctx context.Context, group, consumer string, count int) ([]domain.Submission, error) {
	subs, err := r.read(ctx, group, consumer, "0", count, -1)
	if err != nil || len(subs) > 0 {
		return subs, err
	}
	return r.read(ctx, group, consumer, ">", count, readBlock)
}

func (r *SubmissionRepository) read(ctx context.Context, group, consumer, id string, count int, block time.Duration) ([]domain.Submission, error) {
	streams, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{r.streamKey, id},
		Count:    int64(count),
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to XREADGROUP from redis: %w", err)
	}
	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, nil
	}

	messages := streams[0].Messages
	subs := make([]domain.Submission, 0, len(messages))
	var malformed []string
	for _, msg := range messages {
		payload, ok := msg.Values["payload"].(string)
		if !ok {
			r.logger.Warn("Invalid message format in stream, dropping", "message_id", msg.ID)
			malformed = append(malformed, msg.ID)
			continue
		}

		var sub domain.Submission
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			r.logger.Warn("Failed to unmarshal submission from stream, dropping", "message_id", msg.ID, "error", err)
			malformed = append(malformed, msg.ID)
			continue
		}
		sub.StreamMessageID = msg.ID
		subs = append(subs, sub)
	}

	// Undecodable messages would otherwise be redelivered forever.
	if len(malformed) > 0 {
		if err := r.Acknowledge(ctx, group, malformed...); err != nil {
			r.logger.Error("Failed to acknowledge malformed messages", "error", err)
		}
	}
	return subs, nil
}

// Acknowledge acknowledges processed messages in the stream.
func (r *SubmissionRepository) Acknowledge(ctx context.Context, group string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := r.client.XAck(ctx, r.streamKey, group, messageIDs...).Err(); err != nil {
		return fmt.Errorf("failed to XACK messages in redis: %w", err)
	}
	return nil
}

// MoveToDLQ copies submissions to the dead-letter stream.
func (r *SubmissionRepository) MoveToDLQ(ctx context.Context, subs []domain.Submission) error {
	if len(subs) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, sub := range subs {
		payload, err := json.Marshal(sub)
		if err != nil {
			r.logger.Error("Failed to marshal submission for DLQ", "submission_id", sub.ID, "error", err)
			continue
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: r.dlqStreamKey,
			Values: map[string]interface{}{
				"payload":         payload,
				"original_stream": r.streamKey,
				"original_msg_id": sub.StreamMessageID,
				"failed_at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute DLQ pipeline: %w", err)
	}
	r.logger.Warn("Moved submissions to DLQ", "count", len(subs))
	return nil
}

func isBusyGroupError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
