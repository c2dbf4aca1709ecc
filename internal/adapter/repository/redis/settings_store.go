package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	settingsKeyPrefix      = "settings:"
	settingsChangedChannel = "settings_changed"
)

// SettingsStore implements domain.SettingsStore with one hash per client and
// a pub/sub channel for change notifications, so every dashboard instance
// sees every change.
type SettingsStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewSettingsStore(client *redis.Client, logger *slog.Logger) *SettingsStore {
	return &SettingsStore{
		client: client,
		logger: logger.With("component", "redis_settings_store"),
	}
}

func (s *SettingsStore) Get(ctx context.Context, clientID string) (domain.Settings, error) {
	values, err := s.client.HGetAll(ctx, settingsKeyPrefix+clientID).Result()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to read settings for %s: %w", clientID, err)
	}

	settings := domain.DefaultSettings()
	if v, ok := values["theme"]; ok {
		settings.Theme = domain.Theme(v)
	}
	if v, ok := values["language"]; ok {
		settings.Language = domain.Language(v)
	}
	if err := settings.Validate(); err != nil {
		s.logger.Warn("stored settings are invalid, using defaults", "client_id", clientID, "error", err)
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsStore) Set(ctx context.Context, clientID string, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(domain.SettingsChange{ClientID: clientID, Settings: settings})
	if err != nil {
		return fmt.Errorf("failed to marshal settings change: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, settingsKeyPrefix+clientID, "theme", string(settings.Theme), "language", string(settings.Language))
	pipe.Publish(ctx, settingsChangedChannel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store settings for %s: %w", clientID, err)
	}
	return nil
}

// Subscribe forwards changes published by any instance until ctx is cancelled.
func (s *SettingsStore) Subscribe(ctx context.Context) (<-chan domain.SettingsChange, error) {
	pubsub := s.client.Subscribe(ctx, settingsChangedChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", settingsChangedChannel, err)
	}

	out := make(chan domain.SettingsChange)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var change domain.SettingsChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					s.logger.Warn("failed to decode settings change", "error", err)
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
