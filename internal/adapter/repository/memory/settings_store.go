package memory

import (
	"context"
	"sync"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// SettingsStore implements domain.SettingsStore for a single process.
type SettingsStore struct {
	mu          sync.RWMutex
	settings    map[string]domain.Settings
	subscribers map[chan domain.SettingsChange]struct{}
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		settings:    make(map[string]domain.Settings),
		subscribers: make(map[chan domain.SettingsChange]struct{}),
	}
}

func (s *SettingsStore) Get(ctx context.Context, clientID string) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if settings, ok := s.settings[clientID]; ok {
		return settings, nil
	}
	return domain.DefaultSettings(), nil
}

// Set stores settings and notifies subscribers. A subscriber whose buffer is
// full misses the change.
func (s *SettingsStore) Set(ctx context.Context, clientID string, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[clientID] = settings

	change := domain.SettingsChange{ClientID: clientID, Settings: settings}
	for ch := range s.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
	return nil
}

func (s *SettingsStore) Subscribe(ctx context.Context) (<-chan domain.SettingsChange, error) {
	ch := make(chan domain.SettingsChange, 16)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}
