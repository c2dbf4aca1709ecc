package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/usecase"
)

const (
	EventRefresh  = "refresh"
	EventSettings = "settings"

	keepAliveInterval = 15 * time.Second
)

// RefreshEvent tells clients the dashboard data changed.
type RefreshEvent struct {
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	Records     int        `json:"records"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
}

type sseEvent struct {
	name string
	data []byte
}

// SSEBroker manages SSE client connections and broadcasts named events.
type SSEBroker struct {
	logger  *slog.Logger
	metrics *metrics.DashboardMetrics
	clients map[chan sseEvent]struct{}
	mu      sync.RWMutex
	events  chan sseEvent
}

// NewSSEBroker creates a new SSEBroker and starts its processing loop. m may be nil.
func NewSSEBroker(ctx context.Context, logger *slog.Logger, m *metrics.DashboardMetrics) *SSEBroker {
	broker := &SSEBroker{
		logger:  logger.With("component", "sse_broker"),
		metrics: m,
		clients: make(map[chan sseEvent]struct{}),
		events:  make(chan sseEvent, 64),
	}
	go broker.run(ctx)
	return broker
}

// ServeHTTP handles new client connections for the SSE stream.
func (b *SSEBroker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	messageChan := make(chan sseEvent, 8)
	b.addClient(messageChan)
	defer b.removeClient(messageChan)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messageChan:
			if !ok {
				return // Channel was closed
			}
			if msg.name == "" {
				fmt.Fprint(w, ": keep-alive\n\n")
			} else {
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.name, msg.data)
			}
			flusher.Flush()
		}
	}
}

// Publish queues a named event for every connected client. It never blocks;
// when the queue is full the event is dropped.
func (b *SSEBroker) Publish(name string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("Failed to marshal SSE message", "event", name, "error", err)
		return
	}
	select {
	case b.events <- sseEvent{name: name, data: data}:
	default:
		b.logger.Warn("SSE event queue is full, dropping event", "event", name)
	}
}

// PublishPollState is a usecase.ComplaintPoller subscriber.
func (b *SSEBroker) PublishPollState(s usecase.PollState) {
	ev := RefreshEvent{Records: len(s.Complaints), Loading: s.Loading}
	if !s.LastUpdated.IsZero() {
		ts := s.LastUpdated
		ev.LastUpdated = &ts
	}
	if s.Err != nil {
		ev.Error = s.Err.Error()
	}
	b.Publish(EventRefresh, ev)
}

// ForwardSettings publishes every change read from changes until it is closed.
func (b *SSEBroker) ForwardSettings(changes <-chan domain.SettingsChange) {
	for change := range changes {
		b.Publish(EventSettings, change)
	}
}

// ClientCount returns the number of connected clients.
func (b *SSEBroker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *SSEBroker) addClient(client chan sseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = struct{}{}
	b.setClientGauge()
	b.logger.Info("SSE client connected")
}

func (b *SSEBroker) removeClient(client chan sseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; ok {
		delete(b.clients, client)
		close(client)
		b.setClientGauge()
		b.logger.Info("SSE client disconnected")
	}
}

// setClientGauge must be called with mu held.
func (b *SSEBroker) setClientGauge() {
	if b.metrics != nil {
		b.metrics.SSEClients.Set(float64(len(b.clients)))
	}
}

func (b *SSEBroker) broadcast(msg sseEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client <- msg:
		default:
			// Slow client; it misses this message.
		}
	}
}

// run is the main processing loop for the broker.
func (b *SSEBroker) run(ctx context.Context) {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.events:
			b.broadcast(ev)
		case <-ticker.C:
			b.broadcast(sseEvent{})
		}
	}
}
