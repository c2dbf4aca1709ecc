package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
)

// PollState is the dashboard's view of the upstream complaint list.
type PollState struct {
	Complaints  []domain.Complaint
	Loading     bool
	Err         error
	LastUpdated time.Time
}

// PollerConfig controls polling cadence and retry behaviour.
type PollerConfig struct {
	Interval     time.Duration
	Timeout      time.Duration
	RetryCount   int
	RetryBackoff time.Duration
}

// ComplaintPoller keeps a fresh copy of the upstream complaint list.
// Polls are serialised, so at most one request is in flight.
type ComplaintPoller struct {
	source  domain.ComplaintSource
	cfg     PollerConfig
	logger  *slog.Logger
	metrics *metrics.DashboardMetrics

	pollMu sync.Mutex

	mu    sync.RWMutex
	state PollState

	subMu       sync.Mutex
	subscribers []func(PollState)
}

// NewComplaintPoller creates a poller in the loading state. m may be nil.
func NewComplaintPoller(source domain.ComplaintSource, cfg PollerConfig, logger *slog.Logger, m *metrics.DashboardMetrics) *ComplaintPoller {
	if cfg.RetryCount < 1 {
		cfg.RetryCount = 1
	}
	return &ComplaintPoller{
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		state: PollState{
			Complaints: []domain.Complaint{},
			Loading:    true,
		},
	}
}

// Subscribe registers fn to be called after every state change.
// fn must not block.
func (p *ComplaintPoller) Subscribe(fn func(PollState)) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Snapshot returns the current state. The record slice is shared and must
// not be modified.
func (p *ComplaintPoller) Snapshot() PollState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Run polls immediately and then on every tick until ctx is cancelled.
func (p *ComplaintPoller) Run(ctx context.Context) {
	p.logger.Info("starting complaint poller", "interval", p.cfg.Interval)
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			p.logger.Info("complaint poller stopped")
			return
		case <-ticker.C:
		}
	}
}

// Refresh performs one poll with retries and publishes the outcome.
// Cancellation of ctx leaves the state untouched.
func (p *ComplaintPoller) Refresh(ctx context.Context) error {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	start := time.Now()
	complaints, err := p.fetchWithRetry(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	p.observe(time.Since(start), len(complaints), err)

	p.mu.Lock()
	p.state.Loading = false
	if err != nil {
		p.state.Err = err
	} else {
		if complaints == nil {
			complaints = []domain.Complaint{}
		}
		p.state.Complaints = complaints
		p.state.Err = nil
		p.state.LastUpdated = time.Now()
	}
	snapshot := p.state
	p.mu.Unlock()

	p.notify(snapshot)
	return err
}

func (p *ComplaintPoller) fetchWithRetry(ctx context.Context) ([]domain.Complaint, error) {
	var lastErr error
	for i := 0; i < p.cfg.RetryCount; i++ {
		complaints, err := p.fetchOnce(ctx)
		if err == nil {
			return complaints, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Debug("fetch attempt failed", "attempt", i+1, "error", err)
		if i == p.cfg.RetryCount-1 {
			break
		}
		select {
		case <-time.After(p.cfg.RetryBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetch complaints after %d attempts: %w", p.cfg.RetryCount, lastErr)
}

func (p *ComplaintPoller) fetchOnce(ctx context.Context) ([]domain.Complaint, error) {
	if p.cfg.Timeout <= 0 {
		return p.source.FetchComplaints(ctx)
	}
	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	complaints, err := p.source.FetchComplaints(reqCtx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, fmt.Errorf("request timed out after %s: %w", p.cfg.Timeout, err)
	}
	return complaints, err
}

func (p *ComplaintPoller) notify(s PollState) {
	p.subMu.Lock()
	subs := make([]func(PollState), len(p.subscribers))
	copy(subs, p.subscribers)
	p.subMu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (p *ComplaintPoller) observe(d time.Duration, records int, err error) {
	if p.metrics == nil {
		return
	}
	p.metrics.PollDuration.Observe(d.Seconds())
	if err != nil {
		p.metrics.PollsTotal.WithLabelValues("error").Inc()
		return
	}
	p.metrics.PollsTotal.WithLabelValues("success").Inc()
	p.metrics.Records.Set(float64(records))
	p.metrics.LastSuccess.SetToCurrentTime()
}
