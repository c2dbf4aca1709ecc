package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/lib/pq"
)

const listQuery = `
	SELECT route_number, bus_number, latitude, longitude, location,
	       category, level, advice, text, time
	FROM complaints
	ORDER BY timestamp DESC`

// ComplaintRepository reads and writes the complaints table. It implements
// domain.ComplaintReader, domain.SubmissionSink and domain.SubmissionWriter.
// List results are cached in memory for cacheTTL.
type ComplaintRepository struct {
	db       *sql.DB
	logger   *slog.Logger
	cacheTTL time.Duration
	metrics  *metrics.APIMetrics

	mu        sync.RWMutex
	cached    []domain.Complaint
	expiresAt time.Time
}

// NewComplaintRepository creates a new PostgreSQL complaint repository. A
// zero cacheTTL disables caching; m may be nil.
func NewComplaintRepository(db *sql.DB, logger *slog.Logger, cacheTTL time.Duration, m *metrics.APIMetrics) *ComplaintRepository {
	return &ComplaintRepository{
		db:       db,
		logger:   logger.With("component", "postgres_complaint_repository"),
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// ListComplaints returns every complaint, newest first. The returned slice
// may be shared with other callers and must not be modified.
func (r *ComplaintRepository) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	if r.cacheTTL <= 0 {
		return r.queryComplaints(ctx)
	}

	r.mu.RLock()
	cached, fresh := r.cached, time.Now().Before(r.expiresAt)
	r.mu.RUnlock()

	if fresh {
		if r.metrics != nil {
			r.metrics.ComplaintsCacheHit.Inc()
		}
		return cached, nil
	}

	if r.metrics != nil {
		r.metrics.ComplaintsCacheMiss.Inc()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another request may have refreshed the cache while we waited.
	if time.Now().Before(r.expiresAt) {
		return r.cached, nil
	}

	complaints, err := r.queryComplaints(ctx)
	if err != nil {
		// Errors are not cached.
		return nil, err
	}
	r.cached = complaints
	r.expiresAt = time.Now().Add(r.cacheTTL)
	return complaints, nil
}

func (r *ComplaintRepository) queryComplaints(ctx context.Context) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		r.logger.Error("failed to query complaints", "error", err)
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	complaints := make([]domain.Complaint, 0)
	for rows.Next() {
		var (
			c        domain.Complaint
			bus      string
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&c.RouteNumber, &bus, &lat, &lng, &c.Location,
			&c.Category, &c.Level, &c.Advice, &c.Text, &c.Time); err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		c.BusNumber = domain.FlexString(bus)
		if lat.Valid {
			c.Latitude = &lat.Float64
		}
		if lng.Valid {
			c.Longitude = &lng.Float64
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read complaints: %w", err)
	}
	return complaints, nil
}

// Submit inserts one submission directly. Used when no stream buffer is configured.
func (r *ComplaintRepository) Submit(ctx context.Context, sub domain.Submission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO complaints (id, route_number, bus_number, latitude, longitude, text, time, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		submissionArgs(sub)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}
	r.invalidate()
	return nil
}

// WriteBatch writes submissions using the COPY protocol into a temporary
// table and merges them into complaints. Rows whose id already exists are
// skipped, so redelivered batches are harmless.
func (r *ComplaintRepository) WriteBatch(ctx context.Context, subs []domain.Submission) error {
	if len(subs) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	const tempTableName = "complaints_temp_import"
	_, err = txn.ExecContext(ctx, `CREATE TEMP TABLE `+tempTableName+` (LIKE complaints INCLUDING DEFAULTS) ON COMMIT DROP;`)
	if err != nil {
		return err
	}

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn(tempTableName,
		"id", "route_number", "bus_number", "latitude", "longitude", "text", "time", "timestamp"))
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if _, err := stmt.ExecContext(ctx, submissionArgs(sub)...); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	_, err = txn.ExecContext(ctx, `
		INSERT INTO complaints (id, route_number, bus_number, latitude, longitude, text, time, timestamp)
		SELECT id, route_number, bus_number, latitude, longitude, text, time, timestamp FROM `+tempTableName+`
		ON CONFLICT (id) DO NOTHING;`)
	if err != nil {
		return err
	}

	if err := txn.Commit(); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func submissionArgs(sub domain.Submission) []interface{} {
	return []interface{}{
		sub.ID,
		sub.RouteNumber,
		string(sub.BusNumber),
		sub.Latitude,
		sub.Longitude,
		sub.Text,
		sub.ReceivedAt.Format(time.RFC3339),
		sub.ReceivedAt,
	}
}

func (r *ComplaintRepository) invalidate() {
	r.mu.Lock()
	r.expiresAt = time.Time{}
	r.mu.Unlock()
}
