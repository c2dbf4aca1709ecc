//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/domain"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// setupTestDB connects to TEST_DATABASE_URL and recreates the complaints table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS complaints CASCADE`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := CreateSchema(ctx, db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

func TestComplaintRepository_WriteBatchAndList(t *testing.T) {
	db := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewComplaintRepository(db, logger, 0, nil)
	ctx := context.Background()

	lat, lng := 51.1309, 71.4552
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	subs := []domain.Submission{
		{ID: "a", Text: "first", RouteNumber: "12", BusNumber: "10051", Latitude: &lat, Longitude: &lng, ReceivedAt: base},
		{ID: "b", Text: "second", ReceivedAt: base.Add(time.Minute)},
	}

	if err := repo.WriteBatch(ctx, subs); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	// Redelivery of the same batch is a no-op.
	if err := repo.WriteBatch(ctx, subs); err != nil {
		t.Fatalf("WriteBatch (redelivery): %v", err)
	}

	got, err := repo.ListComplaints(ctx)
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 complaints, got %d", len(got))
	}
	if got[0].Text != "second" {
		t.Errorf("expected newest first, got %q", got[0].Text)
	}
	first := got[1]
	if first.RouteNumber != "12" || first.BusNumber != "10051" || first.Latitude == nil || *first.Latitude != lat {
		t.Errorf("unexpected row: %+v", first)
	}
	if first.Category != domain.CategoryOther || first.Level != domain.LevelMedium {
		t.Errorf("unexpected defaults: %q / %q", first.Category, first.Level)
	}
	if got[0].Latitude != nil {
		t.Errorf("expected NULL latitude, got %v", *got[0].Latitude)
	}
}

func TestComplaintRepository_Cache(t *testing.T) {
	db := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewAPIMetrics(prometheus.NewRegistry())
	repo := NewComplaintRepository(db, logger, time.Minute, m)
	ctx := context.Background()

	if _, err := repo.ListComplaints(ctx); err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if _, err := repo.ListComplaints(ctx); err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if hits := testutil.ToFloat64(m.ComplaintsCacheHit); hits != 1 {
		t.Errorf("cache hits = %v, want 1", hits)
	}

	// Submit invalidates the cache.
	if err := repo.Submit(ctx, domain.Submission{ID: "x", Text: "new", ReceivedAt: time.Now()}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got, err := repo.ListComplaints(ctx)
	if err != nil {
		t.Fatalf("ListComplaints: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected fresh list with 1 complaint, got %d", len(got))
	}
}
