package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const complaintsTableName = "complaints"

const schema = `
CREATE TABLE IF NOT EXISTS complaints (
	id           TEXT PRIMARY KEY,
	route_number TEXT NOT NULL DEFAULT '',
	bus_number   TEXT NOT NULL DEFAULT '',
	latitude     DOUBLE PRECISION,
	longitude    DOUBLE PRECISION,
	location     TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT 'other',
	level        TEXT NOT NULL DEFAULT 'medium',
	advice       TEXT NOT NULL DEFAULT '',
	text         TEXT NOT NULL,
	time         TEXT NOT NULL DEFAULT '',
	timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS complaints_timestamp_idx ON complaints ("timestamp" DESC);
`

// Open opens and pings a Postgres connection pool.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// CreateSchema creates the complaints table if it does not exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create %s schema: %w", complaintsTableName, err)
	}
	return nil
}
