package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements creates the tables and indexes the repositories rely on.
// Every statement is idempotent so provisioning can run at each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		station_id      TEXT PRIMARY KEY,
		tenant_id       TEXT NOT NULL,
		name            TEXT NOT NULL,
		lat             DOUBLE PRECISION NOT NULL,
		lon             DOUBLE PRECISION NOT NULL,
		capacity        INTEGER NOT NULL,
		bikes_available INTEGER NOT NULL,
		docks_available INTEGER NOT NULL,
		last_updated    TIMESTAMPTZ NOT NULL,
		is_installed    BOOLEAN NOT NULL,
		is_renting      BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stations_tenant ON stations (tenant_id)`,

	`CREATE TABLE IF NOT EXISTS alerts (
		id           TEXT PRIMARY KEY,
		tenant_id    TEXT NOT NULL,
		station_id   TEXT NOT NULL,
		station_name TEXT NOT NULL,
		type         TEXT NOT NULL,
		severity     TEXT NOT NULL,
		timestamp    TIMESTAMPTZ NOT NULL,
		resolved     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_tenant_ts ON alerts (tenant_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_station_ts ON alerts (station_id, timestamp DESC)`,

	`CREATE TABLE IF NOT EXISTS trips (
		id               BIGSERIAL PRIMARY KEY,
		tenant_id        TEXT NOT NULL,
		started_at       TIMESTAMPTZ NOT NULL,
		ended_at         TIMESTAMPTZ,
		start_station_id TEXT NOT NULL,
		end_station_id   TEXT,
		duration_seconds INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_tenant ON trips (tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_start_station ON trips (start_station_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_started_at ON trips (started_at DESC)`,
}

// EnsureSchema provisions the tables and indexes used by the repositories.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
