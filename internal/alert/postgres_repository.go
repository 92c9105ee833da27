package alert

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bikescope/bikescope/internal/station"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL alert repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InsertBatch persists a batch of alerts in a single transaction.
func (r *PostgresRepository) InsertBatch(ctx context.Context, alerts []*Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin alert batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	batch := &pgx.Batch{}
	query := `
		INSERT INTO alerts (
			id, tenant_id, station_id, station_name,
			type, severity, timestamp, resolved
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, a := range alerts {
		batch.Queue(query,
			a.ID,
			a.TenantID,
			a.StationID,
			a.StationName,
			a.Type,
			a.Severity,
			a.Timestamp,
			a.Resolved,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range alerts {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListUnresolved retrieves unresolved alerts for a tenant, newest first.
func (r *PostgresRepository) ListUnresolved(ctx context.Context, tenantID station.TenantID, limit int) ([]*Alert, error) {
	query := `
		SELECT id, tenant_id, station_id, station_name,
			type, severity, timestamp, resolved
		FROM alerts
		WHERE tenant_id = $1 AND resolved = false
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, tenantID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		var a Alert
		err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.StationID,
			&a.StationName,
			&a.Type,
			&a.Severity,
			&a.Timestamp,
			&a.Resolved,
		)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
