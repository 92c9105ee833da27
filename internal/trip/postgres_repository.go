package trip

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

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InsertBatch persists a batch of trips using pgx CopyFrom.
func (r *PostgresRepository) InsertBatch(ctx context.Context, trips []*Trip) error {
	if len(trips) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []interface{}{
			t.TenantID,
			t.StartedAt,
			t.EndedAt,
			t.StartStationID,
			t.EndStationID,
			t.DurationSeconds,
		})
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"trips"},
		[]string{"tenant_id", "started_at", "ended_at", "start_station_id", "end_station_id", "duration_seconds"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy trips: %w", err)
	}
	return nil
}

// ListByTenant retrieves all trips for a tenant.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID station.TenantID) ([]*Trip, error) {
	query := `
		SELECT tenant_id, started_at, ended_at,
			start_station_id, end_station_id, duration_seconds
		FROM trips
		WHERE tenant_id = $1
	`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		var t Trip
		err := rows.Scan(
			&t.TenantID,
			&t.StartedAt,
			&t.EndedAt,
			&t.StartStationID,
			&t.EndStationID,
			&t.DurationSeconds,
		)
		if err != nil {
			return nil, err
		}
		trips = append(trips, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

// DeleteAll removes every trip record.
func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trips`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
