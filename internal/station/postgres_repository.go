package station

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL station repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Upsert inserts or fully replaces a station by station_id.
func (r *PostgresRepository) Upsert(ctx context.Context, s *Station) error {
	query := `
		INSERT INTO stations (
			station_id, tenant_id, name, lat, lon, capacity,
			bikes_available, docks_available, last_updated,
			is_installed, is_renting
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (station_id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			capacity = EXCLUDED.capacity,
			bikes_available = EXCLUDED.bikes_available,
			docks_available = EXCLUDED.docks_available,
			last_updated = EXCLUDED.last_updated,
			is_installed = EXCLUDED.is_installed,
			is_renting = EXCLUDED.is_renting
	`

	_, err := r.pool.Exec(ctx, query,
		s.StationID,
		s.TenantID,
		s.Name,
		s.Lat,
		s.Lon,
		s.Capacity,
		s.Status.BikesAvailable,
		s.Status.DocksAvailable,
		s.Status.LastUpdated,
		s.Status.IsInstalled,
		s.Status.IsRenting,
	)
	return err
}

// Get retrieves a station by ID.
func (r *PostgresRepository) Get(ctx context.Context, stationID string) (*Station, error) {
	query := `
		SELECT
			station_id, tenant_id, name, lat, lon, capacity,
			bikes_available, docks_available, last_updated,
			is_installed, is_renting
		FROM stations
		WHERE station_id = $1
	`

	var s Station
	err := r.pool.QueryRow(ctx, query, stationID).Scan(
		&s.StationID,
		&s.TenantID,
		&s.Name,
		&s.Lat,
		&s.Lon,
		&s.Capacity,
		&s.Status.BikesAvailable,
		&s.Status.DocksAvailable,
		&s.Status.LastUpdated,
		&s.Status.IsInstalled,
		&s.Status.IsRenting,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}

	return &s, nil
}

// ListByTenant retrieves all stations for a tenant.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID TenantID) ([]*Station, error) {
	query := `
		SELECT
			station_id, tenant_id, name, lat, lon, capacity,
			bikes_available, docks_available, last_updated,
			is_installed, is_renting
		FROM stations
		WHERE tenant_id = $1
		ORDER BY station_id
	`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []*Station
	for rows.Next() {
		var s Station
		err := rows.Scan(
			&s.StationID,
			&s.TenantID,
			&s.Name,
			&s.Lat,
			&s.Lon,
			&s.Capacity,
			&s.Status.BikesAvailable,
			&s.Status.DocksAvailable,
			&s.Status.LastUpdated,
			&s.Status.IsInstalled,
			&s.Status.IsRenting,
		)
		if err != nil {
			return nil, err
		}
		stations = append(stations, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
