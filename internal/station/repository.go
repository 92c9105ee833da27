package station

import "context"

// Repository defines storage operations for stations.
type Repository interface {
	// Upsert inserts the station or fully replaces the stored document
	// with the same station ID.
	Upsert(ctx context.Context, s *Station) error

	// Get retrieves a station by ID.
	Get(ctx context.Context, stationID string) (*Station, error)

	// ListByTenant retrieves all stations for a tenant.
	ListByTenant(ctx context.Context, tenantID TenantID) ([]*Station, error)
}
