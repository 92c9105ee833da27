package trip

import (
	"context"

	"github.com/bikescope/bikescope/internal/station"
)

// Repository defines storage operations for trips.
type Repository interface {
	// InsertBatch persists a batch of trips.
	InsertBatch(ctx context.Context, trips []*Trip) error

	// ListByTenant retrieves all trips for a tenant.
	ListByTenant(ctx context.Context, tenantID station.TenantID) ([]*Trip, error)

	// DeleteAll removes every trip record. Used by the bulk importer to
	// replace the history wholesale.
	DeleteAll(ctx context.Context) (int64, error)
}
