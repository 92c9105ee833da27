package alert

import (
	"context"

	"github.com/bikescope/bikescope/internal/station"
)

// Default and maximum page sizes for alert listings.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Repository defines storage operations for alerts.
type Repository interface {
	// InsertBatch persists a batch of alerts atomically.
	InsertBatch(ctx context.Context, alerts []*Alert) error

	// ListUnresolved retrieves unresolved alerts for a tenant, newest first.
	// A non-positive limit falls back to DefaultListLimit; limits above
	// MaxListLimit are clamped.
	ListUnresolved(ctx context.Context, tenantID station.TenantID, limit int) ([]*Alert, error)
}

// clampLimit normalizes a listing limit to [1, MaxListLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
