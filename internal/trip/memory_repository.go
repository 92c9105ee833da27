package trip

import (
	"context"
	"sync"

	"github.com/bikescope/bikescope/internal/station"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips []*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// InsertBatch persists a batch of trips.
func (r *InMemoryRepository) InsertBatch(ctx context.Context, trips []*Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range trips {
		copied := *t
		r.trips = append(r.trips, &copied)
	}
	return nil
}

// ListByTenant retrieves all trips for a tenant in insertion order.
func (r *InMemoryRepository) ListByTenant(ctx context.Context, tenantID station.TenantID) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Trip
	for _, t := range r.trips {
		if t.TenantID == tenantID {
			copied := *t
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// DeleteAll removes every trip record.
func (r *InMemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.trips))
	r.trips = nil
	return n, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
