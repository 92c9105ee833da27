package station

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu       sync.RWMutex
	stations map[string]*Station
}

// NewInMemoryRepository creates a new in-memory station repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		stations: make(map[string]*Station),
	}
}

// Upsert inserts or fully replaces a station by station ID.
func (r *InMemoryRepository) Upsert(ctx context.Context, s *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *s
	r.stations[s.StationID] = &copied
	return nil
}

// Get retrieves a station by ID.
func (r *InMemoryRepository) Get(ctx context.Context, stationID string) (*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stations[stationID]
	if !ok {
		return nil, ErrStationNotFound
	}
	copied := *s
	return &copied, nil
}

// ListByTenant retrieves all stations for a tenant, ordered by station ID.
func (r *InMemoryRepository) ListByTenant(ctx context.Context, tenantID TenantID) ([]*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stations []*Station
	for _, s := range r.stations {
		if s.TenantID == tenantID {
			copied := *s
			stations = append(stations, &copied)
		}
	}

	sort.Slice(stations, func(i, j int) bool {
		return stations[i].StationID < stations[j].StationID
	})

	return stations, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
