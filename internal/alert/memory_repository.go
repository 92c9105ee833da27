package alert

import (
	"context"
	"sort"
	"sync"

	"github.com/bikescope/bikescope/internal/station"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu     sync.RWMutex
	alerts []*Alert
}

// NewInMemoryRepository creates a new in-memory alert repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// InsertBatch persists a batch of alerts.
func (r *InMemoryRepository) InsertBatch(ctx context.Context, alerts []*Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range alerts {
		copied := *a
		r.alerts = append(r.alerts, &copied)
	}
	return nil
}

// ListUnresolved retrieves unresolved alerts for a tenant, newest first.
func (r *InMemoryRepository) ListUnresolved(ctx context.Context, tenantID station.TenantID, limit int) ([]*Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Alert
	for _, a := range r.alerts {
		if a.TenantID == tenantID && !a.Resolved {
			copied := *a
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	limit = clampLimit(limit)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// All returns every stored alert in insertion order.
func (r *InMemoryRepository) All() []*Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		copied := *a
		out = append(out, &copied)
	}
	return out
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
