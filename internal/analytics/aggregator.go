package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/station"
	"github.com/bikescope/bikescope/internal/trip"
)

// topStationCount is how many stations the ranking returns.
const topStationCount = 5

// Duration bounds, in minutes, applied when averaging. Upstream import
// cleaning already bounds trips to [60s, 86400s]; the aggregate re-filters
// anyway so it stays correct against uncleaned history.
const (
	minDurationMinutes = 1.0
	maxDurationMinutes = 1440.0
)

// AggregatorConfig holds configuration for the analytics aggregator.
type AggregatorConfig struct {
	Trips    trip.Repository
	Stations station.Repository
	Logger   zerolog.Logger
}

// Aggregator computes tenant analytics from persisted trip history.
type Aggregator struct {
	trips    trip.Repository
	stations station.Repository
	logger   zerolog.Logger
}

// NewAggregator creates a new analytics aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	return &Aggregator{
		trips:    cfg.Trips,
		stations: cfg.Stations,
		logger:   cfg.Logger,
	}
}

// TenantAnalytics loads a tenant's trip history and aggregates it.
func (a *Aggregator) TenantAnalytics(ctx context.Context, tenantID station.TenantID) (*Analytics, error) {
	trips, err := a.trips.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	result := a.Aggregate(ctx, trips, tenantID)

	a.logger.Debug().
		Str("tenant_id", string(tenantID)).
		Int("total_trips", result.TotalTrips).
		Int("peak_hour", result.PeakHour).
		Msg("tenant analytics computed")

	return result, nil
}

// Aggregate computes the analytics for one tenant's trips. An empty trip
// set yields the zero-valued Analytics rather than an error.
func (a *Aggregator) Aggregate(ctx context.Context, trips []*trip.Trip, tenantID station.TenantID) *Analytics {
	result := &Analytics{
		TopStations: []TopStation{},
		TotalTrips:  len(trips),
	}
	if len(trips) == 0 {
		return result
	}

	result.TopStations = a.topStations(ctx, trips, tenantID)
	result.AvgTripDurationMinutes = avgDurationMinutes(trips)
	result.PeakHour = peakHour(trips)
	return result
}

// topStations ranks start stations by trip count. Ties keep the
// first-encountered order from the trip list, not station id order.
func (a *Aggregator) topStations(ctx context.Context, trips []*trip.Trip, tenantID station.TenantID) []TopStation {
	counts := make(map[string]int)
	var order []string
	for _, t := range trips {
		if t.StartStationID == "" {
			continue
		}
		if _, seen := counts[t.StartStationID]; !seen {
			order = append(order, t.StartStationID)
		}
		counts[t.StartStationID]++
	}

	ranked := rankByCount(order, counts, topStationCount)

	top := make([]TopStation, 0, len(ranked))
	for _, stationID := range ranked {
		top = append(top, TopStation{
			StationID: stationID,
			Name:      a.resolveName(ctx, stationID, tenantID),
			TripCount: counts[stationID],
		})
	}
	return top
}

// resolveName looks up the station's display name, falling back to a
// synthetic label when the station is missing or belongs to another tenant.
func (a *Aggregator) resolveName(ctx context.Context, stationID string, tenantID station.TenantID) string {
	s, err := a.stations.Get(ctx, stationID)
	if err != nil || s.TenantID != tenantID {
		return fmt.Sprintf("Station %s", stationID)
	}
	return s.Name
}

// avgDurationMinutes averages trip durations in minutes over the trips
// inside [1, 1440] minutes, rounded to two decimal places.
func avgDurationMinutes(trips []*trip.Trip) float64 {
	var sum float64
	var n int
	for _, t := range trips {
		if t.DurationSeconds == 0 {
			continue
		}
		minutes := float64(t.DurationSeconds) / 60
		if minutes < minDurationMinutes || minutes > maxDurationMinutes {
			continue
		}
		sum += minutes
		n++
	}
	if n == 0 {
		return 0.0
	}
	return math.Round(sum/float64(n)*100) / 100
}

// peakHour finds the hour-of-day with the most trip starts. Ties keep the
// first-encountered hour; trips without a usable timestamp are skipped.
func peakHour(trips []*trip.Trip) int {
	counts := make(map[int]int)
	var order []int
	for _, t := range trips {
		if t.StartedAt.IsZero() {
			continue
		}
		hour := t.StartedAt.Hour()
		if _, seen := counts[hour]; !seen {
			order = append(order, hour)
		}
		counts[hour]++
	}

	peak := 0
	best := 0
	for _, hour := range order {
		if counts[hour] > best {
			best = counts[hour]
			peak = hour
		}
	}
	return peak
}

// rankByCount returns up to limit keys ordered by descending count,
// breaking ties by the given first-encountered order.
func rankByCount(order []string, counts map[string]int, limit int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)

	// Stable insertion sort keeps encounter order among equal counts.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && counts[ranked[j]] > counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
