// Package analytics computes per-tenant usage statistics from trip history.
package analytics

// TopStation is one entry in the top-stations ranking.
type TopStation struct {
	StationID string `json:"station_id"`
	Name      string `json:"name"`
	TripCount int    `json:"trip_count"`
}

// Analytics holds the aggregated usage statistics for one tenant.
type Analytics struct {
	TopStations            []TopStation `json:"top_stations"`
	AvgTripDurationMinutes float64      `json:"avg_trip_duration"`
	PeakHour               int          `json:"peak_hour"`
	TotalTrips             int          `json:"total_trips"`
}
