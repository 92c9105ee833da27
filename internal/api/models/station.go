package models

import "github.com/bikescope/bikescope/internal/station"

// StationView is the API representation of a monitored station.
type StationView struct {
	StationID      string      `json:"station_id"`
	TenantID       string      `json:"tenant_id"`
	Name           string      `json:"name"`
	Lat            float64     `json:"lat"`
	Lon            float64     `json:"lon"`
	Capacity       int         `json:"capacity"`
	BikesAvailable int         `json:"bikes_available"`
	DocksAvailable int         `json:"docks_available"`
	IsInstalled    bool        `json:"is_installed"`
	IsRenting      bool        `json:"is_renting"`
	LastUpdated    Timestamp   `json:"last_updated"`
	StatusColor    StatusColor `json:"status_color"`
}

// StationList is the response for a tenant's station listing.
type StationList struct {
	TenantID string        `json:"tenant_id"`
	Count    int           `json:"count"`
	Stations []StationView `json:"stations"`
}

// RefreshResult reports the outcome of a manually triggered ingestion cycle.
type RefreshResult struct {
	Status      string    `json:"status"`
	CompletedAt Timestamp `json:"completed_at"`
}

// NewStationView maps a stored station to its API view, deriving the
// status color from current availability.
func NewStationView(s *station.Station) StationView {
	return StationView{
		StationID:      s.StationID,
		TenantID:       string(s.TenantID),
		Name:           s.Name,
		Lat:            s.Lat,
		Lon:            s.Lon,
		Capacity:       s.Capacity,
		BikesAvailable: s.Status.BikesAvailable,
		DocksAvailable: s.Status.DocksAvailable,
		IsInstalled:    s.Status.IsInstalled,
		IsRenting:      s.Status.IsRenting,
		LastUpdated:    Timestamp(s.Status.LastUpdated),
		StatusColor:    DeriveStatusColor(s.Status.BikesAvailable, s.Status.DocksAvailable),
	}
}

// DeriveStatusColor classifies availability: red when either side is
// exhausted, yellow when either side is at or below three, green otherwise.
func DeriveStatusColor(bikes, docks int) StatusColor {
	switch {
	case bikes == 0 || docks == 0:
		return StatusColorRed
	case bikes <= 3 || docks <= 3:
		return StatusColorYellow
	default:
		return StatusColorGreen
	}
}
