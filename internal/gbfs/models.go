// Package gbfs provides a client for GBFS-style bike-share feeds.
package gbfs

import (
	"errors"
	"time"
)

// Feed errors.
var (
	ErrFeedUnavailable = errors.New("gbfs feed unavailable")
	ErrMissingFields   = errors.New("gbfs record missing required fields")
)

// informationDocument is the wire shape of the station information feed.
type informationDocument struct {
	Data struct {
		Stations []MetadataRecord `json:"stations"`
	} `json:"data"`
}

// statusDocument is the wire shape of the station status feed.
type statusDocument struct {
	Data struct {
		Stations []StatusRecord `json:"stations"`
	} `json:"data"`
}

// MetadataRecord is one station entry from the information feed.
type MetadataRecord struct {
	StationID string  `json:"station_id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Capacity  int     `json:"capacity"`
}

// Validate checks the required information-feed fields.
func (m *MetadataRecord) Validate() error {
	if m.StationID == "" || m.Name == "" || m.Capacity <= 0 {
		return ErrMissingFields
	}
	if m.Lat < -90 || m.Lat > 90 || m.Lon < -180 || m.Lon > 180 {
		return ErrMissingFields
	}
	return nil
}

// StatusRecord is one station entry from the status feed.
// is_installed and is_renting default to true when the feed omits them.
type StatusRecord struct {
	StationID         string `json:"station_id"`
	NumBikesAvailable int    `json:"num_bikes_available"`
	NumDocksAvailable int    `json:"num_docks_available"`
	LastReported      int64  `json:"last_reported"`
	IsInstalled       *bool  `json:"is_installed,omitempty"`
	IsRenting         *bool  `json:"is_renting,omitempty"`
}

// Validate checks the required status-feed fields.
func (s *StatusRecord) Validate() error {
	if s.StationID == "" || s.LastReported == 0 {
		return ErrMissingFields
	}
	if s.NumBikesAvailable < 0 || s.NumDocksAvailable < 0 {
		return ErrMissingFields
	}
	return nil
}

// Installed reports the is_installed flag, defaulting to true.
func (s *StatusRecord) Installed() bool {
	if s.IsInstalled == nil {
		return true
	}
	return *s.IsInstalled
}

// Renting reports the is_renting flag, defaulting to true.
func (s *StatusRecord) Renting() bool {
	if s.IsRenting == nil {
		return true
	}
	return *s.IsRenting
}

// ReportedAt converts the status feed's epoch seconds to a timestamp.
func (s *StatusRecord) ReportedAt() time.Time {
	return time.Unix(s.LastReported, 0)
}

// Snapshot holds one joined retrieval of both feeds.
type Snapshot struct {
	Metadata  []MetadataRecord
	Status    []StatusRecord
	FetchedAt time.Time
}
