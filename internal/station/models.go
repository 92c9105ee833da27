// Package station provides bike-share station models and storage.
package station

import (
	"errors"
	"fmt"
	"time"
)

// Station errors.
var (
	ErrStationNotFound = errors.New("station not found")
	ErrInvalidTenant   = errors.New("invalid tenant id")
)

// TenantID identifies a geographic tenant partition.
type TenantID string

const (
	TenantManhattan TenantID = "manhattan"
	TenantBrooklyn  TenantID = "brooklyn"
)

// ParseTenantID validates a raw tenant identifier.
func ParseTenantID(raw string) (TenantID, error) {
	switch TenantID(raw) {
	case TenantManhattan, TenantBrooklyn:
		return TenantID(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTenant, raw)
	}
}

// Status represents the live availability state of a station.
type Status struct {
	BikesAvailable int
	DocksAvailable int
	LastUpdated    time.Time
	IsInstalled    bool
	IsRenting      bool
}

// Station is the canonical merged representation of one bike-share station,
// combining feed metadata with its most recent status.
type Station struct {
	StationID string
	TenantID  TenantID
	Name      string
	Lat       float64
	Lon       float64
	Capacity  int
	Status    Status
}
