// Package trip provides historical trip records and bulk import.
package trip

import (
	"time"

	"github.com/bikescope/bikescope/internal/station"
)

// Trip is one historical ride between two stations.
type Trip struct {
	TenantID        station.TenantID
	StartedAt       time.Time
	EndedAt         time.Time
	StartStationID  string
	EndStationID    string
	DurationSeconds int
}
