// Package alert provides threshold alert derivation and storage.
package alert

import (
	"time"

	"github.com/bikescope/bikescope/internal/station"
)

// Type classifies an alert condition.
type Type string

const (
	TypeLowBikes    Type = "low_bikes"
	TypeFullStation Type = "full_station"
	TypeOffline     Type = "offline"
)

// Severity classifies alert urgency.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one detected threshold condition for a station.
// Alerts are immutable once written; only the Resolved flag is mutated,
// and that happens outside this service.
type Alert struct {
	ID          string
	TenantID    station.TenantID
	StationID   string
	StationName string
	Type        Type
	Severity    Severity
	Timestamp   time.Time
	Resolved    bool
}
