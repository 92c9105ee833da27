package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/bikescope/bikescope/internal/station"
)

// availabilityThreshold is the bike/dock count at or below which a
// low_bikes or full_station alert fires.
const availabilityThreshold = 3

// Detect evaluates the three alert conditions against a canonical station
// state. Any subset may fire in the same call. Detection does not suppress
// repeats: a station still below threshold next cycle yields a fresh alert.
func Detect(s *station.Station, detectedAt time.Time) []*Alert {
	var alerts []*Alert

	newAlert := func(alertType Type, severity Severity) *Alert {
		return &Alert{
			ID:          uuid.New().String(),
			TenantID:    s.TenantID,
			StationID:   s.StationID,
			StationName: s.Name,
			Type:        alertType,
			Severity:    severity,
			Timestamp:   detectedAt,
			Resolved:    false,
		}
	}

	if s.Status.BikesAvailable <= availabilityThreshold {
		severity := SeverityWarning
		if s.Status.BikesAvailable == 0 {
			severity = SeverityCritical
		}
		alerts = append(alerts, newAlert(TypeLowBikes, severity))
	}

	if s.Status.DocksAvailable <= availabilityThreshold {
		severity := SeverityWarning
		if s.Status.DocksAvailable == 0 {
			severity = SeverityCritical
		}
		alerts = append(alerts, newAlert(TypeFullStation, severity))
	}

	if !s.Status.IsInstalled || !s.Status.IsRenting {
		alerts = append(alerts, newAlert(TypeOffline, SeverityCritical))
	}

	return alerts
}
