package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bikescope/bikescope/internal/api/models"
	"github.com/bikescope/bikescope/internal/station"
)

func TestDeriveStatusColor(t *testing.T) {
	tests := []struct {
		name  string
		bikes int
		docks int
		want  models.StatusColor
	}{
		{name: "no bikes", bikes: 0, docks: 20, want: models.StatusColorRed},
		{name: "no docks", bikes: 20, docks: 0, want: models.StatusColorRed},
		{name: "low bikes", bikes: 3, docks: 20, want: models.StatusColorYellow},
		{name: "low docks", bikes: 20, docks: 1, want: models.StatusColorYellow},
		{name: "healthy", bikes: 4, docks: 4, want: models.StatusColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DeriveStatusColor(tt.bikes, tt.docks))
		})
	}
}

func TestNewStationView(t *testing.T) {
	lastUpdated := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	view := models.NewStationView(&station.Station{
		StationID: "72",
		TenantID:  station.TenantManhattan,
		Name:      "Central Park N",
		Lat:       40.799,
		Lon:       -73.955,
		Capacity:  40,
		Status: station.Status{
			BikesAvailable: 2,
			DocksAvailable: 38,
			LastUpdated:    lastUpdated,
			IsInstalled:    true,
			IsRenting:      true,
		},
	})

	assert.Equal(t, "72", view.StationID)
	assert.Equal(t, "manhattan", view.TenantID)
	assert.Equal(t, models.StatusColorYellow, view.StatusColor)
	assert.Equal(t, models.Timestamp(lastUpdated), view.LastUpdated)
}
