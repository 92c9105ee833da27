// Package ingest drives the feed ingestion, merge, and alert pipeline.
package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/gbfs"
	"github.com/bikescope/bikescope/internal/station"
)

// MergerConfig holds configuration for the station merger.
type MergerConfig struct {
	Stations station.Repository
	Logger   zerolog.Logger
}

// Merger joins metadata and status feed records into canonical stations
// and upserts them into station storage.
type Merger struct {
	stations station.Repository
	logger   zerolog.Logger
}

// NewMerger creates a new station merger.
func NewMerger(cfg MergerConfig) *Merger {
	return &Merger{
		stations: cfg.Stations,
		logger:   cfg.Logger,
	}
}

// Merge joins the two record sets by station id and upserts each matched
// pair. Metadata without a matching status record is skipped silently; the
// station simply is not updated this cycle. Records failing field
// validation are skipped the same way. The upsert is a full-document
// replace, so merging identical input twice stores identical documents.
//
// Returns the canonicalized stations for same-cycle alert evaluation and
// the number upserted. An upsert error aborts the merge; stations already
// upserted this cycle stay committed.
func (m *Merger) Merge(ctx context.Context, metadata []gbfs.MetadataRecord, status []gbfs.StatusRecord) ([]*station.Station, int, error) {
	statusByID := make(map[string]gbfs.StatusRecord, len(status))
	for _, rec := range status {
		if err := rec.Validate(); err != nil {
			m.logger.Debug().Str("station_id", rec.StationID).Err(err).Msg("skipping invalid status record")
			continue
		}
		statusByID[rec.StationID] = rec
	}

	var merged []*station.Station
	for i := range metadata {
		meta := metadata[i]
		if err := meta.Validate(); err != nil {
			m.logger.Debug().Str("station_id", meta.StationID).Err(err).Msg("skipping invalid metadata record")
			continue
		}

		rec, ok := statusByID[meta.StationID]
		if !ok {
			continue
		}

		s := canonicalStation(meta, rec)
		if err := m.stations.Upsert(ctx, s); err != nil {
			return merged, len(merged), fmt.Errorf("upsert station %s: %w", s.StationID, err)
		}
		merged = append(merged, s)
	}

	return merged, len(merged), nil
}

// canonicalStation assembles the merged station state from a validated
// metadata/status pair.
func canonicalStation(meta gbfs.MetadataRecord, rec gbfs.StatusRecord) *station.Station {
	return &station.Station{
		StationID: meta.StationID,
		TenantID:  station.AssignTenant(meta.Lat),
		Name:      meta.Name,
		Lat:       meta.Lat,
		Lon:       meta.Lon,
		Capacity:  meta.Capacity,
		Status: station.Status{
			BikesAvailable: rec.NumBikesAvailable,
			DocksAvailable: rec.NumDocksAvailable,
			LastUpdated:    rec.ReportedAt(),
			IsInstalled:    rec.Installed(),
			IsRenting:      rec.Renting(),
		},
	}
}
