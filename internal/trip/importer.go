package trip

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/station"
)

// Importer errors.
var (
	ErrMissingColumns = errors.New("csv missing required columns")
)

// Duration bounds applied during import cleaning.
const (
	minTripDuration = 60 * time.Second
	maxTripDuration = 24 * time.Hour
)

// columnAliases maps the header-name variants seen across trip data exports
// to canonical column names.
var columnAliases = map[string]string{
	"starttime":               "started_at",
	"start time":              "started_at",
	"started_at":              "started_at",
	"stoptime":                "ended_at",
	"stop time":               "ended_at",
	"ended_at":                "ended_at",
	"start station id":        "start_station_id",
	"start_station_id":        "start_station_id",
	"end station id":          "end_station_id",
	"end_station_id":          "end_station_id",
	"start station latitude":  "start_lat",
	"start_lat":               "start_lat",
	"start station longitude": "start_lng",
	"start_lng":               "start_lng",
	"tripduration":            "duration_seconds",
	"duration_seconds":        "duration_seconds",
}

// timeLayouts are the timestamp formats accepted in trip exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05.9999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ImporterConfig holds configuration for the CSV trip importer.
type ImporterConfig struct {
	Trips    Repository
	Stations station.Repository
	Logger   zerolog.Logger

	// BatchSize is the insert batch size (default: 5000).
	BatchSize int

	// ReplaceExisting clears the trips collection before importing.
	ReplaceExisting bool
}

// Importer loads historical trip CSV exports into trip storage.
type Importer struct {
	trips           Repository
	stations        station.Repository
	logger          zerolog.Logger
	batchSize       int
	replaceExisting bool
}

// NewImporter creates a new CSV trip importer.
func NewImporter(cfg ImporterConfig) *Importer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5000
	}

	return &Importer{
		trips:           cfg.Trips,
		stations:        cfg.Stations,
		logger:          cfg.Logger,
		batchSize:       batchSize,
		replaceExisting: cfg.ReplaceExisting,
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Read     int
	Imported int
	Skipped  int
	Cleared  int64
}

// Import reads a trip CSV export, cleans it, assigns tenants, and inserts
// the surviving rows in batches. Rows with unparseable timestamps, missing
// start stations, or durations outside [1 min, 24 h] are dropped.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := mapColumns(header)
	for _, required := range []string{"started_at", "ended_at", "start_station_id"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, required)
		}
	}

	result := &ImportResult{}
	if i.replaceExisting {
		cleared, err := i.trips.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("clear existing trips: %w", err)
		}
		result.Cleared = cleared
		i.logger.Info().Int64("cleared", cleared).Msg("cleared existing trip records")
	}

	var batch []*Trip
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		result.Read++

		t, ok := i.parseRow(ctx, columns, row)
		if !ok {
			result.Skipped++
			continue
		}

		batch = append(batch, t)
		if len(batch) >= i.batchSize {
			if err := i.flush(ctx, batch, result); err != nil {
				return nil, err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := i.flush(ctx, batch, result); err != nil {
			return nil, err
		}
	}

	i.logger.Info().
		Int("read", result.Read).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("trip import completed")

	return result, nil
}

func (i *Importer) flush(ctx context.Context, batch []*Trip, result *ImportResult) error {
	if err := i.trips.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert trip batch: %w", err)
	}
	result.Imported += len(batch)
	i.logger.Debug().Int("batch", len(batch)).Msg("inserted trip batch")
	return nil
}

// parseRow converts one CSV row to a Trip, reporting false for rows that
// fail cleaning.
func (i *Importer) parseRow(ctx context.Context, columns map[string]int, row []string) (*Trip, bool) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	startStationID := field("start_station_id")
	if startStationID == "" {
		return nil, false
	}

	startedAt, err := parseTime(field("started_at"))
	if err != nil {
		return nil, false
	}
	endedAt, err := parseTime(field("ended_at"))
	if err != nil {
		return nil, false
	}

	duration := endedAt.Sub(startedAt)
	if raw := field("duration_seconds"); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil {
			duration = time.Duration(secs * float64(time.Second))
		}
	}
	if duration < minTripDuration || duration > maxTripDuration {
		return nil, false
	}

	return &Trip{
		TenantID:        i.assignTenant(ctx, startStationID, field("start_lat")),
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		StartStationID:  startStationID,
		EndStationID:    field("end_station_id"),
		DurationSeconds: int(duration / time.Second),
	}, true
}

// assignTenant resolves a trip's tenant from current station storage,
// falling back to the coordinate split, then to Manhattan.
func (i *Importer) assignTenant(ctx context.Context, startStationID, rawLat string) station.TenantID {
	if s, err := i.stations.Get(ctx, startStationID); err == nil {
		return s.TenantID
	}
	if lat, err := strconv.ParseFloat(rawLat, 64); err == nil {
		return station.AssignTenant(lat)
	}
	return station.TenantManhattan
}

// mapColumns normalizes header names and resolves aliases to indexes.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[normalized]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = idx
			}
		}
	}
	return columns
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}
