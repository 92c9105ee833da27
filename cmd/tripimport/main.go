// Package main provides the trip history CSV importer.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/database"
	"github.com/bikescope/bikescope/internal/station"
	"github.com/bikescope/bikescope/internal/trip"
)

func main() {
	var (
		filePath  = flag.String("file", "", "path to the trip CSV export (required)")
		replace   = flag.Bool("replace", false, "clear existing trips before importing")
		batchSize = flag.Int("batch-size", 5000, "insert batch size")
	)
	flag.Parse()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "bikescope-tripimport").
		Logger()

	if *filePath == "" {
		log.Fatal().Msg("-file is required")
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("failed to open csv file")
	}
	defer f.Close()

	ctx := context.Background()

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to provision schema")
	}

	importer := trip.NewImporter(trip.ImporterConfig{
		Trips:           trip.NewPostgresRepository(pool),
		Stations:        station.NewPostgresRepository(pool),
		Logger:          log,
		BatchSize:       *batchSize,
		ReplaceExisting: *replace,
	})

	started := time.Now()
	result, err := importer.Import(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Str("file", *filePath).
		Int("read", result.Read).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int64("cleared", result.Cleared).
		Dur("duration", time.Since(started)).
		Msg("import completed")
}
