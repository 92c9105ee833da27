package ingest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bikescope/bikescope/internal/ingest"

// CycleMetrics holds the OpenTelemetry instruments for ingestion cycles.
type CycleMetrics struct {
	cycleDuration   metric.Float64Histogram
	cycleTotal      metric.Int64Counter
	stationsUpdated metric.Int64Counter
	alertsCreated   metric.Int64Counter
}

// NewCycleMetrics creates a new CycleMetrics instance with initialized instruments.
func NewCycleMetrics() (*CycleMetrics, error) {
	meter := otel.Meter(meterName)

	cycleDuration, err := meter.Float64Histogram(
		"ingest.cycle.duration",
		metric.WithDescription("Duration of ingestion cycles in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cycleTotal, err := meter.Int64Counter(
		"ingest.cycle.total",
		metric.WithDescription("Total number of ingestion cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	stationsUpdated, err := meter.Int64Counter(
		"ingest.stations.updated",
		metric.WithDescription("Total number of station upserts"),
		metric.WithUnit("{station}"),
	)
	if err != nil {
		return nil, err
	}

	alertsCreated, err := meter.Int64Counter(
		"ingest.alerts.created",
		metric.WithDescription("Total number of alerts created"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	return &CycleMetrics{
		cycleDuration:   cycleDuration,
		cycleTotal:      cycleTotal,
		stationsUpdated: stationsUpdated,
		alertsCreated:   alertsCreated,
	}, nil
}

// RecordCycle records the outcome of one ingestion cycle.
func (m *CycleMetrics) RecordCycle(ctx context.Context, duration time.Duration, updated, alerts int, err error) {
	attrs := []attribute.KeyValue{}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.cycleTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err == nil {
		m.stationsUpdated.Add(ctx, int64(updated))
		m.alertsCreated.Add(ctx, int64(alerts))
	}
}
