package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/alert"
	"github.com/bikescope/bikescope/internal/gbfs"
)

// DefaultInterval is the pause between scheduled ingestion cycles.
const DefaultInterval = 60 * time.Second

// FeedProvider retrieves a joined snapshot of both GBFS feeds.
type FeedProvider interface {
	FetchSnapshot(ctx context.Context) (*gbfs.Snapshot, error)
}

// SchedulerConfig holds configuration for the ingestion scheduler.
type SchedulerConfig struct {
	Feeds  FeedProvider
	Merger *Merger
	Alerts alert.Repository
	Logger zerolog.Logger

	// Metrics records cycle outcomes when set.
	Metrics *CycleMetrics

	// Interval between scheduled cycles (default: DefaultInterval).
	Interval time.Duration

	// Now is the clock used for alert detection timestamps (default: time.Now).
	Now func() time.Time
}

// Scheduler runs ingestion cycles on a fixed interval and on demand.
// Scheduled and manual triggers share RunCycle behind a single-flight
// mutex, so overlapping cycles never run.
type Scheduler struct {
	feeds    FeedProvider
	merger   *Merger
	alerts   alert.Repository
	logger   zerolog.Logger
	metrics  *CycleMetrics
	interval time.Duration
	now      func() time.Time

	// mu serializes cycles across the timer loop and manual triggers.
	mu sync.Mutex

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates a new ingestion scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	interval := cfg.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		feeds:    cfg.Feeds,
		merger:   cfg.Merger,
		alerts:   cfg.Alerts,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: interval,
		now:      now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background scheduling loop. Cycle failures are logged
// and the next cycle runs after the normal interval; there is no backoff.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("starting ingestion scheduler")
	go s.loop(ctx)
}

// Stop signals the loop to exit and waits for it. The stop signal is
// observed between cycles, so an in-flight cycle always completes first.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
	s.logger.Info().Msg("ingestion scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Cycles run against a detached context so shutdown never aborts one
	// mid-flight; Stop waits for the loop instead.
	cycleCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.RunCycle(cycleCtx); err != nil {
				s.logger.Error().Err(err).Msg("scheduled ingestion cycle failed")
			}
		}
	}
}

// RunCycle performs one fetch, merge, detect, persist pass. It is the
// single code path for both the timer and the manual refresh endpoint:
// identical upstream snapshots produce identical station and alert state
// regardless of trigger source. A concurrent caller blocks until the
// in-flight cycle finishes.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	updated, alerts, err := s.runCycle(ctx)
	if s.metrics != nil {
		s.metrics.RecordCycle(ctx, time.Since(started), updated, alerts, err)
	}
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("stations_updated", updated).
		Int("alerts_created", alerts).
		Dur("duration", time.Since(started)).
		Msg("ingestion cycle completed")

	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) (int, int, error) {
	snapshot, err := s.feeds.FetchSnapshot(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch feeds: %w", err)
	}

	stations, updated, err := s.merger.Merge(ctx, snapshot.Metadata, snapshot.Status)
	if err != nil {
		return updated, 0, fmt.Errorf("merge stations: %w", err)
	}

	detectedAt := s.now()
	var alerts []*alert.Alert
	for _, st := range stations {
		alerts = append(alerts, alert.Detect(st, detectedAt)...)
	}

	if len(alerts) > 0 {
		if err := s.alerts.InsertBatch(ctx, alerts); err != nil {
			return updated, 0, fmt.Errorf("persist alerts: %w", err)
		}
	}

	return updated, len(alerts), nil
}
