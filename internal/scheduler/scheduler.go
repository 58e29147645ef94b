package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/snow-report/internal/weather"
)

// Sink receives the merged resort list after every refresh.
type Sink func(weather.Batch)

// Scheduler periodically normalizes weather for a fixed resort list and hands
// each batch to a Sink. Nothing is retained between runs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	resorts   []weather.Resort
	interval  time.Duration
	timeout   time.Duration
	sink      Sink
	logger    *zap.Logger
}

// New creates a new Scheduler. timeout bounds each refresh; zero disables it.
func New(resorts []weather.Resort, interval, timeout time.Duration, service *weather.Service, sink Sink, logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: s,
		service:   service,
		resorts:   resorts,
		interval:  interval,
		timeout:   timeout,
		sink:      sink,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first refresh runs immediately.
func (s *Scheduler) Start() error {
	if len(s.resorts) == 0 {
		s.logger.Info("scheduler: no resorts configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	if _, err := s.scheduler.Every(interval).Do(s.run); err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	runID := uuid.NewString()
	s.logger.Info("scheduler: running weather refresh", zap.String("run_id", runID))

	batch := s.RunOnce(context.Background())
	if s.sink != nil {
		s.sink(batch)
	}

	s.logger.Info("scheduler: completed weather refresh",
		zap.String("run_id", runID),
		zap.String("batch_id", batch.ID),
		zap.Int("stale", len(batch.Stale)))
}

// RunOnce performs a single refresh of every resort.
func (s *Scheduler) RunOnce(ctx context.Context) weather.Batch {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.service.Refresh(ctx, s.resorts)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
