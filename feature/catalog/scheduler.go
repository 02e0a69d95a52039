package catalog

import (
	"context"
	"errors"
	"time"

	core "catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// Syncer triggers a reconciliation pass.
type Syncer interface {
	Sync(ctx context.Context) (*core.RunSummary, error)
}

// Scheduler triggers passes at a fixed interval.
type Scheduler struct {
	syncer       Syncer
	interval     time.Duration
	startupDelay time.Duration
	startupRun   bool
	retries      int
	backoff      time.Duration
	logger       *zap.Logger
}

// NewScheduler creates a scheduler. In worker mode one extra pass runs after the startup delay.
func NewScheduler(syncer Syncer, cfg ScheduleConfig, logger *zap.Logger) *Scheduler {
	interval := cfg.Interval()
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		syncer:       syncer,
		interval:     interval,
		startupDelay: cfg.StartupDelay,
		startupRun:   cfg.Worker,
		retries:      max(cfg.Retries, 0),
		backoff:      cfg.RetryBackoff,
		logger:       logger,
	}
}

// Start blocks, triggering passes until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Catalog scheduler started",
		zap.Duration("interval", s.interval),
		zap.Bool("startup_run", s.startupRun),
		zap.Duration("startup_delay", s.startupDelay),
	)

	var startup <-chan time.Time
	if s.startupRun {
		timer := time.NewTimer(s.startupDelay)
		defer timer.Stop()
		startup = timer.C
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog scheduler stopped")
			return
		case <-startup:
			startup = nil
			s.trigger(ctx, "startup")
		case <-ticker.C:
			s.trigger(ctx, "schedule")
		}
	}
}

// trigger runs a pass, retrying a failed one up to s.retries times.
// A run held by another process is not retried.
func (s *Scheduler) trigger(ctx context.Context, reason string) {
	log := s.logger.With(zap.String("trigger", reason))
	backoff := s.backoff

	for attempt := 0; ; attempt++ {
		start := time.Now()
		summary, err := s.syncer.Sync(ctx)

		switch {
		case errors.Is(err, core.ErrRunInProgress):
			log.Info("Skipped scheduled run, another run is in progress")
			return
		case err == nil:
			if summary != nil {
				log.Info("Scheduled run completed",
					zap.String("run_id", summary.RunID),
					zap.Bool("success", summary.IsSuccess()),
					zap.Int("attempt", attempt+1),
					zap.Duration("elapsed", time.Since(start)),
				)
			}
			return
		}

		if attempt >= s.retries || ctx.Err() != nil {
			log.Error("Scheduled run failed", zap.Error(err), zap.Int("attempts", attempt+1), zap.Duration("elapsed", time.Since(start)))
			return
		}

		log.Warn("Scheduled run failed, retrying", zap.Error(err), zap.Int("attempt", attempt+1), zap.Duration("backoff", backoff))
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("Scheduled run failed", zap.Error(err), zap.Int("attempts", attempt+1))
			return
		case <-timer.C:
		}
		backoff *= 2
	}
}
