package catalog

import (
	"context"
	"errors"
	"sync"

	core "catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// ErrNoRun is returned by Last before any run has completed.
var ErrNoRun = errors.New("no reconciliation run recorded")

// Runner performs one reconciliation pass.
type Runner interface {
	Run(ctx context.Context) (*core.RunSummary, error)
}

// Service runs reconciliation passes one at a time and remembers their outcome.
type Service struct {
	runner  Runner
	guard   *core.Guard
	archive *Archive
	logger  *zap.Logger

	mu   sync.RWMutex
	last *core.RunSummary
}

// NewService creates a service. archive may be nil to disable report archiving.
func NewService(runner Runner, guard *core.Guard, archive *Archive, logger *zap.Logger) *Service {
	return &Service{
		runner:  runner,
		guard:   guard,
		archive: archive,
		logger:  logger,
	}
}

// Sync runs a pass, or joins the pass already in flight in this process.
// It fails with core.ErrRunInProgress when another process holds the run lock.
func (s *Service) Sync(ctx context.Context) (*core.RunSummary, error) {
	summary, shared, err := s.guard.Do(ctx, func(ctx context.Context) (*core.RunSummary, error) {
		summary, err := s.runner.Run(ctx)
		if summary != nil {
			s.record(ctx, summary)
		}
		return summary, err
	})
	if shared {
		s.logger.Debug("Joined in-flight reconciliation")
	}
	return summary, err
}

func (s *Service) record(ctx context.Context, summary *core.RunSummary) {
	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	if s.archive == nil {
		return
	}
	key, err := s.archive.Save(context.WithoutCancel(ctx), summary)
	if err != nil {
		s.logger.Error("Failed to archive run report", zap.String("run_id", summary.RunID), zap.Error(err))
		return
	}
	s.logger.Info("Archived run report", zap.String("run_id", summary.RunID), zap.String("key", key))
}

// Last returns the most recent summary, falling back to the archive after a restart.
func (s *Service) Last(ctx context.Context) (*core.RunSummary, error) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return last, nil
	}

	if s.archive == nil {
		return nil, ErrNoRun
	}
	summary, err := s.archive.Latest(ctx)
	if errors.Is(err, ErrNoReport) {
		return nil, ErrNoRun
	}
	return summary, err
}
