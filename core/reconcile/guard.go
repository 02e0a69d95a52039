package reconcile

import (
	"context"
	"errors"
	"time"

	"catalog-sync/core/lock"

	"golang.org/x/sync/singleflight"
)

// ErrRunInProgress indicates that another process holds the run lock.
var ErrRunInProgress = errors.New("reconciliation already in progress")

// RunFunc performs one reconciliation run.
type RunFunc func(ctx context.Context) (*RunSummary, error)

// Guard makes sure at most one run executes at a time.
// Concurrent callers in the same process join the in-flight run; other
// processes are kept out by the distributed lock.
type Guard struct {
	sf     singleflight.Group
	locker lock.Locker
	key    string
	ttl    time.Duration
}

// NewGuard creates a guard using locker under key.
func NewGuard(locker lock.Locker, key string, ttl time.Duration) *Guard {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &Guard{locker: locker, key: key, ttl: ttl}
}

// Do executes fn unless a run is already in flight. The returned bool is true
// when the result was shared with another caller.
func (g *Guard) Do(ctx context.Context, fn RunFunc) (*RunSummary, bool, error) {
	v, err, shared := g.sf.Do(g.key, func() (interface{}, error) {
		unlock, err := g.locker.Acquire(ctx, g.key, g.ttl)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return nil, ErrRunInProgress
			}
			return nil, err
		}
		defer func() { _ = unlock(context.WithoutCancel(ctx)) }()

		return fn(ctx)
	})
	summary, _ := v.(*RunSummary)
	return summary, shared, err
}
