package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotAcquired is returned by Locker implementations when the lock is held elsewhere.
var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases a previously acquired lock.
type Unlock func(ctx context.Context) error

// Locker grants exclusive, expiring ownership of a named key.
type Locker interface {
	// Acquire takes the lock for key. It returns ErrNotAcquired if another owner holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// Local is an in-process Locker. The ttl is ignored since the owner cannot vanish
// without the process going with it.
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocal creates an in-process Locker.
func NewLocal() *Local {
	return &Local{held: make(map[string]struct{})}
}

// Acquire implements Locker.
func (l *Local) Acquire(_ context.Context, key string, _ time.Duration) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, ErrNotAcquired
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
