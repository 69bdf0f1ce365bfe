// Package lock serializes work on a logical key.
package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotAcquired is returned when a lock could not be taken before ctx expired.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker acquires an exclusive lock on key. The returned function releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Key joins parts into a lock key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewMemoryLocker returns an in-process Locker.
func NewMemoryLocker() Locker {
	return &memoryLocker{locks: make(map[string]chan struct{})}
}

func (m *memoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	for {
		m.mu.Lock()
		held, ok := m.locks[key]
		if !ok {
			ch := make(chan struct{})
			m.locks[key] = ch
			m.mu.Unlock()
			return func() {
				m.mu.Lock()
				delete(m.locks, key)
				m.mu.Unlock()
				close(ch)
			}, nil
		}
		m.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		}
	}
}
