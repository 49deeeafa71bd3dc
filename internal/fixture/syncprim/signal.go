package syncprim

import (
	"context"
	"time"
)

// Signal is a binary semaphore: a single token that Set makes available and
// a wait consumes. Setting an already-set signal is a no-op, so the token
// never accumulates past one.
type Signal struct {
	ch chan struct{}
}

// NewSignal creates a signal with no token available.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Set makes the token available. Idempotent while the token is unconsumed.
func (s *Signal) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait consumes the token, blocking until one is available or ctx is done.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryWait consumes the token only if it is immediately available.
// It never blocks.
func (s *Signal) TryWait() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// TryWaitFor consumes the token, waiting at most d for it to appear.
// It reports whether the token was consumed.
func (s *Signal) TryWaitFor(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ch:
		return true
	case <-timer.C:
		return false
	}
}
