package syncprim

import (
	"context"
	"time"
)

// Latch is a one-shot countdown gate. Waiters block until the count reaches
// zero; the count only ever decreases and counting down past zero is a
// no-op. Unlike Barrier, a latch never resets.
type Latch struct {
	mu    Mutex
	count int
	done  chan struct{}
}

// NewLatch creates a latch with the given initial count. A count of zero
// creates an already-open latch. It panics if count is negative.
func NewLatch(count int) *Latch {
	if count < 0 {
		panic("syncprim: latch count must not be negative")
	}
	l := &Latch{count: count, done: make(chan struct{})}
	if count == 0 {
		close(l.done)
	}
	return l
}

// CountDown decrements the count. The decrement that reaches zero releases
// every waiter. Counting down an open latch does nothing.
func (l *Latch) CountDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == 0 {
		return
	}
	l.count--
	if l.count == 0 {
		close(l.done)
	}
}

// Wait blocks until the count reaches zero or ctx is done.
func (l *Latch) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryWaitFor blocks until the count reaches zero, waiting at most d.
// It reports whether the latch opened in time.
func (l *Latch) TryWaitFor(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-l.done:
		return true
	case <-timer.C:
		return false
	}
}

// Done reports whether the count has reached zero. It never blocks.
func (l *Latch) Done() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Count returns the current count.
func (l *Latch) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
