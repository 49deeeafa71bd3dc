package syncprim

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Pool is a fixed-capacity resource-permit pool backed by a counting
// semaphore. Acquired permits never exceed the capacity, under any caller
// interleaving.
type Pool struct {
	sem   *semaphore.Weighted
	cap   int64
	inUse atomic.Int64
}

// NewPool creates a pool holding capacity permits, all initially free.
// It panics if capacity is not positive.
func NewPool(capacity int64) *Pool {
	if capacity < 1 {
		panic("syncprim: pool capacity must be positive")
	}
	return &Pool{sem: semaphore.NewWeighted(capacity), cap: capacity}
}

// Acquire takes one permit, blocking until a permit is free or ctx is done.
// On ctx cancellation no permit is held and ctx.Err() is returned.
func (p *Pool) Acquire(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.inUse.Add(1)
	return nil
}

// TryAcquire takes one permit only if one is immediately free.
// It never blocks.
func (p *Pool) TryAcquire() bool {
	if !p.sem.TryAcquire(1) {
		return false
	}
	p.inUse.Add(1)
	return true
}

// TryAcquireFor takes one permit, waiting at most d for one to free up.
// It reports whether a permit was taken.
func (p *Pool) TryAcquireFor(d time.Duration) bool {
	if p.sem.TryAcquire(1) {
		p.inUse.Add(1)
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	p.inUse.Add(1)
	return true
}

// Release returns one permit to the pool. Releasing a permit that was never
// acquired panics, matching the underlying semaphore's contract.
func (p *Pool) Release() {
	p.inUse.Add(-1)
	p.sem.Release(1)
}

// Capacity returns the fixed permit count.
func (p *Pool) Capacity() int64 {
	return p.cap
}

// InUse returns the number of currently held permits. The value is a
// snapshot and may be stale by the time it is observed.
func (p *Pool) InUse() int64 {
	return p.inUse.Load()
}
