package registry

import (
	"context"
	"time"

	"github.com/kolkov/racefixtures/internal/fixture/memorder"
)

// The safe half of the catalogue. Every operation mirrors a racy one with
// the same logical transformation under correct synchronization discipline.

// Increment adds one to the guarded counter with the lock held across the
// full read-modify-write. T goroutines performing K increments each always
// leave the counter at exactly T*K.
func (r *Registry) Increment() {
	r.counterMu.Lock()
	r.safeCounter++
	r.counterMu.Unlock()
}

// Decrement subtracts one from the guarded counter under its lock.
func (r *Registry) Decrement() {
	r.counterMu.Lock()
	r.safeCounter--
	r.counterMu.Unlock()
}

// Multiply scales the guarded counter under its lock.
func (r *Registry) Multiply(factor int64) {
	r.counterMu.Lock()
	r.safeCounter *= factor
	r.counterMu.Unlock()
}

// Compound applies the same three-stage transformation as UnsafeCompound
// with the counter lock held across the entire sequence, so the composite
// is atomic, not just the stages.
func (r *Registry) Compound() {
	r.counterMu.Lock()
	v := r.safeCounter
	v += 10
	v *= 2
	v -= 5
	r.safeCounter = v
	r.counterMu.Unlock()
}

// WriteBuffer writes text plus the processed suffix into the shared buffer
// under the buffer lock. The content after any WriteBuffer is exactly
// "<text> - processed" with no interleaving corruption. Text beyond the
// capacity left by the suffix is clipped.
func (r *Registry) WriteBuffer(text string) {
	if max := BufferCapacity - len(ProcessedSuffix); len(text) > max {
		text = text[:max]
	}
	r.bufMu.Lock()
	n := copy(r.buf[:], text)
	n += copy(r.buf[n:], ProcessedSuffix)
	r.bufLen = n
	r.bufMu.Unlock()
}

// Singleton returns the safe singleton, constructing the payload exactly
// once. Construction runs under the once-gate; publication is an atomic
// pointer store and every reader loads through the same pointer, so no
// caller can observe a partially-initialized payload, irrespective of how
// many callers race the first use.
func (r *Registry) Singleton() *Payload {
	if p := r.safeSingleton.Load(); p != nil {
		return p
	}
	r.singletonOnce.Do(func() {
		p := newPayload()
		r.constructions.Add(1)
		r.safeSingleton.Store(p)
	})
	return r.safeSingleton.Load()
}

// Withdraw debits the atomic balance through a compare-and-swap retry loop.
//
//  1. Observe the balance.
//  2. Fail if the observed balance cannot cover the amount.
//  3. Commit with a compare-and-swap against the observed value; if another
//     withdrawal moved the balance first, re-observe and retry.
//
// The check and the debit are one atomic step with respect to all other
// withdrawals: a withdrawal succeeds iff, at some atomically-observed
// instant, the balance covered it. The balance can never go negative.
func (r *Registry) Withdraw(amount int64) bool {
	for {
		cur := memorder.Load(&r.atomicBalance, memorder.Acquire)
		if cur < amount {
			return false
		}
		if memorder.CompareAndSwap(&r.atomicBalance, cur, cur-amount, memorder.AcqRel) {
			return true
		}
	}
}

// AtomicIncrement adds one to the atomic counter with a single indivisible
// add, relaxed-intent: the count is exact, ordering is not promised.
func (r *Registry) AtomicIncrement() {
	memorder.Add(&r.atomicCounter, 1, memorder.Relaxed)
}

// AtomicDecrement subtracts one from the atomic counter indivisibly.
func (r *Registry) AtomicDecrement() {
	memorder.Add(&r.atomicCounter, -1, memorder.Relaxed)
}

// AtomicCAS replaces the atomic counter's value with desired only if it
// still holds expected, in one acquire-release step. It reports whether the
// swap happened.
func (r *Registry) AtomicCAS(expected, desired int64) bool {
	return memorder.CompareAndSwap(&r.atomicCounter, expected, desired, memorder.AcqRel)
}

// AtomicStoreNotify stores v into the atomic counter with release intent
// and wakes every AtomicWaitFor caller to re-examine the value. Plain
// AtomicIncrement calls do not wake waiters; only the store-notify pair
// participates in the rendezvous.
func (r *Registry) AtomicStoreNotify(v int64) {
	memorder.Store(&r.atomicCounter, v, memorder.Release)
	r.notifyMu.Lock()
	r.notify.Broadcast()
	r.notifyMu.Unlock()
}

// AtomicWaitFor blocks until the atomic counter equals v or ctx is done.
func (r *Registry) AtomicWaitFor(ctx context.Context, v int64) error {
	stop := context.AfterFunc(ctx, func() {
		r.notifyMu.Lock()
		defer r.notifyMu.Unlock()
		r.notify.Broadcast()
	})
	defer stop()

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	for memorder.Load(&r.atomicCounter, memorder.Acquire) != v {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.notify.Wait()
	}
	return nil
}

// MixedIncrement applies an atomic read-modify-write to the racy counter,
// the same cell the racy operations access plainly. The add itself can
// never lose an update, but it does not repair concurrent plain accesses to
// the cell; mixing the two disciplines on one location is itself a pattern
// detectors are expected to flag.
func (r *Registry) MixedIncrement() {
	memorder.Add(&r.counter, 1, memorder.SeqCst)
}

// SafeRead returns the reader/writer cell under the read lock. Concurrent
// readers do not block each other.
func (r *Registry) SafeRead() int64 {
	r.sharedMu.RLock()
	defer r.sharedMu.RUnlock()
	return r.sharedData
}

// SafeWrite stores into the reader/writer cell under the write lock,
// excluding all readers and writers for the duration.
func (r *Registry) SafeWrite(v int64) {
	r.sharedMu.Lock()
	r.sharedData = v
	r.sharedMu.Unlock()
}

// DualLock mutates both ordered-pair values under a single two-lock
// acquisition. The pair is taken in the MultiLock's fixed internal order,
// so concurrent DualLock callers can never deadlock each other no matter
// how they interleave. The racy Deadlock pair keeps its inverted orders.
func (r *Registry) DualLock() {
	r.dual.Lock()
	r.dualA++
	r.dualB++
	r.dual.Unlock()
}

// DualValues returns both ordered-pair values, read under the pair's locks.
func (r *Registry) DualValues() (a, b int64) {
	r.dual.Lock()
	a, b = r.dualA, r.dualB
	r.dual.Unlock()
	return a, b
}

// BarrierIncrement arrives at the four-party barrier and, once the
// generation releases, increments the guarded counter. With exactly
// BarrierParties callers, every arrival happens before any increment.
func (r *Registry) BarrierIncrement(ctx context.Context) error {
	if err := r.barrier.ArriveAndWait(ctx); err != nil {
		return err
	}
	r.counterMu.Lock()
	r.safeCounter++
	r.counterMu.Unlock()
	return nil
}

// LatchWaitIncrement blocks until the start latch opens, then increments
// the guarded counter.
func (r *Registry) LatchWaitIncrement(ctx context.Context) error {
	if err := r.latch.Wait(ctx); err != nil {
		return err
	}
	r.counterMu.Lock()
	r.safeCounter++
	r.counterMu.Unlock()
	return nil
}

// LatchSignal counts the start latch down. The count that reaches zero
// releases every LatchWaitIncrement waiter; further signals do nothing.
func (r *Registry) LatchSignal() {
	r.latch.CountDown()
}

// AcquireResource takes a pool permit only if one is immediately free.
// It never blocks.
func (r *Registry) AcquireResource() bool {
	return r.pool.TryAcquire()
}

// AcquireResourceTimeout takes a pool permit, waiting at most d for one to
// free up.
func (r *Registry) AcquireResourceTimeout(d time.Duration) bool {
	return r.pool.TryAcquireFor(d)
}

// ReleaseResource returns a pool permit.
func (r *Registry) ReleaseResource() {
	r.pool.Release()
}

// SignalDataReady makes the data-ready token available. Idempotent while
// the token is unconsumed.
func (r *Registry) SignalDataReady() {
	r.ready.Set()
}

// WaitForData consumes the data-ready token, waiting at most d for it.
func (r *Registry) WaitForData(d time.Duration) bool {
	return r.ready.TryWaitFor(d)
}
