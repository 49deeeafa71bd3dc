package registry

import (
	"time"

	"github.com/kolkov/racefixtures/internal/fixture/memorder"
)

// The racy half of the catalogue. Every operation here is deterministic in
// isolation and defective only under concurrency: a single-threaded caller
// always gets the obviously correct result, so any wrong value is
// attributable purely to concurrent execution.

// UnsafeIncrement adds one to the racy counter as a split read-modify-write.
// The read and write are separate plain accesses with a non-elidable touch
// between them; when two callers' read-to-write windows overlap, one
// increment is lost.
func (r *Registry) UnsafeIncrement() {
	v := r.counter
	memorder.Touch(&r.fence)
	r.counter = v + 1
}

// UnsafeDecrement subtracts one from the racy counter as a split
// read-modify-write, with the same lost-update window as UnsafeIncrement.
func (r *Registry) UnsafeDecrement() {
	v := r.counter
	memorder.Touch(&r.fence)
	r.counter = v - 1
}

// UnsafeMultiply scales the racy counter. The window between read and write
// is an injected delay rather than a bare touch, wide enough for overlapping
// callers to multiply from the same stale value.
func (r *Registry) UnsafeMultiply(factor int64) {
	v := r.counter
	time.Sleep(r.profile.RaceWindow)
	r.counter = v * factor
}

// UnsafeCompound applies the three-stage transformation ((c+10)*2)-5 as six
// dependent plain accesses with a window between every read and write.
// Each stage alone is a racy read-modify-write, and the composite has no
// atomicity across stages either: interleaved callers corrupt intermediate
// values even when individual stages happen to survive.
func (r *Registry) UnsafeCompound() {
	v := r.counter
	memorder.Touch(&r.fence)
	r.counter = v + 10

	v = r.counter
	memorder.Touch(&r.fence)
	r.counter = v * 2

	v = r.counter
	memorder.Touch(&r.fence)
	r.counter = v - 5
}

// UnsafeWriteBuffer copies text into the shared buffer, then appends the
// processed suffix, with no lock. Concurrent callers interleave byte-for-
// byte and corrupt or truncate the content. Text beyond the capacity left
// by the suffix is clipped.
func (r *Registry) UnsafeWriteBuffer(text string) {
	if max := BufferCapacity - len(ProcessedSuffix); len(text) > max {
		text = text[:max]
	}
	n := copy(r.buf[:], text)
	time.Sleep(r.profile.RaceWindow)
	n += copy(r.buf[n:], ProcessedSuffix)
	r.bufLen = n
}

// UnsafeSingleton returns the racy singleton slot, constructing the payload
// on first use via the double-checked-locking anti-pattern.
//
// The inner lock serializes construction, so at most one payload is ever
// built. The defect is visibility: nothing orders the payload's field
// writes before the plain pointer publish, and nothing orders the
// unsynchronized fast-path read after it, so a concurrent caller can
// observe a non-nil pointer to a payload whose fields it cannot yet see.
func (r *Registry) UnsafeSingleton() *Payload {
	if r.singleton == nil { // unsynchronized fast-path check
		r.singletonMu.Lock()
		if r.singleton == nil { // re-check under the lock
			p := newPayload()
			r.constructions.Add(1)
			r.singleton = p // plain publish
		}
		r.singletonMu.Unlock()
	}
	return r.singleton
}

// UnsafeWithdraw debits the plain balance with a check-then-act window.
//
//  1. Check sufficiency with a plain read.
//  2. Sleep the check-to-act gap; another caller can pass its own check on
//     the same funds here.
//  3. Compute the new balance from a second unsynchronized read.
//  4. Sleep the commit gap, then write the stale result back.
//
// Two callers interleaving around the windows can together withdraw more
// than the balance held, or drive it negative.
func (r *Registry) UnsafeWithdraw(amount int64) bool {
	if r.balance >= amount {
		time.Sleep(r.profile.CheckToActGap)
		v := r.balance - amount
		time.Sleep(r.profile.CommitGap)
		r.balance = v
		return true
	}
	return false
}

// UnsafeWithdrawFast is the TOCTOU variant whose window is pure compute: a
// spin of non-elidable touches instead of a sleep. It never yields the
// processor, so the race stays visible under schedulers that serialize
// sleeping threads.
func (r *Registry) UnsafeWithdrawFast(amount int64) bool {
	if r.fastBalance >= amount {
		for i := 0; i < r.profile.SpinRounds; i++ {
			memorder.Touch(&r.fence)
		}
		r.fastBalance -= amount
		return true
	}
	return false
}

// UnsafeRead returns the reader/writer cell without taking the read lock.
func (r *Registry) UnsafeRead() int64 {
	return r.sharedData
}

// UnsafeWrite stores into the reader/writer cell without taking the write
// lock.
func (r *Registry) UnsafeWrite(v int64) {
	r.sharedData = v
}

// DeadlockAB acquires lockA then lockB with the deadlock gap between the
// two acquisitions. Run concurrently with DeadlockBA, each caller can take
// its first lock inside the other's gap; both then block forever on their
// second. Callers must guard with a watchdog, as the driver's deadlock
// scenario does.
func (r *Registry) DeadlockAB() {
	r.lockA.Lock()
	time.Sleep(r.profile.DeadlockGap)
	r.lockB.Lock()
	r.dualA++
	r.dualB++
	r.lockB.Unlock()
	r.lockA.Unlock()
}

// DeadlockBA is DeadlockAB with the acquisition order inverted.
func (r *Registry) DeadlockBA() {
	r.lockB.Lock()
	time.Sleep(r.profile.DeadlockGap)
	r.lockA.Lock()
	r.dualA++
	r.dualB++
	r.lockA.Unlock()
	r.lockB.Unlock()
}
