package registry

import "github.com/kolkov/racefixtures/internal/fixture/memorder"

// Reset restores every entity to its documented initial value: counters to
// zero, buffer zeroed, all balances to InitialBalance, the shared cell and
// ordered-pair values to zero. It takes every exclusion lock guarding
// mutable state in one fixed global order (counter, buffer, shared cell,
// ordered pair), so Reset racing only safe operations is itself safe; racy
// state is restored with plain writes and resetting during racy traffic is
// as racy as the traffic. The singleton slots and the worker tick counter
// are process-lifetime and are not reset.
func (r *Registry) Reset() {
	r.counterMu.Lock()
	r.bufMu.Lock()
	r.sharedMu.Lock()
	r.dual.Lock()

	r.counter = 0
	r.safeCounter = 0
	memorder.Store(&r.atomicCounter, 0, memorder.SeqCst)
	r.buf = [BufferCapacity]byte{}
	r.bufLen = 0
	r.balance = InitialBalance
	r.fastBalance = InitialBalance
	memorder.Store(&r.atomicBalance, InitialBalance, memorder.SeqCst)
	r.sharedData = 0
	r.dualA = 0
	r.dualB = 0

	r.dual.Unlock()
	r.sharedMu.Unlock()
	r.bufMu.Unlock()
	r.counterMu.Unlock()
}

// ResetFastBank restores only the spin-variant balance, with a plain write.
// Demo loops call it between attempts without disturbing the rest of the
// registry.
func (r *Registry) ResetFastBank() {
	r.fastBalance = InitialBalance
}

// CounterValue returns the racy counter with a deliberately unsynchronized
// read, so the getter itself remains a faithful race target.
func (r *Registry) CounterValue() int64 {
	return r.counter
}

// SafeCounterValue returns the guarded counter under the same lock its
// writers hold.
func (r *Registry) SafeCounterValue() int64 {
	r.counterMu.Lock()
	defer r.counterMu.Unlock()
	return r.safeCounter
}

// AtomicCounterValue returns the atomic counter with an acquire-intent load.
func (r *Registry) AtomicCounterValue() int64 {
	return memorder.Load(&r.atomicCounter, memorder.Acquire)
}

// Balance returns the CAS-withdrawal balance atomically.
func (r *Registry) Balance() int64 {
	return memorder.Load(&r.atomicBalance, memorder.Acquire)
}

// UnsafeBalance returns the plain TOCTOU balance with an unsynchronized
// read.
func (r *Registry) UnsafeBalance() int64 {
	return r.balance
}

// FastBalance returns the spin-variant balance with an unsynchronized read.
func (r *Registry) FastBalance() int64 {
	return r.fastBalance
}

// SharedValue returns the reader/writer cell under the read lock.
func (r *Registry) SharedValue() int64 {
	r.sharedMu.RLock()
	defer r.sharedMu.RUnlock()
	return r.sharedData
}

// BufferString returns the buffer's current content under the buffer lock.
func (r *Registry) BufferString() string {
	r.bufMu.Lock()
	defer r.bufMu.Unlock()
	return string(r.buf[:r.bufLen])
}

// WorkerTickCount returns the background worker's tick counter.
func (r *Registry) WorkerTickCount() int64 {
	return memorder.Load(&r.workerTicks, memorder.Acquire)
}

// SingletonConstructions returns how many times a singleton payload has
// been constructed, across both the racy and the safe slot. The safe slot
// contributes at most one, ever.
func (r *Registry) SingletonConstructions() int64 {
	return r.constructions.Load()
}

// ResourcesInUse returns the number of currently held pool permits.
func (r *Registry) ResourcesInUse() int64 {
	return r.pool.InUse()
}
