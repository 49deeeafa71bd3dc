package memorder

import "sync/atomic"

// Load atomically reads *addr with the declared order.
func Load(addr *int64, _ Order) int64 {
	return atomic.LoadInt64(addr)
}

// Store atomically writes v to *addr with the declared order.
func Store(addr *int64, v int64, _ Order) {
	atomic.StoreInt64(addr, v)
}

// Add atomically adds delta to *addr with the declared order and returns the
// new value. The add is indivisible: concurrent Adds never lose updates.
func Add(addr *int64, delta int64, _ Order) int64 {
	return atomic.AddInt64(addr, delta)
}

// CompareAndSwap replaces *addr with new only if it still holds old,
// with the declared order. It reports whether the swap happened.
func CompareAndSwap(addr *int64, old, new int64, _ Order) bool {
	return atomic.CompareAndSwapInt64(addr, old, new)
}

// Touch performs a relaxed-intent atomic load of *addr and discards the
// value. Atomic operations are compiler intrinsics with memory effects, so
// the access cannot be removed, yet it establishes no happens-before edge
// with any other location. Racy fixtures call Touch between the read and the
// write of a split read-modify-write to keep the window open under
// optimization.
func Touch(addr *int64) {
	_ = atomic.LoadInt64(addr)
}
