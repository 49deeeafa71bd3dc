package syncprim

import "unsafe"

// MultiLock acquires two locks as one unit, in a fixed internal order that
// depends only on the locks themselves, never on argument order. Two
// MultiLocks over the same pair therefore always agree on acquisition order,
// which rules out ordering-based deadlock by construction.
type MultiLock struct {
	first  *Mutex
	second *Mutex
}

// NewMultiLock creates a MultiLock over two distinct locks. The internal
// order is by lock address; Go's collector does not move heap objects, so
// the order is stable for the life of the locks. It panics if a and b are
// the same lock.
func NewMultiLock(a, b *Mutex) *MultiLock {
	if a == b {
		panic("syncprim: MultiLock requires two distinct locks")
	}
	if uintptr(unsafe.Pointer(b)) < uintptr(unsafe.Pointer(a)) {
		a, b = b, a
	}
	return &MultiLock{first: a, second: b}
}

// Lock acquires both locks in the fixed internal order.
func (m *MultiLock) Lock() {
	m.first.Lock()
	m.second.Lock()
}

// Unlock releases both locks in reverse acquisition order.
func (m *MultiLock) Unlock() {
	m.second.Unlock()
	m.first.Unlock()
}
