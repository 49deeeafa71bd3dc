// Package memorder provides atomic operations carrying an explicit memory
// order, plus the non-elidable Touch access used to hold race windows open.
//
// # Overview
//
// The fixture catalogue was designed against a memory model with relaxed,
// acquire, release, acquire-release and sequentially-consistent orderings.
// Go's sync/atomic exposes a single ordering (sequentially consistent), so
// every operation here maps onto the seq-cst primitive. The Order parameter
// preserves the catalogue's declared ordering: it documents intent, is
// reported by introspection, and keeps the operation signatures stable for
// drivers that record which ordering a fixture claims to need.
//
// Mapping every order to seq-cst only ever strengthens an operation. A safe
// fixture stays safe; an unsafe fixture stays unsafe because its defect is
// the use of plain, non-atomic accesses, not a too-weak ordering.
//
// # Touch
//
// Touch is the optimization barrier of the racy fixtures. A split
// read-modify-write only races if the read and the write stay separate
// accesses; an optimizer that fuses them into one instruction closes the
// window. A relaxed-intent atomic load of a dedicated cell between the two
// halves prevents the fusion: the access cannot be elided, yet it orders
// nothing and synchronizes nothing, so the surrounding plain accesses
// remain a genuine data race.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The addressed cells must be
// 64-bit aligned; the registry guarantees this by declaring its
// atomically-accessed int64 fields first in the struct.
package memorder
