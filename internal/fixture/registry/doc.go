// Package registry implements the shared-state synchronization catalogue:
// one aggregate of process-wide mutable entities together with paired racy
// and safe operations over them.
//
// # Overview
//
// A Registry holds every entity the catalogue acts on: plain and guarded
// counters, an atomic counter, a fixed-capacity byte buffer, three bank
// balances (plain, spin-variant and atomic), two singleton slots, a
// reader/writer cell, an ordered lock pair, a four-party barrier, a one-shot
// latch, a resource-permit pool, a binary data-ready semaphore and a
// cooperative background worker. All state lives in the aggregate; there are
// no free package-level variables, so registries are isolated, testable and
// resettable.
//
// # Racy and safe halves
//
// Every logical transformation exists twice:
//
//   - The racy form (racy.go) deliberately violates mutual exclusion,
//     exposes check-then-act windows or inverts lock order. Each one is
//     engineered so the defect is reliably observable under contention:
//     reads and writes are split, a non-elidable touch or injected delay
//     holds the window open, and single-threaded use always produces the
//     obviously correct result.
//
//   - The safe form (guarded.go) performs the same transformation under
//     correct discipline: exclusive or shared locking spanning the full
//     read-modify-write, once-gated construction with atomic publication,
//     compare-and-swap retry loops, or a single ordered two-lock
//     acquisition.
//
// Transform (discipline.go) exposes the shared shape directly: one logical
// counter update parameterized by synchronization discipline.
//
// # Timing
//
// The windows that make the races reliable are tuning parameters, not
// semantics. They are collected in Profile (timing.go) with documented
// defaults, and can be widened or narrowed per platform without touching
// any operation.
//
// # Thread Safety
//
// Safe operations and their getters may be called from any number of
// goroutines. Racy operations are safe only single-threaded; called
// concurrently they produce wrong values, which is their purpose. Reset
// takes every guarding lock in one fixed order and restores the documented
// initial values.
package registry
