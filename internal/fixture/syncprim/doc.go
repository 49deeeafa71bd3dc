// Package syncprim provides the blocking primitives the fixture catalogue is
// built on: mutual-exclusion locks with an optional deadlock-detecting build,
// a counting-semaphore resource pool, a binary semaphore, a reusable
// participant barrier, a one-shot countdown latch, a once-initialization
// gate, and an ordered two-lock acquisition.
//
// # Contracts
//
// Every primitive preserves the exact blocking behavior of its operation
// class:
//   - Plain operations block until satisfied.
//   - Try variants return immediately with a boolean outcome, never block.
//   - Timed variants block at most the given bound, then report failure.
//   - Context-taking waits return ctx.Err() when the context is canceled.
//
// No business logic lives here. The registry composes these primitives into
// the safe half of the catalogue; the racy half bypasses them on purpose.
//
// # Deadlock-detecting build
//
// Build with -tags=deadlock to swap Mutex and RWMutex for wrappers around
// github.com/sasha-s/go-deadlock. The intentionally inverted lock-order
// fixtures then trip the detector instead of hanging, which is useful when
// validating deadlock tooling rather than race tooling.
package syncprim
