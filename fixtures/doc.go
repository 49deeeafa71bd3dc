// Package fixtures provides a ground-truth catalogue of concurrency bugs
// and their corrections for exercising race detectors and teaching
// concurrent programming.
//
// Every racy operation in the catalogue is paired with a safe mirror that
// performs the same logical transformation under a correct synchronization
// discipline. The racy half misbehaves only under concurrency: each unsafe
// operation is deterministic in isolation, so any wrong value observed is
// attributable purely to concurrent execution. The safe half is exact
// under every interleaving and clean under the race detector.
//
// # Quick Start
//
// The flat API acts on one process-default registry:
//
//	package main
//
//	import (
//		"fmt"
//		"sync"
//
//		"github.com/kolkov/racefixtures/fixtures"
//	)
//
//	func main() {
//		var wg sync.WaitGroup
//		for i := 0; i < 8; i++ {
//			wg.Add(1)
//			go func() {
//				defer wg.Done()
//				for j := 0; j < 10000; j++ {
//					fixtures.UnsafeIncrement() // the racy half
//					fixtures.Increment()       // the safe mirror
//				}
//			}()
//		}
//		wg.Wait()
//
//		// The safe counter is exactly 80000. The racy counter usually
//		// is not; the shortfall is the lost-update race.
//		fmt.Println(fixtures.SafeCounterValue(), fixtures.CounterValue())
//	}
//
// Isolated experiments construct their own registries with [New] or
// [NewWithProfile] instead of sharing the default.
//
// # The Catalogue
//
// The fixtures cover the classic shared-state defects:
//   - Split read-modify-write counters losing updates: [UnsafeIncrement],
//     [UnsafeDecrement], [UnsafeMultiply], [UnsafeCompound]
//   - Unlocked buffer writes interleaving byte-for-byte: [UnsafeWriteBuffer]
//   - Broken double-checked locking publishing unfinished objects:
//     [UnsafeSingleton]
//   - Check-then-act bank withdrawals overspending: [UnsafeWithdraw] (timed
//     windows) and [UnsafeWithdrawFast] (pure-compute spin window)
//   - Unguarded reader/writer cell: [UnsafeRead], [UnsafeWrite]
//   - Inverted-order double acquisition deadlocking: [DeadlockAB], [DeadlockBA]
//
// # Safe Mirrors
//
// Each defect has a correction using the discipline the defect calls for:
// mutex-held counters ([Increment], [Multiply], [Compound]), a locked
// buffer ([WriteBuffer]), once-gated construction with atomic publication
// ([Singleton]), compare-and-swap withdrawal ([Withdraw]), lock-free
// atomic counters ([AtomicIncrement], [AtomicCAS]), a read-write lock
// ([SafeRead], [SafeWrite]), and address-ordered double acquisition
// ([DualLock]). Coordination primitives round out the safe half: a
// four-party barrier ([BarrierIncrement]), a one-shot latch ([LatchSignal],
// [LatchWaitIncrement]), a ten-permit pool ([AcquireResource]) and a
// data-ready token ([SignalDataReady], [WaitForData]).
//
// [Transform] exposes the counter update once more, parameterized by
// [Discipline], so a sweep from none to exclusive to atomic runs through a
// single entry point.
//
// # Timing Windows
//
// The races are constructed, not hoped for: every racy operation holds its
// read-to-write, check-to-act or first-to-second-lock window open with a
// non-elidable touch, a spin or a sleep, sized by the registry's timing
// profile. The defaults reproduce reliably on common hardware; widen them
// through [NewWithProfile] on platforms where they prove flaky.
//
// # Thread Safety
//
// Half of this package is deliberately not thread safe.
// Operations prefixed Unsafe, and the Deadlock pair,
// contain genuine data races or deadlocks and must not run concurrently in
// programs that need correct results; everything else may be called from
// any number of goroutines. Test binaries built with -race will fault on
// the racy half; that is the intended use, not a defect.
//
// # Links
//
// Project repository:
// https://github.com/kolkov/racefixtures
//
// Documentation:
// https://pkg.go.dev/github.com/kolkov/racefixtures/fixtures
package fixtures
