package fixtures_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kolkov/racefixtures/fixtures"
)

// Example demonstrates the guarded counter staying exact under contention.
func Example() {
	fixtures.Reset()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fixtures.Increment()
			}
		}()
	}
	wg.Wait()

	fmt.Println(fixtures.SafeCounterValue())

	// Output:
	// 4000
}

// Example_withdraw demonstrates the compare-and-swap bank refusing an
// overdraft that the racy variant would let through.
func Example_withdraw() {
	fixtures.Reset()

	fmt.Println(fixtures.Withdraw(700))
	fmt.Println(fixtures.Withdraw(700))
	fmt.Println(fixtures.Balance())

	// Output:
	// true
	// false
	// 300
}

// Example_singleton demonstrates once-only construction.
func Example_singleton() {
	p := fixtures.Singleton()
	q := fixtures.Singleton()

	fmt.Println(p == q, p.Initialized, p.Data)

	// Output:
	// true true 42
}

// Example_transform demonstrates sweeping one update through the
// synchronization disciplines.
func Example_transform() {
	reg := fixtures.New()

	fmt.Println(reg.Transform(fixtures.DisciplineExclusive, 10))
	fmt.Println(reg.Transform(fixtures.DisciplineAtomic, 7))
	fmt.Println(reg.Transform(fixtures.DisciplineOnce, 100)) // first use fires the gate
	fmt.Println(reg.Transform(fixtures.DisciplineOnce, 999)) // gate spent, observes only

	// Output:
	// 10
	// 7
	// 110
	// 110
}

// Example_worker demonstrates the cooperative worker's start/stop
// handshake.
func Example_worker() {
	reg := fixtures.New()

	fmt.Println(reg.StartWorker())
	time.Sleep(5 * time.Millisecond)
	fmt.Println(reg.StopWorker())
	fmt.Println(reg.WorkerTickCount() > 0, reg.WorkerRunning())

	// Output:
	// true
	// true
	// true false
}

// Example_latch demonstrates gating goroutines on the one-shot latch.
func Example_latch() {
	reg := fixtures.New()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.LatchWaitIncrement(context.Background())
		}()
	}

	reg.LatchSignal()
	wg.Wait()

	fmt.Println(reg.SafeCounterValue())

	// Output:
	// 3
}
