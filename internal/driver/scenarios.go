package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/kolkov/racefixtures/internal/fixture/registry"
)

// Catalogue returns the fixed scenario list. Order is stable; names are
// the catalogue's public identifiers.
func Catalogue() []Scenario {
	return []Scenario{
		lostUpdate(),
		safeCounter(),
		atomicCounter(),
		compound(),
		bufferCorruption(),
		safeBuffer(),
		toctouWithdrawal(),
		toctouFast(),
		casWithdrawal(),
		singletonRace(),
		singletonSafe(),
		rwSplit(),
		dualLockSafe(),
		deadlockDemo(),
		semaphorePool(),
		workerScenario(),
	}
}

// Find returns the named catalogue scenario.
func Find(name string) (Scenario, error) {
	for _, sc := range Catalogue() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("driver: unknown scenario %q", name)
}

// serialCompound applies the compound transformation n times from start,
// the value a single-threaded run always produces.
func serialCompound(start int64, n int) int64 {
	v := start
	for i := 0; i < n; i++ {
		v = ((v + 10) * 2) - 5
	}
	return v
}

// serialWithdrawals is how many withdrawals of amount a correct
// implementation admits from the initial balance, given attempts tries.
func serialWithdrawals(attempts int, amount int64) int64 {
	max := int64(registry.InitialBalance) / amount
	if n := int64(attempts); n < max {
		return n
	}
	return max
}

func measureCounter(read func(*registry.Registry) int64) func(*registry.Registry, Scenario, int64, *Result) {
	return func(reg *registry.Registry, sc Scenario, _ int64, res *Result) {
		res.Expected = int64(sc.Workers * sc.Iterations)
		res.Observed = read(reg)
		res.Consistent = res.Observed == res.Expected
	}
}

func measureBuffer(read func(*registry.Registry) string) func(*registry.Registry, Scenario, int64, *Result) {
	return func(reg *registry.Registry, sc Scenario, _ int64, res *Result) {
		res.Content = read(reg)
		for i := 0; i < sc.Workers; i++ {
			if res.Content == bufferText(i)+registry.ProcessedSuffix {
				res.Consistent = true
				return
			}
		}
	}
}

func measureBank(read func(*registry.Registry) int64) func(*registry.Registry, Scenario, int64, *Result) {
	return func(reg *registry.Registry, sc Scenario, tally int64, res *Result) {
		res.Successes = tally
		res.Withdrawn = tally * sc.Amount
		res.Balance = read(reg)
		res.Observed = res.Balance
		res.Expected = registry.InitialBalance - serialWithdrawals(sc.Workers*sc.Iterations, sc.Amount)*sc.Amount
		res.Overdraft = res.Balance < 0
		res.Consistent = !res.Overdraft && res.Balance+res.Withdrawn == registry.InitialBalance
	}
}

func measureSingleton(reg *registry.Registry, sc Scenario, tally int64, res *Result) {
	res.Expected = 1
	res.Observed = reg.SingletonConstructions()
	res.Successes = int64(sc.Workers) - tally
	res.Consistent = res.Observed == 1 && tally == 0
}

func bufferText(worker int) string {
	return fmt.Sprintf("message from worker %d", worker)
}

func lostUpdate() Scenario {
	return Scenario{
		Name:        "lost-update",
		Description: "split unsynchronized increments losing updates under contention",
		Class:       ClassRacy,
		Workers:     8,
		Iterations:  10000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			for i := 0; i < sc.Iterations; i++ {
				reg.UnsafeIncrement()
			}
			return 0, nil
		},
		measure: measureCounter((*registry.Registry).CounterValue),
	}
}

func safeCounter() Scenario {
	return Scenario{
		Name:        "safe-counter",
		Description: "mutex-held increments staying exact under contention",
		Class:       ClassSafe,
		Workers:     8,
		Iterations:  10000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			for i := 0; i < sc.Iterations; i++ {
				reg.Increment()
			}
			return 0, nil
		},
		measure: measureCounter((*registry.Registry).SafeCounterValue),
	}
}

func atomicCounter() Scenario {
	return Scenario{
		Name:        "atomic-counter",
		Description: "indivisible atomic increments staying exact under contention",
		Class:       ClassSafe,
		Workers:     8,
		Iterations:  10000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			for i := 0; i < sc.Iterations; i++ {
				reg.AtomicIncrement()
			}
			return 0, nil
		},
		measure: measureCounter((*registry.Registry).AtomicCounterValue),
	}
}

func compound() Scenario {
	return Scenario{
		Name:        "compound",
		Description: "three-stage unsynchronized transformation corrupting intermediates",
		Class:       ClassRacy,
		Workers:     4,
		Iterations:  1000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			for i := 0; i < sc.Iterations; i++ {
				reg.UnsafeCompound()
			}
			return 0, nil
		},
		measure: func(reg *registry.Registry, sc Scenario, _ int64, res *Result) {
			res.Expected = serialCompound(0, sc.Workers*sc.Iterations)
			res.Observed = reg.CounterValue()
			res.Consistent = res.Observed == res.Expected
		},
	}
}

func bufferCorruption() Scenario {
	return Scenario{
		Name:        "buffer-corruption",
		Description: "unlocked buffer writes interleaving byte-for-byte",
		Class:       ClassRacy,
		Workers:     4,
		Iterations:  300,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, id int) (int64, error) {
			text := bufferText(id)
			for i := 0; i < sc.Iterations; i++ {
				reg.UnsafeWriteBuffer(text)
			}
			return 0, nil
		},
		measure: measureBuffer((*registry.Registry).BufferString),
	}
}

func safeBuffer() Scenario {
	return Scenario{
		Name:        "safe-buffer",
		Description: "locked buffer writes always leaving one clean result",
		Class:       ClassSafe,
		Workers:     4,
		Iterations:  300,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, id int) (int64, error) {
			text := bufferText(id)
			for i := 0; i < sc.Iterations; i++ {
				reg.WriteBuffer(text)
			}
			return 0, nil
		},
		measure: measureBuffer((*registry.Registry).BufferString),
	}
}

func toctouWithdrawal() Scenario {
	return Scenario{
		Name:        "toctou-withdrawal",
		Description: "check-then-act withdrawals overspending through the gap",
		Class:       ClassRacy,
		Workers:     10,
		Iterations:  1,
		Amount:      150,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			var n int64
			for i := 0; i < sc.Iterations; i++ {
				if reg.UnsafeWithdraw(sc.Amount) {
					n++
				}
			}
			return n, nil
		},
		measure: measureBank((*registry.Registry).UnsafeBalance),
	}
}

func toctouFast() Scenario {
	return Scenario{
		Name:        "toctou-fast",
		Description: "spin-window withdrawals overspending without ever sleeping",
		Class:       ClassRacy,
		Workers:     10,
		Iterations:  1,
		Amount:      150,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			var n int64
			for i := 0; i < sc.Iterations; i++ {
				if reg.UnsafeWithdrawFast(sc.Amount) {
					n++
				}
			}
			return n, nil
		},
		measure: measureBank((*registry.Registry).FastBalance),
	}
}

func casWithdrawal() Scenario {
	return Scenario{
		Name:        "cas-withdrawal",
		Description: "compare-and-swap withdrawals never overspending",
		Class:       ClassSafe,
		Workers:     10,
		Iterations:  1,
		Amount:      100,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			var n int64
			for i := 0; i < sc.Iterations; i++ {
				if reg.Withdraw(sc.Amount) {
					n++
				}
			}
			return n, nil
		},
		measure: measureBank((*registry.Registry).Balance),
	}
}

func singletonRace() Scenario {
	return Scenario{
		Name:        "singleton-race",
		Description: "broken double-checked locking publishing unfinished payloads",
		Class:       ClassRacy,
		Workers:     16,
		Iterations:  1,
		worker: func(_ context.Context, reg *registry.Registry, _ Scenario, _ int) (int64, error) {
			p := reg.UnsafeSingleton()
			if p == nil || !p.Initialized {
				return 1, nil
			}
			return 0, nil
		},
		measure: measureSingleton,
	}
}

func singletonSafe() Scenario {
	return Scenario{
		Name:        "singleton-safe",
		Description: "once-gated construction with atomic publication",
		Class:       ClassSafe,
		Workers:     16,
		Iterations:  1,
		worker: func(_ context.Context, reg *registry.Registry, _ Scenario, _ int) (int64, error) {
			p := reg.Singleton()
			if p == nil || !p.Initialized {
				return 1, nil
			}
			return 0, nil
		},
		measure: measureSingleton,
	}
}

func rwSplit() Scenario {
	return Scenario{
		Name:        "rw-split",
		Description: "read-write lock splitting readers from writers cleanly",
		Class:       ClassSafe,
		Workers:     8,
		Iterations:  2000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, id int) (int64, error) {
			if id%2 == 0 {
				for i := 0; i < sc.Iterations; i++ {
					reg.SafeWrite(int64(id + 1))
				}
				return 0, nil
			}
			var violations int64
			for i := 0; i < sc.Iterations; i++ {
				if v := reg.SafeRead(); v < 0 || v > int64(sc.Workers) {
					violations++
				}
			}
			return violations, nil
		},
		measure: func(reg *registry.Registry, sc Scenario, tally int64, res *Result) {
			res.Observed = reg.SharedValue()
			res.Consistent = tally == 0 && res.Observed >= 0 && res.Observed <= int64(sc.Workers)
		},
	}
}

func dualLockSafe() Scenario {
	return Scenario{
		Name:        "dual-lock-safe",
		Description: "address-ordered double acquisition keeping the pair in step",
		Class:       ClassSafe,
		Workers:     8,
		Iterations:  1000,
		worker: func(_ context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			for i := 0; i < sc.Iterations; i++ {
				reg.DualLock()
			}
			return 0, nil
		},
		measure: func(reg *registry.Registry, sc Scenario, _ int64, res *Result) {
			a, b := reg.DualValues()
			res.Expected = int64(sc.Workers * sc.Iterations)
			res.Observed = a
			res.Consistent = a == res.Expected && b == res.Expected
		},
	}
}

func deadlockDemo() Scenario {
	return Scenario{
		Name:        "deadlock-demo",
		Description: "inverted-order acquisitions stalling each other in the gap",
		Class:       ClassDeadlock,
		Workers:     2,
		Iterations:  1,
		worker: func(_ context.Context, reg *registry.Registry, _ Scenario, id int) (int64, error) {
			if id == 0 {
				reg.DeadlockAB()
			} else {
				reg.DeadlockBA()
			}
			return 0, nil
		},
		measure: func(reg *registry.Registry, sc Scenario, _ int64, res *Result) {
			// Only reached on a lucky serial interleaving.
			a, b := reg.DualValues()
			res.Expected = int64(sc.Workers)
			res.Observed = a
			res.Consistent = a == res.Expected && b == res.Expected
		},
	}
}

func semaphorePool() Scenario {
	return Scenario{
		Name:        "semaphore-pool",
		Description: "ten-permit pool never admitting an eleventh holder",
		Class:       ClassSafe,
		Workers:     16,
		Iterations:  50,
		worker: func(ctx context.Context, reg *registry.Registry, sc Scenario, _ int) (int64, error) {
			var violations int64
			for i := 0; i < sc.Iterations; i++ {
				if !reg.AcquireResourceTimeout(2 * time.Second) {
					return violations, fmt.Errorf("driver: pool permit not granted within 2s")
				}
				if reg.ResourcesInUse() > registry.PoolCapacity {
					violations++
				}
				reg.ReleaseResource()
				if err := ctx.Err(); err != nil {
					return violations, err
				}
			}
			return violations, nil
		},
		measure: func(reg *registry.Registry, _ Scenario, tally int64, res *Result) {
			res.Observed = reg.ResourcesInUse()
			res.Consistent = tally == 0 && res.Observed == 0
		},
	}
}

func workerScenario() Scenario {
	return Scenario{
		Name:        "worker",
		Description: "cooperative background worker starting, ticking and joining",
		Class:       ClassSafe,
		Workers:     1,
		Iterations:  1,
		worker: func(_ context.Context, reg *registry.Registry, _ Scenario, _ int) (int64, error) {
			if !reg.StartWorker() {
				return 0, fmt.Errorf("driver: worker refused to start")
			}
			time.Sleep(20 * reg.Profile().WorkerTick)
			if !reg.StopWorker() {
				return 0, fmt.Errorf("driver: worker refused to stop")
			}
			return 1, nil
		},
		measure: func(reg *registry.Registry, _ Scenario, tally int64, res *Result) {
			res.Observed = reg.WorkerTickCount()
			res.Consistent = tally == 1 && res.Observed > 0 && !reg.WorkerRunning()
		},
	}
}
