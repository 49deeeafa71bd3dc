//go:build ignore
// +build ignore

// This tool calibrates the fixture timing windows for the current platform.
// Run with: go run tools/calibrate_windows.go
//
// It sweeps the lost-update race window and the fast-withdrawal spin count,
// measuring at each width how often the constructed misbehavior actually
// fires. Pick the narrowest setting that fires reliably and put it in
// racefixtures.yml; wider than that only slows the catalogue down.
package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/kolkov/racefixtures/fixtures"
)

const (
	trials     = 30
	workers    = 4
	increments = 2000

	withdrawers      = 10
	withdrawalAmount = 150
)

func main() {
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("Architecture: %s\n", runtime.GOARCH)
	fmt.Printf("CPUs: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Lost-update firing rate (%d trials, %d workers x %d increments):\n",
		trials, workers, increments)
	windows := []time.Duration{0, 100 * time.Nanosecond, 500 * time.Nanosecond,
		time.Microsecond, 5 * time.Microsecond, 25 * time.Microsecond}

	best := windows[len(windows)-1]
	for _, w := range windows {
		fired := lostUpdateTrials(w)
		fmt.Printf("  raceWindow %8v: %2d/%d fired\n", w, fired, trials)
		if fired == trials && w < best {
			best = w
		}
	}
	fmt.Printf("\nUse this in racefixtures.yml: raceWindow: %v\n\n", best)

	fmt.Printf("Fast-withdrawal overspend rate (%d trials, %d withdrawers):\n",
		trials, withdrawers)
	spins := []int{0, 50, 100, 500, 1000}

	bestSpin := spins[len(spins)-1]
	for _, rounds := range spins {
		fired := overspendTrials(rounds)
		fmt.Printf("  spinRounds %6d: %2d/%d overspent\n", rounds, fired, trials)
		if fired == trials && rounds < bestSpin {
			bestSpin = rounds
		}
	}
	fmt.Printf("\nUse this in racefixtures.yml: spinRounds: %d\n", bestSpin)
}

// lostUpdateTrials counts how many of the trials lose at least one update
// with the race window set to w.
func lostUpdateTrials(w time.Duration) int {
	p := fixtures.DefaultProfile()
	p.RaceWindow = w

	fired := 0
	for t := 0; t < trials; t++ {
		reg := fixtures.NewWithProfile(p)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < increments; j++ {
					reg.UnsafeIncrement()
				}
			}()
		}
		wg.Wait()

		if reg.CounterValue() != int64(workers*increments) {
			fired++
		}
	}
	return fired
}

// overspendTrials counts how many of the trials admit more fast
// withdrawals than the balance covers with the spin window set to rounds.
func overspendTrials(rounds int) int {
	p := fixtures.DefaultProfile()
	p.SpinRounds = rounds
	affordable := int64(fixtures.InitialBalance) / withdrawalAmount

	fired := 0
	for t := 0; t < trials; t++ {
		reg := fixtures.NewWithProfile(p)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			admitted int64
		)
		for i := 0; i < withdrawers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if reg.UnsafeWithdrawFast(withdrawalAmount) {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if admitted > affordable || reg.FastBalance() < 0 {
			fired++
		}
	}
	return fired
}
