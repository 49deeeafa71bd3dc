// Package driver runs catalogue scenarios: it spawns contending workers
// against a fresh registry, releases them together, and reduces what the
// fixtures did into a Result a human or a harness can judge.
package driver

import (
	"context"
	"encoding/json"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kolkov/racefixtures/internal/fixture/registry"
)

// Class is a scenario's safety class. It decides how a Result is judged:
// safe scenarios must be consistent, racy ones are expected to misbehave,
// deadlock ones are expected to stall.
type Class int

const (
	ClassSafe Class = iota
	ClassRacy
	ClassDeadlock
)

var classNames = [...]string{
	ClassSafe:     "safe",
	ClassRacy:     "racy",
	ClassDeadlock: "deadlock",
}

// String returns the catalogue name of the class.
func (c Class) String() string {
	if c < ClassSafe || c > ClassDeadlock {
		return "unknown"
	}
	return classNames[c]
}

// MarshalJSON renders the class by name.
func (c Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Scenario is one catalogue entry: a fixed contention pattern against one
// operation pair, plus the bookkeeping needed to judge the outcome.
type Scenario struct {
	// Name is the stable catalogue identifier.
	Name string

	// Description is a one-line human summary.
	Description string

	// Class is the safety class the verdict is judged against.
	Class Class

	// Workers is the number of contending goroutines.
	Workers int

	// Iterations is the per-worker operation count, where the pattern
	// repeats.
	Iterations int

	// Amount is the per-operation amount for withdrawal scenarios.
	Amount int64

	// MaxParallel, when positive, bounds how many workers run their
	// bodies simultaneously through a weighted semaphore. Zero means all
	// workers contend at once.
	MaxParallel int64

	// Watchdog bounds the whole run for scenarios that can stall. Zero
	// means the default watchdog for deadlock-class scenarios and no
	// watchdog otherwise.
	Watchdog time.Duration

	// worker runs one goroutine's share and returns its tally: successful
	// withdrawals, observed violations, or zero where no tally applies.
	worker func(ctx context.Context, reg *registry.Registry, sc Scenario, id int) (int64, error)

	// measure reduces the registry's final state and the summed tally
	// into the result. Skipped when the watchdog fires: a stalled
	// registry's locks are still held.
	measure func(reg *registry.Registry, sc Scenario, tally int64, res *Result)
}

// DefaultWatchdog bounds deadlock-class scenarios that do stall.
const DefaultWatchdog = time.Second

// Result is what one scenario run produced.
type Result struct {
	Scenario   string        `json:"scenario"`
	Class      Class         `json:"class"`
	Workers    int           `json:"workers"`
	Iterations int           `json:"iterations"`
	Expected   int64         `json:"expected"`
	Observed   int64         `json:"observed"`
	Successes  int64         `json:"successes,omitempty"`
	Withdrawn  int64         `json:"withdrawn,omitempty"`
	Balance    int64         `json:"balance,omitempty"`
	Content    string        `json:"content,omitempty"`
	Consistent bool          `json:"consistent"`
	Overdraft  bool          `json:"overdraft,omitempty"`
	Deadlocked bool          `json:"deadlocked,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Verdict judges the result against its class: safe scenarios PASS or
// FAIL, racy ones report RACE when the misbehavior fired and CLEAN when it
// did not, deadlock ones report DEADLOCK or CLEAN.
func (r Result) Verdict() string {
	switch r.Class {
	case ClassDeadlock:
		if r.Deadlocked {
			return "DEADLOCK"
		}
		return "CLEAN"
	case ClassRacy:
		if !r.Consistent || r.Overdraft {
			return "RACE"
		}
		return "CLEAN"
	default:
		if r.Consistent {
			return "PASS"
		}
		return "FAIL"
	}
}

// Run executes one scenario against reg.
//
// All workers are released together through a start channel so their
// windows overlap from the first operation. Deadlock-class scenarios run
// under a watchdog; when it fires the stalled workers and reg are
// abandoned, so the caller must hand Run a registry it is prepared to
// lose.
func (sc Scenario) Run(ctx context.Context, reg *registry.Registry) (Result, error) {
	res := Result{
		Scenario:   sc.Name,
		Class:      sc.Class,
		Workers:    sc.Workers,
		Iterations: sc.Iterations,
	}

	var sem *semaphore.Weighted
	if sc.MaxParallel > 0 {
		sem = semaphore.NewWeighted(sc.MaxParallel)
	}

	tallies := make([]int64, sc.Workers)
	start := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < sc.Workers; i++ {
		i := i
		g.Go(func() error {
			<-start
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}
			n, err := sc.worker(gctx, reg, sc, i)
			tallies[i] = n
			return err
		})
	}

	log.WithFields(log.Fields{
		"scenario": sc.Name,
		"class":    sc.Class.String(),
		"workers":  sc.Workers,
	}).Debug("releasing workers")

	began := time.Now()
	close(start)

	watchdog := sc.Watchdog
	if watchdog == 0 && sc.Class == ClassDeadlock {
		watchdog = DefaultWatchdog
	}

	var err error
	if watchdog > 0 {
		done := make(chan error, 1)
		go func() { done <- g.Wait() }()
		select {
		case err = <-done:
		case <-time.After(watchdog):
			res.Deadlocked = true
			res.Consistent = true
			res.Elapsed = time.Since(began)
			log.WithField("scenario", sc.Name).Debug("watchdog fired, abandoning workers")
			if log.IsLevelEnabled(log.DebugLevel) {
				buf := make([]byte, 64<<10)
				log.Debugf("stalled goroutines:\n%s", buf[:runtime.Stack(buf, true)])
			}
			return res, nil
		}
	} else {
		err = g.Wait()
	}
	res.Elapsed = time.Since(began)
	if err != nil {
		return res, err
	}

	var tally int64
	for _, n := range tallies {
		tally += n
	}
	sc.measure(reg, sc, tally, &res)
	return res, nil
}

// Summary aggregates a repeated run: every per-iteration result plus how
// often the misbehavior actually fired.
type Summary struct {
	Scenario     string   `json:"scenario"`
	Runs         int      `json:"runs"`
	Inconsistent int      `json:"inconsistent"`
	Overdrafts   int      `json:"overdrafts,omitempty"`
	Deadlocks    int      `json:"deadlocks,omitempty"`
	Results      []Result `json:"results,omitempty"`
}

// RunRepeated executes the scenario n times, each against a fresh registry
// built from p, and tallies how many iterations misbehaved. Races are
// probabilistic; the tally is the catalogue's measure of how reliably a
// fixture's windows fire on this platform.
func (sc Scenario) RunRepeated(ctx context.Context, p registry.Profile, n int) (Summary, error) {
	sum := Summary{Scenario: sc.Name, Runs: n}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := sc.Run(ctx, registry.NewWithProfile(p))
		if err != nil {
			return sum, err
		}
		if !res.Consistent {
			sum.Inconsistent++
		}
		if res.Overdraft {
			sum.Overdrafts++
		}
		if res.Deadlocked {
			sum.Deadlocks++
		}
		sum.Results = append(sum.Results, res)
	}
	log.WithFields(log.Fields{
		"scenario":     sc.Name,
		"runs":         n,
		"inconsistent": sum.Inconsistent,
		"deadlocks":    sum.Deadlocks,
	}).Info("repeated run complete")
	return sum, nil
}
