// stress.go implements the 'racefixtures stress' command.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/kolkov/racefixtures/internal/driver"
)

// stressCommand implements the 'racefixtures stress' command.
//
// It runs one scenario many times at raised contention, each run against a
// fresh registry, and reports how often the misbehavior actually fired.
// Races are probabilistic: a single run proves little, but firing rates
// over fifty or more runs characterize how reliably a fixture's windows
// open on this platform.
//
// Flow:
//  1. Parse arguments (target scenario + run count + contention knobs)
//  2. Optionally widen CPU affinity to every core (-pin, Linux only)
//  3. Raise the scenario to stress contention (-workers, else doubled)
//  4. Repeat the scenario -runs times via the driver
//  5. Render the firing-rate summary (human or -json)
//  6. Exit non-zero iff a safe scenario was ever inconsistent
//
// Example:
//
//	racefixtures stress lost-update -runs 200
//	racefixtures stress toctou-fast -runs 100 -pin
//	racefixtures stress safe-counter -runs 500 -json
func stressCommand(args []string) {
	cfg, err := parseStressArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.pin {
		if err := pinAcrossCPUs(); err != nil {
			log.WithError(err).Warn("could not widen cpu affinity")
		}
	}

	conf, profile := loadProfile()
	sc, err := driver.Find(cfg.target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'racefixtures list' to see the catalogue.\n")
		os.Exit(1)
	}
	sc = applyStressShape(conf.Apply(sc), cfg.workers)

	sum, err := sc.RunRepeated(context.Background(), profile, cfg.runs)
	if err != nil {
		log.WithError(err).WithField("scenario", sc.Name).Fatal("stress run failed")
	}
	if !cfg.jsonOut {
		// Per-run results are for -json consumers; the human summary is
		// the firing rate.
		sum.Results = nil
	}

	if err := renderSummary(os.Stdout, cfg.jsonOut, sum); err != nil {
		log.WithError(err).Fatal("rendering summary")
	}
	if sc.Class == driver.ClassSafe && sum.Inconsistent > 0 {
		os.Exit(1)
	}
}

// stressConfig holds configuration for the stress command.
type stressConfig struct {
	// target is the scenario name. Unlike run, "all" is not accepted:
	// firing rates are per-scenario measurements.
	target string

	// runs is how many times the scenario repeats.
	runs int

	// workers overrides the scenario's worker count when positive.
	workers int

	// pin widens CPU affinity to every core before running (Linux only).
	pin bool

	// jsonOut switches the report to machine-readable JSON.
	jsonOut bool

	// debug enables debug-level logging.
	debug bool
}

// defaultStressRuns is enough repetitions for the firing rate of any
// catalogue fixture to separate cleanly from zero.
const defaultStressRuns = 50

// parseStressArgs parses command-line arguments for 'racefixtures stress'.
//
// The target comes first, flags after:
//
//	racefixtures stress <scenario> [-runs N] [-workers N] [-pin] [-json]
func parseStressArgs(args []string) (*stressConfig, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no scenario specified (use a name from 'racefixtures list')")
	}
	if args[0] == "" || args[0][0] == '-' {
		return nil, fmt.Errorf("the scenario name must come before flags, got %q", args[0])
	}
	if args[0] == "all" {
		return nil, fmt.Errorf("stress runs one scenario at a time; pick a name from 'racefixtures list'")
	}

	cfg := &stressConfig{target: args[0], runs: defaultStressRuns}

	fs := flag.NewFlagSet("stress", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.runs, "runs", defaultStressRuns, "how many times to repeat the scenario")
	fs.IntVar(&cfg.workers, "workers", 0, "override the scenario's worker count")
	fs.BoolVar(&cfg.pin, "pin", false, "widen cpu affinity to every core (linux)")
	fs.BoolVar(&cfg.jsonOut, "json", false, "emit machine-readable results")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments after flags: %v", rest)
	}
	if cfg.runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", cfg.runs)
	}
	if cfg.workers < 0 {
		return nil, fmt.Errorf("workers must be positive")
	}

	return cfg, nil
}

// applyStressShape raises sc to stress contention. An explicit -workers
// override wins; otherwise the catalogue's worker count is doubled, so the
// windows see more simultaneous openers than a plain run. The measures
// derive their expectations from the shape that actually ran, so the
// raised count stays verifiable.
func applyStressShape(sc driver.Scenario, workers int) driver.Scenario {
	if workers > 0 {
		sc.Workers = workers
		return sc
	}
	sc.Workers *= 2
	return sc
}

// renderSummary writes the firing-rate report, machine-readable when
// jsonOut is set.
func renderSummary(w io.Writer, jsonOut bool, sum driver.Summary) error {
	if jsonOut {
		return driver.WriteJSON(w, sum)
	}
	driver.NewReporter(w, driver.ColorsEnabled()).PrintSummary(sum)
	return nil
}
