// Package main implements the racefixtures CLI tool.
//
// The racefixtures tool drives the concurrency fixture catalogue from the
// command line: it runs paired racy/safe scenarios under real contention
// and reports whether each one misbehaved the way its class predicts.
// It works by:
//
//  1. Loading the optional racefixtures.yml timing profile
//  2. Building a fresh shared-state registry per scenario
//  3. Releasing the scenario's workers together against the registry
//  4. Judging the final state against the scenario's safety class
//
// Usage:
//
//	racefixtures list                  # Show the catalogue
//	racefixtures run all               # Run every scenario once
//	racefixtures run lost-update       # Run one scenario
//	racefixtures stress toctou-fast    # Hammer one scenario repeatedly
//
// Safe scenarios must come out exact; a safe scenario that does not is a
// real failure and the tool exits non-zero. Racy and deadlock scenarios
// are expected to misbehave under contention. Their verdicts (RACE,
// DEADLOCK, or CLEAN when the window did not fire this time) are
// reported, never treated as failures.
//
// This is the CLI entry point for the fixture catalogue.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/kolkov/racefixtures/fixtures"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list":
		listCommand(os.Args[2:])
	case "run":
		runCommand(os.Args[2:])
	case "stress":
		stressCommand(os.Args[2:])
	case "version", "--version", "-v":
		info := fixtures.GetInfo()
		fmt.Printf("racefixtures version %s (race detector: %v, deadlock detector: %v)\n",
			info.Version, info.RaceDetector, info.DeadlockDetector)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`racefixtures - Concurrency Fixture Catalogue Runner

USAGE:
    racefixtures <command> [arguments]

COMMANDS:
    list       Show the scenario catalogue
    run        Run scenarios and judge them against their safety class
    stress     Run one scenario repeatedly and tally how often it misbehaves
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Run the whole catalogue once
    racefixtures run all

    # Run one scenario with a custom contention shape
    racefixtures run lost-update -workers 16 -iterations 50000

    # Emit machine-readable results
    racefixtures run all -json

    # Hammer the fast TOCTOU withdrawal 200 times, pinned across CPUs
    racefixtures stress toctou-fast -runs 200 -pin

ABOUT:
    racefixtures is a ground-truth catalogue of constructed concurrency
    bugs and their corrections. Every racy operation (lost updates, torn
    buffer writes, check-then-act withdrawals, broken double-checked
    locking, inverted lock orders) is paired with a safe mirror that
    performs the same transformation under correct synchronization.

    The catalogue exists to validate detection tooling: run the racy half
    under 'go test -race' or your own happens-before analyzer and it must
    be flagged; run the safe half the same way and it must come out clean.

    Timing windows are tuning parameters, not semantics. Put a
    racefixtures.yml next to go.mod to widen them on platforms where the
    constructed races prove flaky.

FOR MORE INFORMATION:
    Repository: https://github.com/kolkov/racefixtures
    Documentation: https://pkg.go.dev/github.com/kolkov/racefixtures/fixtures

`)
}
