// stress_test.go tests the 'racefixtures stress' command.
package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kolkov/racefixtures/internal/driver"
)

// TestParseStressArgs_Defaults tests parsing a bare scenario name.
func TestParseStressArgs_Defaults(t *testing.T) {
	args := []string{"toctou-fast"}

	cfg, err := parseStressArgs(args)
	if err != nil {
		t.Fatalf("parseStressArgs() error: %v", err)
	}

	if cfg.target != "toctou-fast" {
		t.Errorf("Expected target toctou-fast, got %s", cfg.target)
	}

	if cfg.runs != defaultStressRuns {
		t.Errorf("Expected %d runs by default, got %d", defaultStressRuns, cfg.runs)
	}

	if cfg.pin {
		t.Error("Expected pin off by default")
	}
}

// TestParseStressArgs_WithFlags tests target followed by flags.
func TestParseStressArgs_WithFlags(t *testing.T) {
	args := []string{"lost-update", "-runs", "200", "-workers", "8", "-pin", "-json"}

	cfg, err := parseStressArgs(args)
	if err != nil {
		t.Fatalf("parseStressArgs() error: %v", err)
	}

	if cfg.runs != 200 {
		t.Errorf("Expected 200 runs, got %d", cfg.runs)
	}

	if cfg.workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.workers)
	}

	if !cfg.pin {
		t.Error("Expected pin on")
	}

	if !cfg.jsonOut {
		t.Error("Expected jsonOut on")
	}
}

// TestParseStressArgs_NoTarget tests error when no scenario is given.
func TestParseStressArgs_NoTarget(t *testing.T) {
	args := []string{}

	_, err := parseStressArgs(args)
	if err == nil {
		t.Error("Expected error for missing scenario, got nil")
	}

	if !strings.Contains(err.Error(), "no scenario") {
		t.Errorf("Expected 'no scenario' error, got: %v", err)
	}
}

// TestParseStressArgs_RejectsAll tests that stress refuses the "all" target.
func TestParseStressArgs_RejectsAll(t *testing.T) {
	args := []string{"all", "-runs", "10"}

	_, err := parseStressArgs(args)
	if err == nil {
		t.Error("Expected error for 'all' target, got nil")
	}

	if !strings.Contains(err.Error(), "one scenario") {
		t.Errorf("Expected 'one scenario' error, got: %v", err)
	}
}

// TestParseStressArgs_BadRuns tests error on a non-positive run count.
func TestParseStressArgs_BadRuns(t *testing.T) {
	args := []string{"lost-update", "-runs", "0"}

	_, err := parseStressArgs(args)
	if err == nil {
		t.Error("Expected error for zero runs, got nil")
	}

	if !strings.Contains(err.Error(), "must be positive") {
		t.Errorf("Expected 'must be positive' error, got: %v", err)
	}
}

// TestParseStressArgs_TrailingArgs tests error on extra positional arguments.
func TestParseStressArgs_TrailingArgs(t *testing.T) {
	args := []string{"lost-update", "-runs", "10", "extra"}

	_, err := parseStressArgs(args)
	if err == nil {
		t.Error("Expected error for trailing arguments, got nil")
	}
}

// TestApplyStressShape_DoublesWorkers tests the default contention raise.
func TestApplyStressShape_DoublesWorkers(t *testing.T) {
	sc, err := driver.Find("lost-update")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	got := applyStressShape(sc, 0)
	if got.Workers != 2*sc.Workers {
		t.Errorf("Expected %d workers, got %d", 2*sc.Workers, got.Workers)
	}

	if got.Iterations != sc.Iterations {
		t.Errorf("Expected iterations unchanged at %d, got %d", sc.Iterations, got.Iterations)
	}
}

// TestApplyStressShape_OverrideWins tests that -workers beats the doubling.
func TestApplyStressShape_OverrideWins(t *testing.T) {
	sc, err := driver.Find("lost-update")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	got := applyStressShape(sc, 3)
	if got.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", got.Workers)
	}
}

// TestRenderSummary_JSON tests the machine-readable summary path.
func TestRenderSummary_JSON(t *testing.T) {
	sum := driver.Summary{Scenario: "lost-update", Runs: 50, Inconsistent: 37}

	var buf bytes.Buffer
	if err := renderSummary(&buf, true, sum); err != nil {
		t.Fatalf("renderSummary() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded["scenario"] != "lost-update" {
		t.Errorf("Expected scenario lost-update, got %v", decoded["scenario"])
	}

	if decoded["inconsistent"] != float64(37) {
		t.Errorf("Expected 37 inconsistent runs, got %v", decoded["inconsistent"])
	}
}

// TestRenderSummary_Plain tests the human-readable summary path.
func TestRenderSummary_Plain(t *testing.T) {
	sum := driver.Summary{Scenario: "lost-update", Runs: 50, Inconsistent: 37}

	var buf bytes.Buffer
	if err := renderSummary(&buf, false, sum); err != nil {
		t.Fatalf("renderSummary() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "lost-update") {
		t.Errorf("Expected scenario name in output, got: %s", out)
	}

	if !strings.Contains(out, "37") {
		t.Errorf("Expected inconsistent count in output, got: %s", out)
	}
}

// BenchmarkParseStressArgs benchmarks argument parsing.
func BenchmarkParseStressArgs(b *testing.B) {
	args := []string{"lost-update", "-runs", "200", "-workers", "8", "-pin"}

	for i := 0; i < b.N; i++ {
		_, _ = parseStressArgs(args)
	}
}
