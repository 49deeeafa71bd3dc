// list_test.go tests the 'racefixtures list' command.
package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/kolkov/racefixtures/internal/driver"
)

// TestWriteCatalogue tests the catalogue table rendering.
func TestWriteCatalogue(t *testing.T) {
	scenarios := driver.Catalogue()

	var buf bytes.Buffer
	writeCatalogue(&buf, scenarios)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Header plus one line per scenario
	if len(lines) != len(scenarios)+1 {
		t.Fatalf("Expected %d lines, got %d", len(scenarios)+1, len(lines))
	}

	for _, col := range []string{"NAME", "CLASS", "SHAPE", "DESCRIPTION"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("Expected %s column in header, got: %s", col, lines[0])
		}
	}

	for i, sc := range scenarios {
		if !strings.HasPrefix(lines[i+1], sc.Name) {
			t.Errorf("Line %d: expected to start with %s, got: %s", i+1, sc.Name, lines[i+1])
		}

		if !strings.Contains(lines[i+1], sc.Class.String()) {
			t.Errorf("Line %d: expected class %s, got: %s", i+1, sc.Class, lines[i+1])
		}
	}
}

// TestWriteCatalogue_Shape tests the workers-by-iterations shape column.
func TestWriteCatalogue_Shape(t *testing.T) {
	sc, err := driver.Find("lost-update")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	var buf bytes.Buffer
	writeCatalogue(&buf, []driver.Scenario{sc})

	want := fmt.Sprintf("%dx%d", sc.Workers, sc.Iterations)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("Expected shape %s in output, got: %s", want, buf.String())
	}
}
