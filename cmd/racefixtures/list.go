// list.go implements the 'racefixtures list' command.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kolkov/racefixtures/internal/driver"
)

// listCommand implements the 'racefixtures list' command.
//
// It prints the fixed scenario catalogue: one line per scenario with its
// safety class, default contention shape and description. The names are
// the identifiers 'run' and 'stress' accept.
func listCommand(args []string) {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Error: list takes no arguments, got %v\n", args)
		os.Exit(1)
	}
	writeCatalogue(os.Stdout, driver.Catalogue())
}

// writeCatalogue renders the catalogue listing to w.
func writeCatalogue(w io.Writer, scenarios []driver.Scenario) {
	fmt.Fprintf(w, "%-20s %-9s %-12s %s\n", "NAME", "CLASS", "SHAPE", "DESCRIPTION")
	for _, sc := range scenarios {
		shape := fmt.Sprintf("%dx%d", sc.Workers, sc.Iterations)
		fmt.Fprintf(w, "%-20s %-9s %-12s %s\n", sc.Name, sc.Class, shape, sc.Description)
	}
}
