package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
)

// ColorsEnabled reports whether stdout wants ANSI color: a real terminal
// with neither NO_COLOR set nor TERM=dumb.
func ColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Reporter renders results for humans. Color is decided once at
// construction so output stays stable mid-report.
type Reporter struct {
	w  io.Writer
	au *aurora.Aurora
}

// NewReporter builds a reporter writing to w, colored when colors is true.
func NewReporter(w io.Writer, colors bool) *Reporter {
	return &Reporter{w: w, au: aurora.New(aurora.WithColors(colors))}
}

// Print renders one result as a verdict line plus a detail line.
func (rp *Reporter) Print(res Result) {
	fmt.Fprintf(rp.w, "%-20s %-9s %2d workers x %-6d %10s  %s\n",
		res.Scenario, res.Class, res.Workers, res.Iterations,
		res.Elapsed.Round(time.Microsecond), rp.verdict(res))

	switch {
	case res.Deadlocked:
		fmt.Fprintf(rp.w, "%sacquirers stalled past the watchdog, abandoned\n", detailIndent)
	case res.Content != "":
		fmt.Fprintf(rp.w, "%scontent %q\n", detailIndent, res.Content)
	case res.Withdrawn != 0 || res.Successes != 0:
		fmt.Fprintf(rp.w, "%sbalance %d after %d admitted withdrawals (%d paid out, expected balance %d)\n",
			detailIndent, res.Balance, res.Successes, res.Withdrawn, res.Expected)
	default:
		fmt.Fprintf(rp.w, "%sobserved %d, expected %d\n", detailIndent, res.Observed, res.Expected)
	}
}

const detailIndent = "    "

// PrintAll renders every result in order.
func (rp *Reporter) PrintAll(results []Result) {
	for _, res := range results {
		rp.Print(res)
	}
}

// PrintSummary renders a repeated run's tally.
func (rp *Reporter) PrintSummary(sum Summary) {
	fmt.Fprintf(rp.w, "%-20s %d runs: %d inconsistent, %d overdrafts, %d deadlocks\n",
		sum.Scenario, sum.Runs, sum.Inconsistent, sum.Overdrafts, sum.Deadlocks)
}

func (rp *Reporter) verdict(res Result) aurora.Value {
	switch v := res.Verdict(); v {
	case "PASS":
		return rp.au.Green(v)
	case "FAIL":
		return rp.au.Red(v).Bold()
	case "RACE":
		return rp.au.Red(v)
	case "DEADLOCK":
		return rp.au.Yellow(v)
	default:
		return rp.au.Reset(v)
	}
}

// WriteJSON renders results machine-readable, indented, one document.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("driver: encoding results: %w", err)
	}
	return nil
}
