package registry

import "time"

// Profile collects the timing parameters that keep the constructed races and
// deadlocks reliably reproducible. None of them change what an operation
// computes, only how wide its windows are; platforms where the defaults
// prove flaky can widen them without touching the catalogue.
type Profile struct {
	// RaceWindow separates the read from the write in the split
	// read-modify-write fixtures that sleep (multiply, buffer write).
	RaceWindow time.Duration

	// CheckToActGap is the window between the balance-sufficient check and
	// the acting read of the slow TOCTOU withdrawal.
	CheckToActGap time.Duration

	// CommitGap is the window between the acting read and the committing
	// write of the slow TOCTOU withdrawal.
	CommitGap time.Duration

	// DeadlockGap separates the first from the second acquisition in the
	// inverted-order lock fixtures. Both callers must take their first lock
	// within this window for the constructed deadlock to bite.
	DeadlockGap time.Duration

	// SpinRounds is the length of the pure-compute window of the fast
	// TOCTOU withdrawal, in non-elidable touches. The fast variant never
	// yields, so its race stays visible even on schedulers that serialize
	// sleepers.
	SpinRounds int

	// WorkerTick is the background worker's delay between increments.
	WorkerTick time.Duration
}

// DefaultProfile returns the catalogue's original timing constants.
func DefaultProfile() Profile {
	return Profile{
		RaceWindow:    time.Microsecond,
		CheckToActGap: 100 * time.Microsecond,
		CommitGap:     50 * time.Microsecond,
		DeadlockGap:   100 * time.Microsecond,
		SpinRounds:    100,
		WorkerTick:    time.Millisecond,
	}
}
