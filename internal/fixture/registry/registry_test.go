package registry

import (
	"strings"
	"testing"
	"time"
)

// TestNewInitialState verifies every entity starts at its documented value.
func TestNewInitialState(t *testing.T) {
	r := New()

	if v := r.CounterValue(); v != 0 {
		t.Errorf("Expected racy counter 0, got %d", v)
	}
	if v := r.SafeCounterValue(); v != 0 {
		t.Errorf("Expected guarded counter 0, got %d", v)
	}
	if v := r.AtomicCounterValue(); v != 0 {
		t.Errorf("Expected atomic counter 0, got %d", v)
	}
	if v := r.UnsafeBalance(); v != InitialBalance {
		t.Errorf("Expected plain balance %d, got %d", InitialBalance, v)
	}
	if v := r.FastBalance(); v != InitialBalance {
		t.Errorf("Expected fast balance %d, got %d", InitialBalance, v)
	}
	if v := r.Balance(); v != InitialBalance {
		t.Errorf("Expected atomic balance %d, got %d", InitialBalance, v)
	}
	if s := r.BufferString(); s != "" {
		t.Errorf("Expected empty buffer, got %q", s)
	}
	if v := r.SharedValue(); v != 0 {
		t.Errorf("Expected shared cell 0, got %d", v)
	}
	if a, b := r.DualValues(); a != 0 || b != 0 {
		t.Errorf("Expected ordered pair (0,0), got (%d,%d)", a, b)
	}
	if n := r.SingletonConstructions(); n != 0 {
		t.Errorf("Expected 0 constructions before first use, got %d", n)
	}
	if n := r.ResourcesInUse(); n != 0 {
		t.Errorf("Expected 0 permits in use, got %d", n)
	}
	if n := r.WorkerTickCount(); n != 0 {
		t.Errorf("Expected 0 worker ticks, got %d", n)
	}
	if r.WorkerRunning() {
		t.Error("Expected worker stopped on a fresh registry")
	}
}

// TestNewWithProfile verifies a custom timing profile round-trips.
func TestNewWithProfile(t *testing.T) {
	p := Profile{
		RaceWindow:    5 * time.Microsecond,
		CheckToActGap: time.Millisecond,
		CommitGap:     200 * time.Microsecond,
		DeadlockGap:   time.Millisecond,
		SpinRounds:    7,
		WorkerTick:    10 * time.Millisecond,
	}
	r := NewWithProfile(p)
	if got := r.Profile(); got != p {
		t.Errorf("Expected profile %+v, got %+v", p, got)
	}
}

// TestDefaultProfile pins the original timing constants.
func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.RaceWindow != time.Microsecond {
		t.Errorf("Expected race window 1µs, got %v", p.RaceWindow)
	}
	if p.CheckToActGap != 100*time.Microsecond {
		t.Errorf("Expected check-to-act gap 100µs, got %v", p.CheckToActGap)
	}
	if p.CommitGap != 50*time.Microsecond {
		t.Errorf("Expected commit gap 50µs, got %v", p.CommitGap)
	}
	if p.DeadlockGap != 100*time.Microsecond {
		t.Errorf("Expected deadlock gap 100µs, got %v", p.DeadlockGap)
	}
	if p.SpinRounds != 100 {
		t.Errorf("Expected 100 spin rounds, got %d", p.SpinRounds)
	}
	if p.WorkerTick != time.Millisecond {
		t.Errorf("Expected worker tick 1ms, got %v", p.WorkerTick)
	}
}

// TestFixedShapes pins the catalogue's structural constants.
func TestFixedShapes(t *testing.T) {
	if BufferCapacity != 1024 {
		t.Errorf("Expected buffer capacity 1024, got %d", BufferCapacity)
	}
	if BarrierParties != 4 {
		t.Errorf("Expected 4 barrier parties, got %d", BarrierParties)
	}
	if LatchCount != 1 {
		t.Errorf("Expected latch count 1, got %d", LatchCount)
	}
	if PoolCapacity != 10 {
		t.Errorf("Expected pool capacity 10, got %d", PoolCapacity)
	}
	if !strings.HasPrefix(ProcessedSuffix, " - ") {
		t.Errorf("Unexpected processed suffix %q", ProcessedSuffix)
	}
}
