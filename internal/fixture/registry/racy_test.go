package registry

import (
	"strings"
	"testing"
)

// The racy operations are deterministic in isolation: with a single caller
// every one computes the obviously correct result. These tests pin that
// single-threaded contract; the concurrent behavior lives in the
// demonstration tests.

// TestUnsafeIncrementSerial verifies the split increment is exact without
// concurrency.
func TestUnsafeIncrementSerial(t *testing.T) {
	r := New()
	for i := 0; i < 10; i++ {
		r.UnsafeIncrement()
	}
	if v := r.CounterValue(); v != 10 {
		t.Errorf("Expected counter 10, got %d", v)
	}
}

// TestUnsafeDecrementSerial verifies the split decrement mirrors the
// increment.
func TestUnsafeDecrementSerial(t *testing.T) {
	r := New()
	for i := 0; i < 10; i++ {
		r.UnsafeIncrement()
	}
	for i := 0; i < 4; i++ {
		r.UnsafeDecrement()
	}
	if v := r.CounterValue(); v != 6 {
		t.Errorf("Expected counter 6, got %d", v)
	}
}

// TestUnsafeMultiplySerial verifies the delayed multiply scales correctly.
func TestUnsafeMultiplySerial(t *testing.T) {
	r := New()
	for i := 0; i < 5; i++ {
		r.UnsafeIncrement()
	}
	r.UnsafeMultiply(3)
	if v := r.CounterValue(); v != 15 {
		t.Errorf("Expected counter 15, got %d", v)
	}
}

// TestUnsafeCompoundSerial verifies the three-stage transformation from
// several starting points.
func TestUnsafeCompoundSerial(t *testing.T) {
	tests := []struct {
		start int64
		want  int64
	}{
		{0, 15},    // ((0+10)*2)-5
		{5, 25},    // ((5+10)*2)-5
		{100, 215}, // ((100+10)*2)-5
	}
	for _, tt := range tests {
		r := New()
		for i := int64(0); i < tt.start; i++ {
			r.UnsafeIncrement()
		}
		r.UnsafeCompound()
		if v := r.CounterValue(); v != tt.want {
			t.Errorf("Compound from %d: expected %d, got %d", tt.start, tt.want, v)
		}
	}
}

// TestUnsafeWriteBufferSerial verifies content and suffix without
// concurrency.
func TestUnsafeWriteBufferSerial(t *testing.T) {
	r := New()
	r.UnsafeWriteBuffer("hello")
	if s := r.BufferString(); s != "hello"+ProcessedSuffix {
		t.Errorf("Expected %q, got %q", "hello"+ProcessedSuffix, s)
	}

	// A later write fully replaces an earlier, longer one.
	r.UnsafeWriteBuffer("hi")
	if s := r.BufferString(); s != "hi"+ProcessedSuffix {
		t.Errorf("Expected %q, got %q", "hi"+ProcessedSuffix, s)
	}
}

// TestUnsafeWriteBufferClipsLongText verifies oversized text is clipped so
// the suffix always fits.
func TestUnsafeWriteBufferClipsLongText(t *testing.T) {
	r := New()
	r.UnsafeWriteBuffer(strings.Repeat("x", 2*BufferCapacity))
	s := r.BufferString()
	if len(s) != BufferCapacity {
		t.Errorf("Expected clipped length %d, got %d", BufferCapacity, len(s))
	}
	if !strings.HasSuffix(s, ProcessedSuffix) {
		t.Errorf("Expected suffix %q on clipped content", ProcessedSuffix)
	}
}

// TestUnsafeSingletonSerial verifies lazy construction and stability of the
// racy slot under a single caller.
func TestUnsafeSingletonSerial(t *testing.T) {
	r := New()
	p1 := r.UnsafeSingleton()
	if p1 == nil {
		t.Fatal("Expected a payload from first use")
	}
	if !p1.Initialized || p1.Data != 42 {
		t.Errorf("Expected initialized payload with data 42, got %+v", p1)
	}
	if n := r.SingletonConstructions(); n != 1 {
		t.Errorf("Expected 1 construction, got %d", n)
	}

	p2 := r.UnsafeSingleton()
	if p2 != p1 {
		t.Error("Expected second use to return the same payload")
	}
	if n := r.SingletonConstructions(); n != 1 {
		t.Errorf("Expected construction count to stay 1, got %d", n)
	}
}

// TestUnsafeWithdrawSerial verifies the slow TOCTOU withdrawal debits
// correctly and refuses overdrafts without concurrency.
func TestUnsafeWithdrawSerial(t *testing.T) {
	r := New()
	if !r.UnsafeWithdraw(400) {
		t.Error("Expected first withdrawal of 400 to succeed")
	}
	if !r.UnsafeWithdraw(400) {
		t.Error("Expected second withdrawal of 400 to succeed")
	}
	if v := r.UnsafeBalance(); v != 200 {
		t.Errorf("Expected balance 200, got %d", v)
	}
	if r.UnsafeWithdraw(400) {
		t.Error("Expected third withdrawal of 400 to fail")
	}
	if v := r.UnsafeBalance(); v != 200 {
		t.Errorf("Expected balance unchanged at 200, got %d", v)
	}
}

// TestUnsafeWithdrawFastSerial verifies the spin variant behaves like the
// slow one under a single caller.
func TestUnsafeWithdrawFastSerial(t *testing.T) {
	r := New()
	for i := 0; i < 10; i++ {
		if !r.UnsafeWithdrawFast(100) {
			t.Fatalf("Expected withdrawal %d of 100 to succeed", i+1)
		}
	}
	if v := r.FastBalance(); v != 0 {
		t.Errorf("Expected fast balance drained to 0, got %d", v)
	}
	if r.UnsafeWithdrawFast(1) {
		t.Error("Expected withdrawal from empty balance to fail")
	}
}

// TestUnsafeReadWriteSerial verifies the unguarded cell accessors.
func TestUnsafeReadWriteSerial(t *testing.T) {
	r := New()
	if v := r.UnsafeRead(); v != 0 {
		t.Errorf("Expected initial cell 0, got %d", v)
	}
	r.UnsafeWrite(77)
	if v := r.UnsafeRead(); v != 77 {
		t.Errorf("Expected cell 77, got %d", v)
	}
}

// TestDeadlockPairSerial verifies the inverted-order pair is harmless from
// a single goroutine: run back to back there is no second caller to cross
// with, so both complete and both values advance.
func TestDeadlockPairSerial(t *testing.T) {
	r := New()
	r.DeadlockAB()
	r.DeadlockBA()
	if a, b := r.DualValues(); a != 2 || b != 2 {
		t.Errorf("Expected ordered pair (2,2), got (%d,%d)", a, b)
	}
}
