package registry

import (
	"testing"
	"time"
)

func fastWorkerProfile() Profile {
	p := DefaultProfile()
	p.WorkerTick = 100 * time.Microsecond
	return p
}

// TestWorkerStartStop verifies the start/stop handshake and its
// idempotence.
func TestWorkerStartStop(t *testing.T) {
	r := NewWithProfile(fastWorkerProfile())

	if r.WorkerRunning() {
		t.Fatal("Expected fresh registry without a worker")
	}
	if !r.StartWorker() {
		t.Fatal("Expected first start to launch the worker")
	}
	if r.StartWorker() {
		t.Error("Expected second start to be refused")
	}
	if !r.WorkerRunning() {
		t.Error("Expected worker reported running")
	}

	if !r.StopWorker() {
		t.Error("Expected first stop to join the worker")
	}
	if r.StopWorker() {
		t.Error("Expected second stop to be refused")
	}
	if r.WorkerRunning() {
		t.Error("Expected worker reported stopped")
	}
}

// TestStopWithoutStart verifies stopping a never-started worker is a
// refused no-op.
func TestStopWithoutStart(t *testing.T) {
	r := New()
	if r.StopWorker() {
		t.Error("Expected stop without start to be refused")
	}
}

// TestWorkerTicksAdvanceAndSettle verifies the loop makes progress while
// running and the counter is quiescent after the join.
func TestWorkerTicksAdvanceAndSettle(t *testing.T) {
	r := NewWithProfile(fastWorkerProfile())

	r.StartWorker()
	time.Sleep(20 * time.Millisecond)
	r.StopWorker()

	ticks := r.WorkerTickCount()
	if ticks == 0 {
		t.Error("Expected the worker to tick at least once")
	}

	// StopWorker joined the goroutine; nothing moves the counter now.
	time.Sleep(10 * time.Millisecond)
	if again := r.WorkerTickCount(); again != ticks {
		t.Errorf("Expected tick count settled at %d, got %d", ticks, again)
	}
}

// TestWorkerRestartAccumulates verifies the tick counter survives
// stop/start cycles.
func TestWorkerRestartAccumulates(t *testing.T) {
	r := NewWithProfile(fastWorkerProfile())

	r.StartWorker()
	time.Sleep(10 * time.Millisecond)
	r.StopWorker()
	first := r.WorkerTickCount()
	if first == 0 {
		t.Fatal("Expected ticks from the first cycle")
	}

	r.StartWorker()
	time.Sleep(10 * time.Millisecond)
	r.StopWorker()
	second := r.WorkerTickCount()
	if second <= first {
		t.Errorf("Expected ticks to accumulate across cycles, %d then %d", first, second)
	}
}
