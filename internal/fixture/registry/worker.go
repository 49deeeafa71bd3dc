package registry

import (
	"time"

	"github.com/kolkov/racefixtures/internal/fixture/memorder"
)

// StartWorker launches the cooperative background worker: one goroutine
// that increments the worker tick counter each loop iteration and checks a
// cancellation flag between iterations. It reports whether a worker was
// started; a second Start while one is running does nothing and returns
// false.
func (r *Registry) StartWorker() bool {
	r.workerMu.Lock()
	defer r.workerMu.Unlock()
	if r.workerRunning {
		return false
	}
	r.workerStop.Store(false)
	r.workerWG.Add(1)
	go r.workerLoop()
	r.workerRunning = true
	return true
}

// StopWorker signals the worker to stop and joins it synchronously: when
// StopWorker returns true, the worker goroutine has observed the flag,
// finished its final iteration and exited. Stopping a stopped worker does
// nothing and returns false. The tick counter keeps its value across
// stop/start cycles.
func (r *Registry) StopWorker() bool {
	r.workerMu.Lock()
	defer r.workerMu.Unlock()
	if !r.workerRunning {
		return false
	}
	r.workerStop.Store(true)
	r.workerWG.Wait()
	r.workerRunning = false
	return true
}

// WorkerRunning reports whether the background worker is currently running.
func (r *Registry) WorkerRunning() bool {
	r.workerMu.Lock()
	defer r.workerMu.Unlock()
	return r.workerRunning
}

func (r *Registry) workerLoop() {
	defer r.workerWG.Done()
	for !r.workerStop.Load() {
		memorder.Add(&r.workerTicks, 1, memorder.Relaxed)
		time.Sleep(r.profile.WorkerTick)
	}
}
