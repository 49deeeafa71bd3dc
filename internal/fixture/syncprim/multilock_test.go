package syncprim

import (
	"sync"
	"testing"
	"time"
)

func TestMultiLockPanicsOnSameLock(t *testing.T) {
	var mu Mutex
	defer func() {
		if recover() == nil {
			t.Error("NewMultiLock(&mu, &mu) did not panic")
		}
	}()
	NewMultiLock(&mu, &mu)
}

func TestMultiLockMutualExclusion(t *testing.T) {
	const (
		workers    = 8
		iterations = 2000
	)

	var a, b Mutex
	ml := NewMultiLock(&a, &b)

	var counter int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < iterations; i++ {
				ml.Lock()
				counter++
				ml.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}

// Opposite construction orders must still complete: the internal order
// depends on the locks, not the arguments.
func TestMultiLockOppositeOrdersNoDeadlock(t *testing.T) {
	const iterations = 2000

	var a, b Mutex
	ab := NewMultiLock(&a, &b)
	ba := NewMultiLock(&b, &a)

	var counter int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for _, ml := range []*MultiLock{ab, ba} {
		wg.Add(1)
		go func(ml *MultiLock) {
			defer wg.Done()
			<-start
			for i := 0; i < iterations; i++ {
				ml.Lock()
				counter++
				ml.Unlock()
			}
		}(ml)
	}
	close(start)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposite-order MultiLocks deadlocked")
	}

	if counter != 2*iterations {
		t.Errorf("counter = %d, want %d", counter, 2*iterations)
	}
}
