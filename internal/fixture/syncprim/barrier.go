package syncprim

import "context"

// Barrier is a rendezvous point for a fixed number of participants. All
// arrivals of one generation block until the last participant arrives, at
// which point every waiter is released at once and the barrier resets for
// the next generation.
type Barrier struct {
	mu      Mutex
	parties int
	arrived int
	gen     chan struct{}
}

// NewBarrier creates a barrier for the given participant count.
// It panics if parties is not positive.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("syncprim: barrier parties must be positive")
	}
	return &Barrier{parties: parties, gen: make(chan struct{})}
}

// ArriveAndWait registers the caller's arrival and blocks until the current
// generation completes. The participant that completes the generation
// releases every waiter and returns without blocking.
//
// Cancellation abandons the wait but not the arrival: a canceled caller has
// still been counted, and the generation can complete without it.
func (b *Barrier) ArriveAndWait(ctx context.Context) error {
	b.mu.Lock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.parties {
		// Last arrival: release this generation and open the next.
		b.arrived = 0
		b.gen = make(chan struct{})
		close(gen)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	select {
	case <-gen:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Parties returns the fixed participant count.
func (b *Barrier) Parties() int {
	return b.parties
}
