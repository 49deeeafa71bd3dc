package syncprim

import (
	"sync"
	"sync/atomic"
)

// OnceGate guarantees an initialization routine executes exactly once.
// Concurrent callers block until the first caller's routine completes, then
// observe its fully-visible result. The gate additionally exposes whether
// initialization has happened, which the catalogue uses for introspection.
type OnceGate struct {
	once sync.Once
	done atomic.Bool
}

// Do runs f if and only if no Do call on this gate has run before. Every Do
// call returns only after the winning f has completed.
func (g *OnceGate) Do(f func()) {
	g.once.Do(func() {
		f()
		g.done.Store(true)
	})
}

// Done reports whether the gate's routine has completed.
func (g *OnceGate) Done() bool {
	return g.done.Load()
}
