package registry

import (
	"fmt"

	"github.com/kolkov/racefixtures/internal/fixture/memorder"
)

// Discipline is a synchronization discipline applied to one logical shared
// transformation. The racy and safe halves of the catalogue are the named,
// stable surface; Transform exposes the same update parameterized by
// discipline so drivers can sweep the whole spectrum through one entry
// point.
type Discipline int

const (
	// DisciplineNone applies the update with plain, unsynchronized
	// accesses. This is the racy form.
	DisciplineNone Discipline = iota

	// DisciplineExclusive holds an exclusive lock across the update.
	DisciplineExclusive

	// DisciplineShared takes the read lock for the read and the write lock
	// for the write, leaving the upgrade window between them visible.
	DisciplineShared

	// DisciplineAtomic applies the update as one indivisible atomic add.
	DisciplineAtomic

	// DisciplineOnce applies the update exactly once per registry through
	// a once-gate; later calls observe without updating.
	DisciplineOnce
)

var disciplineNames = [...]string{
	DisciplineNone:      "none",
	DisciplineExclusive: "exclusive",
	DisciplineShared:    "shared",
	DisciplineAtomic:    "atomic",
	DisciplineOnce:      "once",
}

// String returns the catalogue name of the discipline.
func (d Discipline) String() string {
	if d < DisciplineNone || d > DisciplineOnce {
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
	return disciplineNames[d]
}

// ParseDiscipline converts a catalogue name back into a Discipline.
func ParseDiscipline(s string) (Discipline, error) {
	for d, name := range disciplineNames {
		if s == name {
			return Discipline(d), nil
		}
	}
	return DisciplineNone, fmt.Errorf("registry: unknown discipline %q", s)
}

// Transform applies delta to the counter family under the chosen discipline
// and returns the resulting value as observed by that discipline's own read
// path.
//
// Each discipline acts on the entity that carries it: none on the racy
// counter, exclusive and once on the guarded counter, shared on the
// reader/writer cell, atomic on the atomic counter. Under DisciplineNone
// the returned value is itself an unsynchronized read.
func (r *Registry) Transform(d Discipline, delta int64) int64 {
	switch d {
	case DisciplineNone:
		v := r.counter
		memorder.Touch(&r.fence)
		r.counter = v + delta
		return r.counter
	case DisciplineExclusive:
		r.counterMu.Lock()
		defer r.counterMu.Unlock()
		r.safeCounter += delta
		return r.safeCounter
	case DisciplineShared:
		r.sharedMu.RLock()
		v := r.sharedData
		r.sharedMu.RUnlock()
		// Upgrade window: a concurrent Transform can land between the
		// read above and the write below. Lost updates here are the
		// shared discipline's documented limit, not a defect of the
		// locking itself.
		r.sharedMu.Lock()
		r.sharedData = v + delta
		v = r.sharedData
		r.sharedMu.Unlock()
		return v
	case DisciplineAtomic:
		return memorder.Add(&r.atomicCounter, delta, memorder.Relaxed)
	case DisciplineOnce:
		r.transformOnce.Do(func() {
			r.counterMu.Lock()
			r.safeCounter += delta
			r.counterMu.Unlock()
		})
		r.counterMu.Lock()
		defer r.counterMu.Unlock()
		return r.safeCounter
	default:
		panic(fmt.Sprintf("registry: unknown discipline %d", int(d)))
	}
}
