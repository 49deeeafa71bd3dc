package registry

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/racefixtures/internal/fixture/syncprim"
)

// Documented initial values and fixed shapes of the catalogue's entities.
const (
	// BufferCapacity is the shared byte buffer's fixed size.
	BufferCapacity = 1024

	// InitialBalance is the starting value of all three bank balances.
	InitialBalance = 1000

	// BarrierParties is the participant count of the rendezvous barrier.
	BarrierParties = 4

	// LatchCount is the initial count of the one-shot start latch.
	LatchCount = 1

	// PoolCapacity is the permit count of the resource pool.
	PoolCapacity = 10

	// ProcessedSuffix is appended to every buffer write.
	ProcessedSuffix = " - processed"
)

// Payload is the singleton's underlying object. Initialized reports whether
// construction finished; a safe reader can never observe it false, an
// unsafe reader can.
type Payload struct {
	Data        int64
	Initialized bool
}

// newPayload is the singleton constructor shared by both variants.
func newPayload() *Payload {
	return &Payload{Data: 42, Initialized: true}
}

// Registry is the process-wide shared-state aggregate every operation pair
// acts on. The zero value is not usable; construct with New or
// NewWithProfile.
type Registry struct {
	// Cells accessed through sync/atomic sit first so they stay 64-bit
	// aligned on 32-bit platforms.

	// fence is the touch target of the racy fixtures' optimization
	// barriers. Nothing ever reads it for its value.
	fence int64

	// atomicCounter is the lock-free counter. All access goes through
	// memorder with the declared orders.
	atomicCounter int64

	// atomicBalance is the CAS-withdrawal balance.
	atomicBalance int64

	// workerTicks counts background worker loop iterations.
	workerTicks int64

	profile Profile

	// counter is the racy counter. The racy operations access it with
	// plain, unsynchronized reads and writes; that is the fixture.
	counter int64

	counterMu   syncprim.Mutex
	safeCounter int64 // guarded by counterMu

	bufMu  syncprim.Mutex
	buf    [BufferCapacity]byte // guarded by bufMu in the safe variant only
	bufLen int

	// balance and fastBalance are the TOCTOU targets, plain accesses only.
	balance     int64
	fastBalance int64

	singleton     *Payload // racy slot, broken double-checked locking
	singletonMu   syncprim.Mutex
	safeSingleton atomic.Pointer[Payload]
	singletonOnce syncprim.OnceGate
	constructions atomic.Int64

	sharedMu   syncprim.RWMutex
	sharedData int64 // guarded by sharedMu in the safe variants only

	lockA syncprim.Mutex
	lockB syncprim.Mutex
	dual  *syncprim.MultiLock
	dualA int64 // guarded by lockA
	dualB int64 // guarded by lockB

	transformOnce syncprim.OnceGate

	barrier *syncprim.Barrier
	latch   *syncprim.Latch
	pool    *syncprim.Pool
	ready   *syncprim.Signal

	notifyMu syncprim.Mutex
	notify   *sync.Cond

	workerMu      syncprim.Mutex
	workerRunning bool
	workerStop    atomic.Bool
	workerWG      sync.WaitGroup
}

// New creates a registry with every entity at its documented initial value
// and the default timing profile.
func New() *Registry {
	return NewWithProfile(DefaultProfile())
}

// NewWithProfile creates a registry with the given timing profile.
//
// Initial state: counters 0, buffer zeroed, all balances InitialBalance,
// singleton slots empty, shared cell 0, barrier at generation zero, latch
// at LatchCount, all PoolCapacity permits free, data-ready token unset,
// worker stopped.
func NewWithProfile(p Profile) *Registry {
	r := &Registry{
		profile:     p,
		balance:     InitialBalance,
		fastBalance: InitialBalance,
		barrier:     syncprim.NewBarrier(BarrierParties),
		latch:       syncprim.NewLatch(LatchCount),
		pool:        syncprim.NewPool(PoolCapacity),
		ready:       syncprim.NewSignal(),
	}
	r.atomicBalance = InitialBalance
	r.dual = syncprim.NewMultiLock(&r.lockA, &r.lockB)
	r.notify = sync.NewCond(&r.notifyMu)
	return r
}

// Profile returns the registry's timing profile.
func (r *Registry) Profile() Profile {
	return r.profile
}
