// Package fixtures provides the public API for the concurrency fixture
// catalogue.
//
// See doc.go for detailed documentation and examples.
package fixtures

import (
	"context"
	"time"

	"github.com/kolkov/racefixtures/internal/fixture/registry"
)

// Registry is the shared-state aggregate all operations act on. The flat
// functions below act on one process-default instance; construct more with
// New for isolated experiments.
type Registry = registry.Registry

// Payload is the singleton's underlying object.
type Payload = registry.Payload

// Profile collects the timing parameters of the constructed races.
type Profile = registry.Profile

// Discipline selects the synchronization applied by Transform.
type Discipline = registry.Discipline

// Discipline values, from no synchronization to once-gated.
const (
	DisciplineNone      = registry.DisciplineNone
	DisciplineExclusive = registry.DisciplineExclusive
	DisciplineShared    = registry.DisciplineShared
	DisciplineAtomic    = registry.DisciplineAtomic
	DisciplineOnce      = registry.DisciplineOnce
)

// Fixed shapes of the catalogue's entities.
const (
	BufferCapacity  = registry.BufferCapacity
	InitialBalance  = registry.InitialBalance
	BarrierParties  = registry.BarrierParties
	LatchCount      = registry.LatchCount
	PoolCapacity    = registry.PoolCapacity
	ProcessedSuffix = registry.ProcessedSuffix
)

// ParseDiscipline converts a catalogue name ("none", "exclusive",
// "shared", "atomic", "once") into a Discipline.
func ParseDiscipline(s string) (Discipline, error) {
	return registry.ParseDiscipline(s)
}

// New creates an isolated registry with every entity at its documented
// initial value and the default timing profile.
func New() *Registry {
	return registry.New()
}

// NewWithProfile creates an isolated registry with custom timing windows.
func NewWithProfile(p Profile) *Registry {
	return registry.NewWithProfile(p)
}

// DefaultProfile returns the catalogue's original timing constants.
func DefaultProfile() Profile {
	return registry.DefaultProfile()
}

// std is the process-default registry behind the flat API.
var std = registry.New()

// Default returns the process-default registry the flat functions act on.
func Default() *Registry {
	return std
}

// UnsafeIncrement adds one to the racy counter as a split
// read-modify-write: a plain read, a non-elidable window, a plain write.
//
// When two callers' windows overlap, one increment is lost. A
// single-threaded caller always gets the correct result.
func UnsafeIncrement() {
	std.UnsafeIncrement()
}

// UnsafeDecrement subtracts one from the racy counter with the same
// lost-update window as UnsafeIncrement.
func UnsafeDecrement() {
	std.UnsafeDecrement()
}

// UnsafeMultiply scales the racy counter with an injected delay between
// read and write, wide enough for overlapping callers to multiply from the
// same stale value.
func UnsafeMultiply(factor int64) {
	std.UnsafeMultiply(factor)
}

// UnsafeCompound applies ((c+10)*2)-5 to the racy counter as six dependent
// plain accesses; the composite has no atomicity across its three stages.
func UnsafeCompound() {
	std.UnsafeCompound()
}

// UnsafeWriteBuffer copies text plus the processed suffix into the shared
// buffer with no lock, so concurrent callers corrupt the content.
func UnsafeWriteBuffer(text string) {
	std.UnsafeWriteBuffer(text)
}

// UnsafeSingleton returns the racy singleton slot, built on first use via
// the double-checked-locking anti-pattern: at most one payload is ever
// constructed, but a concurrent caller can observe its fields unfinished.
func UnsafeSingleton() *Payload {
	return std.UnsafeSingleton()
}

// UnsafeWithdraw debits the plain balance with a check-then-act window.
//
// Parameters:
//   - amount: the amount to debit.
//
// Returns true if the sufficiency check passed. Two callers interleaving
// around the window can together withdraw more than the balance held, or
// drive it negative.
func UnsafeWithdraw(amount int64) bool {
	return std.UnsafeWithdraw(amount)
}

// UnsafeWithdrawFast is the check-then-act withdrawal whose window is a
// pure-compute spin instead of a sleep, so it races even under schedulers
// that serialize sleeping threads.
func UnsafeWithdrawFast(amount int64) bool {
	return std.UnsafeWithdrawFast(amount)
}

// UnsafeRead returns the reader/writer cell without the read lock.
func UnsafeRead() int64 {
	return std.UnsafeRead()
}

// UnsafeWrite stores into the reader/writer cell without the write lock.
func UnsafeWrite(v int64) {
	std.UnsafeWrite(v)
}

// DeadlockAB takes the lock pair in A-B order with a gap between the two
// acquisitions. Run concurrently with DeadlockBA it deadlocks whenever
// both callers enter the gap together; guard with a watchdog.
func DeadlockAB() {
	std.DeadlockAB()
}

// DeadlockBA is DeadlockAB with the acquisition order inverted.
func DeadlockBA() {
	std.DeadlockBA()
}

// Increment adds one to the guarded counter with the lock held across the
// read-modify-write. T goroutines of K increments always land on exactly
// T*K.
func Increment() {
	std.Increment()
}

// Decrement subtracts one from the guarded counter under its lock.
func Decrement() {
	std.Decrement()
}

// Multiply scales the guarded counter under its lock.
func Multiply(factor int64) {
	std.Multiply(factor)
}

// Compound applies ((c+10)*2)-5 to the guarded counter with the lock held
// across all three stages.
func Compound() {
	std.Compound()
}

// WriteBuffer writes text plus the processed suffix under the buffer lock;
// the content afterwards is always exactly one writer's clean result.
func WriteBuffer(text string) {
	std.WriteBuffer(text)
}

// Singleton returns the safe singleton, constructed exactly once and
// published atomically; no caller can observe it unfinished.
func Singleton() *Payload {
	return std.Singleton()
}

// Withdraw debits the atomic balance through a compare-and-swap retry
// loop: the sufficiency check and the debit are one atomic step, so the
// balance can never go negative.
//
// Parameters:
//   - amount: the amount to debit.
//
// Returns true if, at some atomically-observed instant, the balance
// covered the amount and the debit committed.
func Withdraw(amount int64) bool {
	return std.Withdraw(amount)
}

// AtomicIncrement adds one to the atomic counter indivisibly.
func AtomicIncrement() {
	std.AtomicIncrement()
}

// AtomicDecrement subtracts one from the atomic counter indivisibly.
func AtomicDecrement() {
	std.AtomicDecrement()
}

// AtomicCAS swaps the atomic counter to desired only if it still holds
// expected, reporting whether the swap happened.
func AtomicCAS(expected, desired int64) bool {
	return std.AtomicCAS(expected, desired)
}

// AtomicStoreNotify stores v into the atomic counter and wakes every
// AtomicWaitFor caller to re-examine it.
func AtomicStoreNotify(v int64) {
	std.AtomicStoreNotify(v)
}

// AtomicWaitFor blocks until the atomic counter equals v or ctx is done.
// Only AtomicStoreNotify wakes waiters; plain increments do not.
func AtomicWaitFor(ctx context.Context, v int64) error {
	return std.AtomicWaitFor(ctx, v)
}

// MixedIncrement applies an atomic add to the same cell the racy
// operations access plainly; mixing the two disciplines on one location is
// itself a pattern detectors flag.
func MixedIncrement() {
	std.MixedIncrement()
}

// SafeRead returns the reader/writer cell under the read lock.
func SafeRead() int64 {
	return std.SafeRead()
}

// SafeWrite stores into the reader/writer cell under the write lock.
func SafeWrite(v int64) {
	std.SafeWrite(v)
}

// DualLock mutates both ordered-pair values under an address-ordered
// two-lock acquisition; concurrent callers can never deadlock each other.
func DualLock() {
	std.DualLock()
}

// DualValues returns both ordered-pair values under the pair's locks.
func DualValues() (a, b int64) {
	return std.DualValues()
}

// BarrierIncrement arrives at the four-party barrier and increments the
// guarded counter once the generation releases.
func BarrierIncrement(ctx context.Context) error {
	return std.BarrierIncrement(ctx)
}

// LatchWaitIncrement blocks until the start latch opens, then increments
// the guarded counter.
func LatchWaitIncrement(ctx context.Context) error {
	return std.LatchWaitIncrement(ctx)
}

// LatchSignal counts the one-shot start latch down, releasing every
// waiter; further signals do nothing.
func LatchSignal() {
	std.LatchSignal()
}

// AcquireResource takes a pool permit only if one is immediately free.
func AcquireResource() bool {
	return std.AcquireResource()
}

// AcquireResourceTimeout takes a pool permit, waiting at most d.
func AcquireResourceTimeout(d time.Duration) bool {
	return std.AcquireResourceTimeout(d)
}

// ReleaseResource returns a pool permit.
func ReleaseResource() {
	std.ReleaseResource()
}

// SignalDataReady makes the data-ready token available.
func SignalDataReady() {
	std.SignalDataReady()
}

// WaitForData consumes the data-ready token, waiting at most d for it.
func WaitForData(d time.Duration) bool {
	return std.WaitForData(d)
}

// Transform applies delta to the counter family under the chosen
// discipline and returns the value that discipline's own read path
// observes.
//
// Parameters:
//   - d: the synchronization discipline, from DisciplineNone (racy) to
//     DisciplineOnce (applied a single time per registry).
//   - delta: the amount to add.
func Transform(d Discipline, delta int64) int64 {
	return std.Transform(d, delta)
}

// StartWorker launches the cooperative background worker; a second start
// while one runs returns false.
func StartWorker() bool {
	return std.StartWorker()
}

// StopWorker signals the worker's cancellation flag and joins it; when it
// returns true the worker goroutine has exited.
func StopWorker() bool {
	return std.StopWorker()
}

// WorkerRunning reports whether the background worker is running.
func WorkerRunning() bool {
	return std.WorkerRunning()
}

// Reset restores every entity of the default registry to its documented
// initial value. The singleton slots and the worker tick counter are
// process-lifetime and survive.
func Reset() {
	std.Reset()
}

// ResetFastBank restores only the spin-variant balance, for demo loops
// that re-run the fast withdrawal without disturbing the rest.
func ResetFastBank() {
	std.ResetFastBank()
}

// CounterValue returns the racy counter with a deliberately
// unsynchronized read.
func CounterValue() int64 {
	return std.CounterValue()
}

// SafeCounterValue returns the guarded counter under its lock.
func SafeCounterValue() int64 {
	return std.SafeCounterValue()
}

// AtomicCounterValue returns the atomic counter.
func AtomicCounterValue() int64 {
	return std.AtomicCounterValue()
}

// Balance returns the compare-and-swap balance atomically.
func Balance() int64 {
	return std.Balance()
}

// UnsafeBalance returns the plain check-then-act balance with an
// unsynchronized read.
func UnsafeBalance() int64 {
	return std.UnsafeBalance()
}

// FastBalance returns the spin-variant balance with an unsynchronized
// read.
func FastBalance() int64 {
	return std.FastBalance()
}

// SharedValue returns the reader/writer cell under the read lock.
func SharedValue() int64 {
	return std.SharedValue()
}

// BufferString returns the buffer's current content under the buffer
// lock.
func BufferString() string {
	return std.BufferString()
}

// WorkerTickCount returns the background worker's tick counter.
func WorkerTickCount() int64 {
	return std.WorkerTickCount()
}

// SingletonConstructions returns how many singleton payloads were ever
// constructed across both slots.
func SingletonConstructions() int64 {
	return std.SingletonConstructions()
}

// ResourcesInUse returns the number of currently held pool permits.
func ResourcesInUse() int64 {
	return std.ResourcesInUse()
}
