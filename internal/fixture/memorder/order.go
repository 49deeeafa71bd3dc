package memorder

import "fmt"

// Order is a declared memory ordering for an atomic operation.
//
// The zero value is Relaxed, the weakest ordering the catalogue declares.
// Orders are comparable: a higher value never declares less than a lower one.
type Order int

const (
	// Relaxed declares no ordering beyond the atomicity of the access itself.
	Relaxed Order = iota

	// Acquire declares that later accesses may not be reordered before the
	// operation. Used by loads that pair with a Release store.
	Acquire

	// Release declares that earlier accesses may not be reordered after the
	// operation. Used by stores that publish initialized data.
	Release

	// AcqRel combines Acquire and Release. Used by read-modify-write
	// operations such as compare-and-swap.
	AcqRel

	// SeqCst declares a single total order over all SeqCst operations.
	// This is the ordering Go's sync/atomic actually provides.
	SeqCst
)

var orderNames = [...]string{
	Relaxed: "relaxed",
	Acquire: "acquire",
	Release: "release",
	AcqRel:  "acq_rel",
	SeqCst:  "seq_cst",
}

// String returns the catalogue name of the order.
func (o Order) String() string {
	if o < Relaxed || o > SeqCst {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder converts a catalogue name back into an Order.
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if s == name {
			return Order(o), nil
		}
	}
	return Relaxed, fmt.Errorf("memorder: unknown order %q", s)
}

// Describe reports the declared order next to the order actually executed,
// for drivers that record what a fixture claims versus what it gets.
func Describe(o Order) string {
	return fmt.Sprintf("declared %s, executed %s", o, SeqCst)
}
