package stackbox

import (
	"github.com/stackbox-go/stackbox/errors"
)

// Heap interop: bridges between heap-allocated values and slot-backed
// handles. The core never needs these; they exist so allocator-backed
// code can hand values into an allocation-free path and back.

// FromHeap moves the value out of p into slot, returning the owning
// handle. The source is zeroed - the moved-from tombstone - so the heap
// copy can never run a destructor or pin what the value referenced.
func FromHeap[T any](slot *Slot[T], p *T) *Box[T] {
	if p == nil {
		panic(errors.Nil("stackbox.FromHeap", "source"))
	}
	b := New(slot, *p)
	var zero T
	*p = zero
	return b
}

// ToHeap moves the boxed value to freshly allocated memory, vacating the
// slot. The box is consumed and its glue suppressed; the destructor
// obligation travels with the returned pointer's value.
func ToHeap[T any](b *Box[T]) *T {
	p := new(T)
	*p = b.IntoInner()
	return p
}
