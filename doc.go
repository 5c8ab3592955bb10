// Package stackbox provides owning handles into caller-supplied storage.
//
// A Box[T] is what a heap box would be if the caller, not an allocator,
// supplied the memory: an exclusive owning reference to a value living in
// a Slot[T] the caller declared, typically as a local variable. The value
// is moved in at construction, dereferenced and mutated in place while the
// handle lives, and destroyed exactly once when the handle is dropped -
// all without a single allocator call on the value's behalf.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	stackbox/            Core Slot, Box, Dyn, Once and BoxSlice handles
//	├── raw/             Size/align-addressed slots over raw byte regions
//	├── errors/          Structured errors for contract violations
//	├── trace/           Lifecycle observers: zap logging and counters
//	└── cmd/slotwatch/   Demo workload and interactive lifecycle inspector
//
// # Quick Start
//
// Declare a slot where the storage should live, box a value into it, and
// drop the box when done:
//
//	var slot stackbox.Slot[bytes.Buffer]
//	box := stackbox.New(&slot, makeBuffer())
//	defer box.Drop()
//
//	box.Get().WriteString("no allocator was involved")
//
// Or let the library scope the slot for you:
//
//	stackbox.With(makeBuffer(), func(box *stackbox.Box[bytes.Buffer]) int {
//	    return box.Get().Len()
//	})
//
// # Ownership
//
// Ownership is single and exclusive. Operations that transfer it - Drop,
// IntoInner, Leak, Unsize, OnceOf - consume the handle; using a consumed
// handle panics with a structured error from the errors package. Values
// implementing Dropper get their Drop method run as destructor glue.
//
// # Type Erasure
//
// Unsize widens a Box[T] into a Dyn, a capability-erased handle over the
// same bytes. The Dyn carries a glue descriptor (footprint plus erased
// destructor) so the value still drops correctly after its static type is
// gone, and dispatches operations through whatever interfaces the
// concrete type satisfies:
//
//	var slot stackbox.Slot[ring]
//	d := stackbox.Unsize(stackbox.New(&slot, newRing()))
//	defer d.Drop()
//
//	if w, ok := stackbox.As[io.Writer](d); ok {
//	    w.Write(payload)
//	}
//
// # Observability
//
// Lifecycle transitions (placed, dropped, moved out, widened, leaked,
// replaced) can be observed via Subscribe; the trace package provides
// zap-backed logging and counting observers. With no observer registered
// the event path costs one atomic load.
package stackbox
