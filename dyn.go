package stackbox

import (
	"reflect"
	"unsafe"

	"github.com/stackbox-go/stackbox/errors"
	"github.com/stackbox-go/stackbox/internal/layout"
)

// dropGlue records how to destroy and re-type the erased occupant of a
// slot: the footprint and destructor travel with the handle once the
// static type is no longer visible.
type dropGlue struct {
	rtype reflect.Type
	drop  func(unsafe.Pointer)
	size  uintptr
	align uintptr
}

// Dyn is a capability-erased owning handle: a Box whose concrete type has
// been widened away. It points at the same slot bytes as the box it was
// made from - widening never moves or copies the value - and carries the
// glue descriptor needed to drop the value correctly without knowing its
// static type.
//
// Capability dispatch goes through Value or As: assert the occupant to
// whatever interface the concrete type satisfies.
type Dyn struct {
	ptr     unsafe.Pointer
	release func()
	g       dropGlue
	sid     SlotID
}

// Unsize widens b into a capability-erased handle. Ownership moves into
// the result; b is consumed and the slot's bytes stay exactly where they
// are.
func Unsize[T any](b *Box[T]) *Dyn {
	b.mustOwn("stackbox.Unsize")
	s := b.slot
	drop := b.drop
	b.slot = nil

	info := layout.Of[T]()
	d := &Dyn{
		ptr: unsafe.Pointer(&s.place),
		g: dropGlue{
			rtype: reflect.TypeFor[T](),
			size:  info.Size,
			align: info.Align,
			drop: func(p unsafe.Pointer) {
				if drop != nil {
					drop((*T)(p))
				}
			},
		},
		release: func() { vacate(s) },
		sid:     slotID(s),
	}
	if traced() {
		notify(Event{Type: EventWidened, Slot: d.sid, GoType: d.g.rtype.String()})
	}
	return d
}

// Type returns the concrete type of the occupant.
func (d *Dyn) Type() reflect.Type {
	d.mustOwn("stackbox.Dyn.Type")
	return d.g.rtype
}

// Footprint returns the occupant's size and alignment in bytes.
func (d *Dyn) Footprint() (size, align uintptr) {
	d.mustOwn("stackbox.Dyn.Footprint")
	return d.g.size, d.g.align
}

// Value returns a pointer to the occupant as an interface value (a *T for
// the concrete T). Assert it to any capability interface the occupant
// satisfies; mutations through it write the slot's memory directly.
func (d *Dyn) Value() any {
	d.mustOwn("stackbox.Dyn.Value")
	return reflect.NewAt(d.g.rtype, d.ptr).Interface()
}

// As asserts the occupant to the capability interface I without consuming
// the handle.
func As[I any](d *Dyn) (I, bool) {
	i, ok := d.Value().(I)
	return i, ok
}

// Is reports whether the occupant's concrete type is T.
func Is[T any](d *Dyn) bool {
	d.mustOwn("stackbox.Is")
	return d.g.rtype == reflect.TypeFor[T]()
}

// Ref returns a typed pointer to the occupant, or false if the concrete
// type is not T. The handle keeps ownership.
func Ref[T any](d *Dyn) (*T, bool) {
	if !Is[T](d) {
		return nil, false
	}
	return (*T)(d.ptr), true
}

// Take moves the value out through the erased view, vacating the slot and
// suppressing the glue; the handle is consumed. Returns false - and leaves
// ownership untouched - if the concrete type is not T.
func Take[T any](d *Dyn) (T, bool) {
	if !Is[T](d) {
		var zero T
		return zero, false
	}
	v := *(*T)(d.ptr)
	d.consume()
	if traced() {
		notify(Event{Type: EventMovedOut, Slot: d.sid, GoType: typeName[T]()})
	}
	return v, true
}

// Downcast narrows the handle back to a concrete Box[T]. Ownership moves
// into the result; the Dyn is consumed. Returns false - and leaves
// ownership untouched - if the concrete type is not T.
func Downcast[T any](d *Dyn) (*Box[T], bool) {
	if !Is[T](d) {
		return nil, false
	}
	// The slot's contents are its first field, so the occupant's address
	// is the slot's address.
	s := (*Slot[T])(d.ptr)
	drop := d.g.drop
	d.ptr = nil
	d.release = nil
	return &Box[T]{
		slot: s,
		drop: func(p *T) { drop(unsafe.Pointer(p)) },
	}, true
}

// Drop runs the recorded glue against the slot's bytes and vacates the
// slot. No-op on a consumed handle.
func (d *Dyn) Drop() {
	if d == nil || d.ptr == nil {
		return
	}
	ptr := d.ptr
	gotype := d.g.rtype.String()
	release := d.release
	d.ptr = nil
	d.release = nil
	// Release the slot even when the glue panics, so the storage stays
	// reusable after recovery.
	defer func() {
		if release != nil {
			release()
		}
		if traced() {
			notify(Event{Type: EventDropped, Slot: d.sid, GoType: gotype})
		}
	}()
	d.g.drop(ptr)
}

// consume vacates the backing slot without running glue.
func (d *Dyn) consume() {
	d.ptr = nil
	if d.release != nil {
		d.release()
		d.release = nil
	}
}

func (d *Dyn) mustOwn(op string) {
	if d == nil || d.ptr == nil {
		panic(errors.Consumed(op, "dyn"))
	}
}
