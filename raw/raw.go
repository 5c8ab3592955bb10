package raw

import (
	"reflect"
	"unsafe"

	"github.com/stackbox-go/stackbox/errors"
	"github.com/stackbox-go/stackbox/internal/layout"
)

// Dropper mirrors the root package's destructor hook for values placed in
// raw storage.
type Dropper interface {
	Drop()
}

// glue records how to destroy and re-type the current occupant.
type glue struct {
	rtype reflect.Type
	drop  func(unsafe.Pointer)
}

// Slot is a byte region addressed by size and alignment rather than a Go
// type, for storage reserved before the occupant's type is known - e.g.
// "room for any of these message variants, whichever the branch picks".
//
// Only pointer-free values can live here: raw bytes carry no pointer
// bitmap, so the garbage collector cannot see references hidden in them.
// Pointerful types belong in a typed stackbox.Slot.
type Slot struct {
	buf   []byte
	base  unsafe.Pointer
	g     glue
	size  uintptr
	align uintptr
	state uint8
}

// Reserve returns a vacant slot of at least size bytes aligned to align.
// An alignment that is not a power of two is a configuration error, not a
// recoverable one, and panics.
func Reserve(size, align uintptr) *Slot {
	if !layout.IsPowerOfTwo(align) {
		panic(errors.Misaligned("raw.Reserve", align))
	}
	n := size + align - 1
	if n == 0 {
		n = 1
	}
	buf := make([]byte, n)
	base := unsafe.Pointer(&buf[0])
	off := layout.AlignTo(uintptr(base), align) - uintptr(base)
	return &Slot{
		buf:   buf,
		base:  unsafe.Add(base, off),
		size:  size,
		align: align,
	}
}

// Of adopts caller-supplied backing bytes as a slot. The usable alignment
// is whatever the buffer's address happens to provide.
func Of(buf []byte) *Slot {
	if len(buf) == 0 {
		panic(errors.Nil("raw.Of", "backing buffer"))
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	align := addr & -addr
	const maxAlign = 4096
	if align > maxAlign {
		align = maxAlign
	}
	return &Slot{
		buf:   buf,
		base:  unsafe.Pointer(&buf[0]),
		size:  uintptr(len(buf)),
		align: align,
	}
}

// Cap returns the usable byte capacity.
func (s *Slot) Cap() uintptr { return s.size }

// Align returns the guaranteed alignment of the storage.
func (s *Slot) Align() uintptr { return s.align }

// Occupied reports whether the slot currently holds a live value.
func (s *Slot) Occupied() bool { return s != nil && s.state != 0 }

func (s *Slot) region() []byte {
	return unsafe.Slice((*byte)(s.base), s.size)
}

// Box is an erased owning handle over an occupied raw slot. The occupant's
// type travels in the glue descriptor; access is type-tag checked.
type Box struct {
	slot *Slot
}

// Place moves v into the slot and returns the owning handle. The value's
// footprint and alignment are checked against the reservation, and values
// containing pointers are rejected; violations panic with structured
// errors, as does placing into an occupied slot. Drop glue dispatches
// through Dropper, as in the root package.
func Place[T any](s *Slot, v T) *Box {
	return PlaceWithDrop(s, v, dropErased[T])
}

// PlaceWithDrop is Place with explicit drop glue for the occupant.
func PlaceWithDrop[T any](s *Slot, v T, drop func(*T)) *Box {
	const op = "raw.Place"
	if s == nil {
		panic(errors.Nil(op, "slot"))
	}
	if s.state != 0 {
		panic(errors.Occupied(op, s.g.rtype.String()))
	}
	t := reflect.TypeFor[T]()
	if layout.HasPointers(t) {
		panic(errors.Unsupported(op, t.String(), "contains pointers, which raw storage hides from the garbage collector"))
	}
	info := layout.Of[T]()
	if info.Size > s.size {
		panic(errors.Capacity(op, info.Size, s.size))
	}
	if info.Align > s.align {
		panic(errors.Misaligned(op, info.Align))
	}
	if info.Size > 0 {
		*(*T)(s.base) = v
	}
	s.state = 1
	s.g = glue{
		rtype: t,
		drop: func(p unsafe.Pointer) {
			if drop != nil {
				drop((*T)(p))
			}
		},
	}
	return &Box{slot: s}
}

// Type returns the concrete type of the occupant.
func (b *Box) Type() reflect.Type {
	b.mustOwn("raw.Box.Type")
	return b.slot.g.rtype
}

// View returns a typed pointer to the occupant, or false if the occupant
// is not a T. The handle keeps ownership.
func View[T any](b *Box) (*T, bool) {
	b.mustOwn("raw.View")
	if b.slot.g.rtype != reflect.TypeFor[T]() {
		return nil, false
	}
	return (*T)(b.slot.base), true
}

// Take moves the occupant out, vacating the slot and suppressing the glue;
// the handle is consumed. Returns false - leaving ownership untouched - if
// the occupant is not a T.
func Take[T any](b *Box) (T, bool) {
	b.mustOwn("raw.Take")
	if b.slot.g.rtype != reflect.TypeFor[T]() {
		var zero T
		return zero, false
	}
	s := b.slot
	b.slot = nil
	var v T
	if unsafe.Sizeof(v) > 0 {
		v = *(*T)(s.base)
	}
	s.vacate()
	return v, true
}

// Map replaces the slot's contents in place: the old value is moved out
// the instant f runs, and f's result is placed into the same slot, with
// its footprint checked against the reservation. The input handle is
// consumed; a panic in f leaves the slot vacant with no dangling
// obligation.
func Map[T, U any](b *Box, f func(T) U) *Box {
	b.mustOwn("raw.Map")
	if b.slot.g.rtype != reflect.TypeFor[T]() {
		panic(errors.TypeMismatch("raw.Map", reflect.TypeFor[T]().String(), b.slot.g.rtype.String()))
	}
	s := b.slot
	b.slot = nil
	var old T
	if unsafe.Sizeof(old) > 0 {
		old = *(*T)(s.base)
	}
	s.vacate()
	return Place(s, f(old))
}

// Drop runs the occupant's glue and vacates the slot. No-op on a consumed
// handle.
func (b *Box) Drop() {
	if b == nil || b.slot == nil {
		return
	}
	s := b.slot
	b.slot = nil
	// Vacate even when the glue panics, so the reservation stays
	// reusable after recovery.
	defer s.vacate()
	if s.g.drop != nil {
		s.g.drop(s.base)
	}
}

func (b *Box) mustOwn(op string) {
	if b == nil || b.slot == nil {
		panic(errors.Consumed(op, "raw"))
	}
}

func (s *Slot) vacate() {
	clear(s.region())
	s.state = 0
	s.g = glue{}
}

func dropErased[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(*p).(Dropper); ok {
		d.Drop()
	}
}
