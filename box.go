package stackbox

import (
	"reflect"

	"github.com/stackbox-go/stackbox/errors"
)

// Dropper is optionally implemented by values that need cleanup when the
// handle owning them is dropped.
type Dropper interface {
	Drop()
}

// Box is an owning handle into an occupied Slot. While the box is live the
// slot is guaranteed occupied, dereferencing needs no check, and the
// value's drop glue is guaranteed to run exactly once - when the box is
// dropped, unless ownership is transferred out first (IntoInner, Leak,
// Unsize).
//
// A Box must be treated as move-only: every consuming operation tombstones
// the handle, and using it afterwards panics with a structured "consumed"
// error. Do not copy the struct; pass the pointer.
type Box[T any] struct {
	slot *Slot[T]
	drop func(*T)
}

// New moves value into slot and returns the owning handle.
//
// The slot must be vacant; constructing into an occupied slot panics with
// an occupied error. The recorded drop glue invokes the value's Drop
// method if it implements Dropper, and is a no-op otherwise.
//
// The caller's value binding must be treated as moved: keep using the box,
// not the original variable.
func New[T any](slot *Slot[T], value T) *Box[T] {
	return NewWithDrop(slot, value, dropValue[T])
}

// NewWithDrop is New with explicit drop glue. The glue runs against the
// slot's contents exactly once, at drop time; a nil drop records no
// destructor obligation.
func NewWithDrop[T any](slot *Slot[T], value T, drop func(*T)) *Box[T] {
	if slot == nil {
		panic(errors.Nil("stackbox.New", "slot"))
	}
	if slot.state != slotVacant {
		panic(errors.Occupied("stackbox.New", typeName[T]()))
	}
	slot.place = value
	slot.state = slotOccupied
	if traced() {
		notify(Event{Type: EventPlaced, Slot: slotID(slot), GoType: typeName[T]()})
	}
	return &Box[T]{slot: slot, drop: drop}
}

// With runs fn with a box whose slot lives for the duration of the call.
// The box is dropped when fn returns, unless fn consumed it.
func With[T, R any](value T, fn func(*Box[T]) R) R {
	var slot Slot[T]
	b := New(&slot, value)
	defer b.Drop()
	return fn(b)
}

// Get returns a pointer to the boxed value. Reads and writes through it
// touch the slot's memory directly; no copy is involved.
func (b *Box[T]) Get() *T {
	b.mustOwn("stackbox.Box.Get")
	return &b.slot.place
}

// IntoInner moves the value out, vacating the slot and suppressing the
// drop glue. The destructor obligation transfers to the returned value;
// the box is consumed.
func (b *Box[T]) IntoInner() T {
	b.mustOwn("stackbox.Box.IntoInner")
	s := b.slot
	b.slot = nil
	v := s.place
	vacate(s)
	if traced() {
		notify(Event{Type: EventMovedOut, Slot: slotID(s), GoType: typeName[T]()})
	}
	return v
}

// Leak suppresses the drop glue and returns raw access to the value. The
// slot stays occupied permanently (until its frame ends); the box is
// consumed and no destructor will run.
func (b *Box[T]) Leak() *T {
	b.mustOwn("stackbox.Box.Leak")
	s := b.slot
	b.slot = nil
	if traced() {
		notify(Event{Type: EventLeaked, Slot: slotID(s), GoType: typeName[T]()})
	}
	return &s.place
}

// Replace maps the boxed value in place: the old value is moved out the
// instant f runs, and f's result takes its place in the same slot. If f
// panics the slot is left vacant with no dangling destructor obligation -
// the old value was already f's to deal with. If f constructs a new value
// into the slot, Replace panics with an occupied error rather than
// clobber the new occupant.
func (b *Box[T]) Replace(f func(T) T) {
	b.mustOwn("stackbox.Box.Replace")
	s := b.slot
	old := s.place
	vacate(s)
	v := f(old)
	if s.state != slotVacant {
		panic(errors.Occupied("stackbox.Box.Replace", typeName[T]()))
	}
	s.place = v
	s.state = slotOccupied
	if traced() {
		notify(Event{Type: EventReplaced, Slot: slotID(s), GoType: typeName[T]()})
	}
}

// Drop runs the recorded drop glue against the slot's contents and vacates
// the slot. Calling Drop on an already-consumed box is a no-op, so
// "defer box.Drop()" composes with IntoInner, Leak and Unsize.
func (b *Box[T]) Drop() {
	if b == nil || b.slot == nil || b.slot.state != slotOccupied {
		return
	}
	s := b.slot
	b.slot = nil
	// Vacate even when the glue panics, so the storage stays reusable
	// after recovery.
	defer func() {
		vacate(s)
		if traced() {
			notify(Event{Type: EventDropped, Slot: slotID(s), GoType: typeName[T]()})
		}
	}()
	if b.drop != nil {
		b.drop(&s.place)
	}
}

func (b *Box[T]) mustOwn(op string) {
	if b == nil || b.slot == nil {
		panic(errors.Consumed(op, typeName[T]()))
	}
	if b.slot.state != slotOccupied {
		panic(errors.Vacant(op, typeName[T]()))
	}
}

// vacate zeroes the slot so the vacated storage pins nothing for the GC.
func vacate[T any](s *Slot[T]) {
	var zero T
	s.place = zero
	s.state = slotVacant
}

// dropValue is the default glue: dispatch to Dropper if implemented,
// preferring the pointer receiver.
func dropValue[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(*p).(Dropper); ok {
		d.Drop()
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
