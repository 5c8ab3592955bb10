package stackbox

import (
	"github.com/stackbox-go/stackbox/errors"
)

// BoxSlice owns the values in a caller-supplied backing slice, the erased
// "slice of unknown length" counterpart to Box. Elements can be moved out
// one at a time or in splits; whatever remains when the handle is dropped
// is destroyed in order, each element's glue running exactly once.
type BoxSlice[T any] struct {
	items []T
	drop  func(*T)
	dead  bool
}

// SliceFrom takes ownership of the values in backing. The backing slice is
// typically a local array sliced in place:
//
//	var store [3]Conn
//	bs := stackbox.SliceFrom(store[:])
//
// The caller must treat the backing elements as moved and touch them only
// through the handle. Per-element drop glue dispatches through Dropper,
// as with New.
func SliceFrom[T any](backing []T) *BoxSlice[T] {
	return SliceFromWithDrop(backing, dropValue[T])
}

// SliceFromWithDrop is SliceFrom with explicit per-element drop glue.
func SliceFromWithDrop[T any](backing []T, drop func(*T)) *BoxSlice[T] {
	return &BoxSlice[T]{items: backing, drop: drop}
}

// Len returns the number of elements still owned.
func (s *BoxSlice[T]) Len() int {
	s.mustOwn("stackbox.BoxSlice.Len")
	return len(s.items)
}

// Get returns a pointer to the i-th owned element.
func (s *BoxSlice[T]) Get(i int) *T {
	s.mustOwn("stackbox.BoxSlice.Get")
	return &s.items[i]
}

// Pop moves the first element out, shrinking the owned window. The
// element's destructor obligation transfers to the caller. Returns false
// when no elements remain.
func (s *BoxSlice[T]) Pop() (T, bool) {
	s.mustOwn("stackbox.BoxSlice.Pop")
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	v := s.items[0]
	var zero T
	s.items[0] = zero
	s.items = s.items[1:]
	return v, true
}

// SplitAt divides ownership at mid: the first handle owns [0, mid), the
// second [mid, len). The receiver is consumed. Panics if mid is out of
// range.
func (s *BoxSlice[T]) SplitAt(mid int) (*BoxSlice[T], *BoxSlice[T]) {
	s.mustOwn("stackbox.BoxSlice.SplitAt")
	if mid < 0 || mid > len(s.items) {
		panic(errors.Capacity("stackbox.BoxSlice.SplitAt", uintptr(mid), uintptr(len(s.items))))
	}
	hd := &BoxSlice[T]{items: s.items[:mid:mid], drop: s.drop}
	tl := &BoxSlice[T]{items: s.items[mid:], drop: s.drop}
	s.items = nil
	s.dead = true
	return hd, tl
}

// Drain moves every remaining element out, front to back, handing each to
// fn. The handle is consumed; fn owns each received value.
func (s *BoxSlice[T]) Drain(fn func(T)) {
	s.mustOwn("stackbox.BoxSlice.Drain")
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		fn(v)
	}
	s.items = nil
	s.dead = true
}

// Drop destroys the remaining elements in order, running each element's
// glue exactly once. No-op on a consumed handle.
func (s *BoxSlice[T]) Drop() {
	if s == nil || s.dead {
		return
	}
	for i := range s.items {
		if s.drop != nil {
			s.drop(&s.items[i])
		}
		var zero T
		s.items[i] = zero
	}
	s.items = nil
	s.dead = true
}

func (s *BoxSlice[T]) mustOwn(op string) {
	if s == nil || s.dead {
		panic(errors.Consumed(op, typeName[T]()))
	}
}
