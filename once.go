package stackbox

import (
	"github.com/stackbox-go/stackbox/errors"
)

// Once is an owned, type-erased closure whose captured state lives in
// caller-supplied storage. Call consumes the handle: the state is moved
// out of the slot and handed to the invocation, so the closure can take
// ownership of what it captured - the erased analogue of a call-at-most-
// once function value.
//
// Dropping a Once without calling it runs the captured state's drop glue
// instead.
type Once[R any] struct {
	d      *Dyn
	invoke func() R
}

// OnceOf erases b's payload into a call-at-most-once closure. fn receives
// the moved-out state when Call runs; ownership moves into the result and
// b is consumed.
func OnceOf[T, R any](b *Box[T], fn func(T) R) *Once[R] {
	d := Unsize(b)
	return &Once[R]{
		d: d,
		invoke: func() R {
			v, _ := Take[T](d)
			return fn(v)
		},
	}
}

// Call invokes the closure, consuming the handle and the captured state.
func (o *Once[R]) Call() R {
	invoke := o.take("stackbox.Once.Call")
	return invoke()
}

// Drop releases the captured state without calling. No-op if already
// called or dropped.
func (o *Once[R]) Drop() {
	if o == nil || o.d == nil {
		return
	}
	d := o.d
	o.d = nil
	o.invoke = nil
	d.Drop()
}

func (o *Once[R]) take(op string) func() R {
	if o == nil || o.d == nil {
		panic(errors.Consumed(op, "closure state"))
	}
	invoke := o.invoke
	o.d = nil
	o.invoke = nil
	return invoke
}

// Once1 is Once for closures taking one call-time argument.
type Once1[A, R any] struct {
	d      *Dyn
	invoke func(A) R
}

// Once1Of erases b's payload into a call-at-most-once closure taking one
// argument at call time.
func Once1Of[T, A, R any](b *Box[T], fn func(T, A) R) *Once1[A, R] {
	d := Unsize(b)
	return &Once1[A, R]{
		d: d,
		invoke: func(a A) R {
			v, _ := Take[T](d)
			return fn(v, a)
		},
	}
}

// Call invokes the closure with a, consuming the handle and the captured
// state.
func (o *Once1[A, R]) Call(a A) R {
	if o == nil || o.d == nil {
		panic(errors.Consumed("stackbox.Once1.Call", "closure state"))
	}
	invoke := o.invoke
	o.d = nil
	o.invoke = nil
	return invoke(a)
}

// Drop releases the captured state without calling. No-op if already
// called or dropped.
func (o *Once1[A, R]) Drop() {
	if o == nil || o.d == nil {
		return
	}
	d := o.d
	o.d = nil
	o.invoke = nil
	d.Drop()
}
