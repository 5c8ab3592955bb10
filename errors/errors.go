package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the contract violation or failure.
type Kind string

const (
	KindVacant       Kind = "vacant"        // operation needs an occupied slot
	KindOccupied     Kind = "occupied"      // operation needs a vacant slot
	KindConsumed     Kind = "consumed"      // handle already gave up ownership
	KindCapacity     Kind = "capacity"      // value footprint exceeds slot size
	KindAlignment    Kind = "alignment"     // storage misaligned for the value
	KindTypeMismatch Kind = "type_mismatch" // erased slot holds a different type
	KindUnsupported  Kind = "unsupported"   // payload shape the storage cannot carry
	KindNilPointer   Kind = "nil_pointer"   // nil slot, handle, or source pointer
)

// Error is the structured error type used throughout the library.
//
// The core API enforces its contracts structurally and panics with an
// *Error on misuse; only boundary operations (raw placement, heap interop)
// surface it as a return value.
type Error struct {
	Cause  error
	Op     string // operation that detected the violation, e.g. "stackbox.New"
	Kind   Kind
	GoType string // Go type involved, if known
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two *Errors match on Kind,
// so callers can test a recovered panic against a sentinel:
//
//	errors.Is(err, &Error{Kind: KindConsumed})
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Op == "" || e.Op == t.Op)
	}
	return false
}

// Convenience constructors for the contract violations the library detects.

// Occupied reports a construction into a slot that already holds a value.
func Occupied(op, goType string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindOccupied,
		GoType: goType,
		Detail: "slot already holds a live value",
	}
}

// Vacant reports an access through a slot that holds no value.
func Vacant(op, goType string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindVacant,
		GoType: goType,
		Detail: "slot holds no live value",
	}
}

// Consumed reports use of a handle after it surrendered ownership.
func Consumed(op, goType string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindConsumed,
		GoType: goType,
		Detail: "handle no longer owns its value (moved out, widened, or dropped)",
	}
}

// Capacity reports a value footprint larger than the reserved storage.
func Capacity(op string, need, have uintptr) *Error {
	return &Error{
		Op:     op,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("value needs %d bytes, slot holds %d", need, have),
	}
}

// Misaligned reports storage whose address cannot carry the value.
func Misaligned(op string, align uintptr) *Error {
	return &Error{
		Op:     op,
		Kind:   KindAlignment,
		Detail: fmt.Sprintf("storage is not %d-byte aligned", align),
	}
}

// TypeMismatch reports an erased access with the wrong concrete type.
func TypeMismatch(op, want, got string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindTypeMismatch,
		GoType: got,
		Detail: fmt.Sprintf("slot holds %s, not %s", got, want),
	}
}

// Unsupported reports a payload shape the storage cannot carry.
func Unsupported(op, goType, why string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnsupported,
		GoType: goType,
		Detail: why,
	}
}

// Nil reports a nil slot, handle, or source pointer.
func Nil(op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNilPointer,
		Detail: what + " is nil",
	}
}
