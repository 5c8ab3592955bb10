// Package errors provides the structured error type used by stackbox.
//
// Errors are categorized by Kind (which contract was violated) and carry
// the operation that detected the violation plus the Go type involved.
//
// The library enforces ownership and occupancy contracts structurally:
// misuse that a stricter type system would reject at compile time is
// reported by panicking with an *Error. Recovered panics and boundary
// operations support the standard errors.Is / errors.As protocol:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if err, ok := r.(*errors.Error); ok && err.Kind == errors.KindConsumed {
//	            // use-after-move
//	        }
//	    }
//	}()
package errors
