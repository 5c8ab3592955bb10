// Package layout computes memory footprints for slot sizing.
package layout

import (
	"reflect"
	"unsafe"
)

// Info describes the memory footprint of a value type.
type Info struct {
	Size  uintptr
	Align uintptr
}

// Of returns the footprint of T.
func Of[T any]() Info {
	var v T
	return Info{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// OfType returns the footprint of a reflected type.
func OfType(t reflect.Type) Info {
	return Info{Size: t.Size(), Align: uintptr(t.Align())}
}

// AlignTo rounds n up to the next multiple of align.
// align must be a power of two.
func AlignTo(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// IsPowerOfTwo reports whether n is a valid alignment.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// HasPointers reports whether values of t contain pointers the garbage
// collector must be able to scan. Raw byte storage carries no pointer
// bitmap, so such values cannot be placed there.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, maps, slices, strings, chans, funcs, interfaces.
		return true
	}
}
