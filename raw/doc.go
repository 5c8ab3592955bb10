// Package raw provides owning handles over size/align-addressed byte
// regions.
//
// Where stackbox.Slot fixes the occupant's type at declaration, a raw.Slot
// fixes only a footprint: size and alignment. That is the shape needed
// when storage must be reserved with room to spare before the occupant's
// concrete type is known - branches producing different variants into one
// reservation, or a buffer sized for the largest of several message types:
//
//	slot := raw.Reserve(64, 8)
//	var box *raw.Box
//	if fastPath {
//	    box = raw.Place(slot, smallHeader{...})
//	} else {
//	    box = raw.Place(slot, bigHeader{...})
//	}
//	defer box.Drop()
//
// Footprint and alignment are checked at placement and violations panic
// with structured errors; there is no silently-truncating fallback.
//
// # Pointer-free payloads only
//
// Raw bytes carry no pointer bitmap, so the garbage collector cannot see
// references stored in them. Place therefore rejects any type containing
// pointers, maps, slices, strings, channels, functions or interfaces.
// Pointerful values belong in a typed stackbox.Slot, which the runtime
// scans normally.
package raw
