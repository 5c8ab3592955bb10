package stackbox

// slotState tracks occupancy. It is the single source of truth for the
// vacant/occupied distinction; every transition goes through a Box.
type slotState uint8

const (
	slotVacant slotState = iota
	slotOccupied
)

// Slot is caller-owned storage for exactly one value of type T.
//
// Declare it where the storage should live, typically as a local:
//
//	var slot stackbox.Slot[Widget]
//	box := stackbox.New(&slot, widget)
//
// The value then occupies the declaring frame for as long as the frame
// does; the slot itself never allocates and never runs destructor logic.
// A slot is either vacant or holds one live value, and exposes no way to
// reach its contents except through the owning handle built on top of it.
type Slot[T any] struct {
	// place must stay the first field: erased handles recover the slot
	// from the address of its contents.
	place T
	state slotState
}

// Occupied reports whether the slot currently holds a live value.
func (s *Slot[T]) Occupied() bool {
	return s != nil && s.state == slotOccupied
}
