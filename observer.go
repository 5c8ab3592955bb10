package stackbox

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// EventType identifies a slot lifecycle transition.
type EventType uint8

const (
	EventPlaced   EventType = iota // value moved into a slot
	EventDropped                   // drop glue ran, slot vacated
	EventMovedOut                  // value moved out (IntoInner / Take)
	EventWidened                   // handle erased to a Dyn
	EventLeaked                    // glue suppressed, slot left occupied
	EventReplaced                  // in-place map replaced the contents
)

var eventTypeNames = map[EventType]string{
	EventPlaced:   "placed",
	EventDropped:  "dropped",
	EventMovedOut: "moved_out",
	EventWidened:  "widened",
	EventLeaked:   "leaked",
	EventReplaced: "replaced",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "unknown EventType"
}

// SlotID identifies a slot for the duration of its frame. IDs may be
// reused after the frame ends.
type SlotID uintptr

// Event describes a slot lifecycle transition.
type Event struct {
	GoType string
	Slot   SlotID
	Type   EventType
}

// Observer receives slot lifecycle events.
type Observer interface {
	OnSlotEvent(Event)
}

var (
	obsMu     sync.RWMutex
	observers []Observer
	tracing   atomic.Bool
)

// Subscribe registers an observer for lifecycle events across the whole
// package. With no observers registered the event path is a single atomic
// load; handle operations never slow down untraced programs.
func Subscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	observers = append(observers, o)
	tracing.Store(true)
}

// Unsubscribe removes a previously registered observer.
func Unsubscribe(o Observer) {
	obsMu.Lock()
	defer obsMu.Unlock()
	for i, obs := range observers {
		if obs == o {
			observers = append(observers[:i], observers[i+1:]...)
			break
		}
	}
	tracing.Store(len(observers) > 0)
}

func traced() bool {
	return tracing.Load()
}

// notify dispatches outside the lock so an observer may subscribe or
// unsubscribe from inside its callback.
func notify(e Event) {
	obsMu.RLock()
	snapshot := make([]Observer, len(observers))
	copy(snapshot, observers)
	obsMu.RUnlock()
	for _, o := range snapshot {
		o.OnSlotEvent(e)
	}
}

func slotID[T any](s *Slot[T]) SlotID {
	return SlotID(uintptr(unsafe.Pointer(s)))
}
