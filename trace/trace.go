package trace

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/stackbox-go/stackbox"
)

// ZapObserver logs every slot lifecycle event through a zap logger at
// debug level.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates a logging observer. A nil logger falls back to
// the no-op logger.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapObserver{log: log}
}

// OnSlotEvent implements stackbox.Observer.
func (o *ZapObserver) OnSlotEvent(e stackbox.Event) {
	o.log.Debug("slot event",
		zap.Stringer("event", e.Type),
		zap.Uintptr("slot", uintptr(e.Slot)),
		zap.String("go_type", e.GoType),
	)
}

// Totals is a point-in-time copy of a Counters tally.
type Totals struct {
	Placed   uint64
	Dropped  uint64
	MovedOut uint64
	Widened  uint64
	Leaked   uint64
	Replaced uint64
}

// Live returns the number of obligations currently outstanding: values
// placed whose ownership has not yet been settled by a drop, a move-out,
// or a leak.
func (t Totals) Live() int64 {
	return int64(t.Placed) - int64(t.Dropped) - int64(t.MovedOut) - int64(t.Leaked)
}

// Counters tallies lifecycle events. Safe for concurrent use; the zero
// value is ready.
type Counters struct {
	placed   atomic.Uint64
	dropped  atomic.Uint64
	movedOut atomic.Uint64
	widened  atomic.Uint64
	leaked   atomic.Uint64
	replaced atomic.Uint64
}

// OnSlotEvent implements stackbox.Observer.
func (c *Counters) OnSlotEvent(e stackbox.Event) {
	switch e.Type {
	case stackbox.EventPlaced:
		c.placed.Add(1)
	case stackbox.EventDropped:
		c.dropped.Add(1)
	case stackbox.EventMovedOut:
		c.movedOut.Add(1)
	case stackbox.EventWidened:
		c.widened.Add(1)
	case stackbox.EventLeaked:
		c.leaked.Add(1)
	case stackbox.EventReplaced:
		c.replaced.Add(1)
	}
}

// Snapshot returns the current tally.
func (c *Counters) Snapshot() Totals {
	return Totals{
		Placed:   c.placed.Load(),
		Dropped:  c.dropped.Load(),
		MovedOut: c.movedOut.Load(),
		Widened:  c.widened.Load(),
		Leaked:   c.leaked.Load(),
		Replaced: c.replaced.Load(),
	}
}
