package trace

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stackbox-go/stackbox"
)

func TestCounters(t *testing.T) {
	var c Counters
	stackbox.Subscribe(&c)
	defer stackbox.Unsubscribe(&c)

	var s1 stackbox.Slot[int]
	box := stackbox.New(&s1, 1)
	box.Replace(func(v int) int { return v + 1 })
	box.Drop()

	var s2 stackbox.Slot[int]
	_ = stackbox.New(&s2, 2).IntoInner()

	var s3 stackbox.Slot[int]
	stackbox.Unsize(stackbox.New(&s3, 3)).Drop()

	got := c.Snapshot()
	want := Totals{Placed: 3, Dropped: 2, MovedOut: 1, Widened: 1, Replaced: 1}
	if got != want {
		t.Fatalf("Snapshot = %+v, want %+v", got, want)
	}
	if live := got.Live(); live != 0 {
		t.Fatalf("Live = %d, want 0", live)
	}
}

func TestTotals_LiveCountsLeaks(t *testing.T) {
	var c Counters
	stackbox.Subscribe(&c)
	defer stackbox.Unsubscribe(&c)

	var slot stackbox.Slot[int]
	_ = stackbox.New(&slot, 1).Leak()

	got := c.Snapshot()
	if got.Leaked != 1 {
		t.Fatalf("Leaked = %d, want 1", got.Leaked)
	}
	if live := got.Live(); live != 0 {
		t.Fatalf("Live = %d, want 0 (leak settles the obligation)", live)
	}
}

func TestZapObserver(t *testing.T) {
	core, logged := observer.New(zapcore.DebugLevel)
	obs := NewZapObserver(zap.New(core))
	stackbox.Subscribe(obs)
	defer stackbox.Unsubscribe(obs)

	var slot stackbox.Slot[string]
	stackbox.New(&slot, "traced").Drop()

	entries := logged.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["event"] != "placed" {
		t.Fatalf(`first event = %v, want "placed"`, fields["event"])
	}
	if fields["go_type"] != "string" {
		t.Fatalf(`go_type = %v, want "string"`, fields["go_type"])
	}
	if fields2 := entries[1].ContextMap(); fields2["event"] != "dropped" {
		t.Fatalf(`second event = %v, want "dropped"`, fields2["event"])
	}
}

func TestZapObserver_NilLogger(t *testing.T) {
	obs := NewZapObserver(nil)
	obs.OnSlotEvent(stackbox.Event{Type: stackbox.EventPlaced}) // must not panic
}
