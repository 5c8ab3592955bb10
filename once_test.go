package stackbox

import (
	"strings"
	"testing"

	"github.com/stackbox-go/stackbox/errors"
)

func TestOnce_CallConsumesState(t *testing.T) {
	drops := 0
	var slot Slot[counter]
	once := OnceOf(New(&slot, counter{drops: &drops, id: 5}), func(c counter) int {
		// We own c now; settle its obligation here.
		defer c.Drop()
		return c.id * 2
	})

	if got := once.Call(); got != 10 {
		t.Fatalf("Call = %d, want 10", got)
	}
	if drops != 1 {
		t.Fatalf("drops = %d after Call, want 1", drops)
	}
	if slot.Occupied() {
		t.Fatal("slot occupied after Call")
	}
}

func TestOnce_SecondCallPanics(t *testing.T) {
	var slot Slot[int]
	once := OnceOf(New(&slot, 1), func(v int) int { return v })
	_ = once.Call()

	mustPanicKind(t, errors.KindConsumed, func() { once.Call() })
}

func TestOnce_DropWithoutCall(t *testing.T) {
	drops := 0
	called := false
	var slot Slot[counter]
	once := OnceOf(New(&slot, counter{drops: &drops}), func(c counter) int {
		called = true
		return 0
	})

	once.Drop()
	if called {
		t.Fatal("dropping invoked the closure")
	}
	if drops != 1 {
		t.Fatalf("drops = %d, want 1 (captured state destroyed)", drops)
	}

	once.Drop() // no-op
	if drops != 1 {
		t.Fatalf("drops = %d after second Drop, want 1", drops)
	}
}

func TestOnce_DeferDropComposesWithCall(t *testing.T) {
	drops := 0
	func() {
		var slot Slot[counter]
		once := OnceOf(New(&slot, counter{drops: &drops}), func(c counter) int {
			defer c.Drop()
			return c.id
		})
		defer once.Drop()
		_ = once.Call()
	}()
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
}

func TestOnce1_CallWithArgument(t *testing.T) {
	var slot Slot[string]
	once := Once1Of(New(&slot, "hello"), func(prefix, suffix string) string {
		return prefix + ", " + suffix
	})

	if got := once.Call("world"); got != "hello, world" {
		t.Fatalf("Call = %q", got)
	}
	if slot.Occupied() {
		t.Fatal("slot occupied after Call")
	}

	mustPanicKind(t, errors.KindConsumed, func() { once.Call("again") })
}

func TestOnce_ErasedBranches(t *testing.T) {
	// Different captured types behind one closure type, no heap boxes.
	build := func(loud bool, s1 *Slot[string], s2 *Slot[int]) *Once[string] {
		if loud {
			return OnceOf(New(s1, "hey"), strings.ToUpper)
		}
		return OnceOf(New(s2, 3), func(n int) string {
			return strings.Repeat("x", n)
		})
	}

	var s1 Slot[string]
	var s2 Slot[int]
	if got := build(true, &s1, &s2).Call(); got != "HEY" {
		t.Fatalf("loud = %q, want HEY", got)
	}

	var s3 Slot[string]
	var s4 Slot[int]
	if got := build(false, &s3, &s4).Call(); got != "xxx" {
		t.Fatalf("quiet = %q, want xxx", got)
	}
}
