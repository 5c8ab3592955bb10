package stackbox

import (
	"testing"

	"github.com/stackbox-go/stackbox/errors"
)

func TestBoxSlice_DropDestroysAllInOrder(t *testing.T) {
	drops := 0
	var order []int
	store := [3]counter{
		{drops: &drops, id: 0},
		{drops: &drops, id: 1},
		{drops: &drops, id: 2},
	}
	bs := SliceFromWithDrop(store[:], func(c *counter) {
		order = append(order, c.id)
		c.Drop()
	})

	bs.Drop()
	if drops != 3 {
		t.Fatalf("drops = %d, want 3", drops)
	}
	for i, id := range order {
		if id != i {
			t.Fatalf("drop order = %v, want [0 1 2]", order)
		}
	}

	bs.Drop() // no-op on consumed handle
	if drops != 3 {
		t.Fatalf("drops = %d after second Drop, want 3", drops)
	}
}

func TestBoxSlice_PopTransfersObligation(t *testing.T) {
	drops := 0
	store := [2]counter{
		{drops: &drops, id: 10},
		{drops: &drops, id: 11},
	}
	bs := SliceFrom(store[:])

	v, ok := bs.Pop()
	if !ok || v.id != 10 {
		t.Fatalf("Pop = (%+v, %v), want id 10", v, ok)
	}
	if bs.Len() != 1 {
		t.Fatalf("Len = %d after Pop, want 1", bs.Len())
	}
	if drops != 0 {
		t.Fatalf("drops = %d after Pop, want 0", drops)
	}

	// The handle now owns only the remainder.
	bs.Drop()
	if drops != 1 {
		t.Fatalf("drops = %d after Drop, want 1 (only the un-popped element)", drops)
	}

	v.Drop()
	if drops != 2 {
		t.Fatalf("drops = %d after popping value's own drop, want 2", drops)
	}
}

func TestBoxSlice_PopEmpty(t *testing.T) {
	bs := SliceFrom([]int{})
	if _, ok := bs.Pop(); ok {
		t.Fatal("Pop on empty succeeded")
	}
}

func TestBoxSlice_SplitAt(t *testing.T) {
	drops := 0
	store := [4]counter{
		{drops: &drops, id: 0},
		{drops: &drops, id: 1},
		{drops: &drops, id: 2},
		{drops: &drops, id: 3},
	}
	bs := SliceFrom(store[:])

	hd, tl := bs.SplitAt(1)
	if hd.Len() != 1 || tl.Len() != 3 {
		t.Fatalf("split lens = (%d, %d), want (1, 3)", hd.Len(), tl.Len())
	}

	mustPanicKind(t, errors.KindConsumed, func() { bs.Len() })

	hd.Drop()
	if drops != 1 {
		t.Fatalf("drops = %d after head drop, want 1", drops)
	}
	tl.Drop()
	if drops != 4 {
		t.Fatalf("drops = %d after tail drop, want 4", drops)
	}
}

func TestBoxSlice_SplitAtOutOfRange(t *testing.T) {
	bs := SliceFrom([]int{1, 2})
	defer bs.Drop()
	mustPanicKind(t, errors.KindCapacity, func() { bs.SplitAt(3) })
}

func TestBoxSlice_Drain(t *testing.T) {
	drops := 0
	store := [3]counter{
		{drops: &drops, id: 0},
		{drops: &drops, id: 1},
		{drops: &drops, id: 2},
	}
	bs := SliceFrom(store[:])

	var got []int
	bs.Drain(func(c counter) {
		got = append(got, c.id)
		c.Drop()
	})

	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("drained order = %v, want [0 1 2]", got)
	}
	if drops != 3 {
		t.Fatalf("drops = %d, want 3", drops)
	}

	mustPanicKind(t, errors.KindConsumed, func() { bs.Pop() })
}

func TestBoxSlice_GetAliasesBacking(t *testing.T) {
	store := [2]int{5, 6}
	bs := SliceFrom(store[:])
	defer bs.Drop()

	*bs.Get(1) = 60
	if store[1] != 60 {
		t.Fatal("write through Get did not reach the backing storage")
	}
}
