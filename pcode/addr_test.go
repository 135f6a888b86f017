package pcode

import "testing"

func TestAddrLessOrdersByMachineThenSlot(t *testing.T) {
	cases := []struct {
		a, b Addr
		want bool
	}{
		{Addr{Machine: 0, Slot: 0}, Addr{Machine: 2, Slot: 0}, true},
		{Addr{Machine: 2, Slot: 0}, Addr{Machine: 0, Slot: 0}, false},
		{Addr{Machine: 4, Slot: 0}, Addr{Machine: 4, Slot: 1}, true},
		{Addr{Machine: 4, Slot: 1}, Addr{Machine: 4, Slot: 0}, false},
		{Addr{Machine: 4, Slot: 0}, Addr{Machine: 4, Slot: 0}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%v.Less(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestAddrNextResetsSlot(t *testing.T) {
	a := Addr{Machine: 10, Slot: 1}
	got := a.Next(4)
	want := Addr{Machine: 14, Slot: 0}
	if got != want {
		t.Errorf("Next(4) = %v, want %v", got, want)
	}
}

func TestAddrNextSlotKeepsMachine(t *testing.T) {
	a := Addr{Machine: 10, Slot: 0}
	got := a.NextSlot()
	want := Addr{Machine: 10, Slot: 1}
	if got != want {
		t.Errorf("NextSlot() = %v, want %v", got, want)
	}
}

func TestAddrString(t *testing.T) {
	a := Addr{Machine: 0x100, Slot: 2}
	want := "00000100:2"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
