package lattice

import "testing"

func TestProductJoinIsComponentWise(t *testing.T) {
	a := Product[Flat[int], Flat[int]]{First: Value(1), Second: Value(2)}
	b := Product[Flat[int], Flat[int]]{First: Value(1), Second: Value(3)}
	got := a.Join(b)
	if v, ok := got.First.Get(); !ok || v != 1 {
		t.Errorf("First = %v, want Value(1) (equal components stay equal)", got.First)
	}
	if !got.Second.IsTop() {
		t.Errorf("Second should be Top after joining distinct values 2 and 3")
	}
}

func TestProductLessEq(t *testing.T) {
	a := Product[Flat[int], Flat[int]]{First: Bottom[int](), Second: Value(1)}
	b := Product[Flat[int], Flat[int]]{First: Value(5), Second: Value(1)}
	if !a.LessEq(b) {
		t.Errorf("expected a <= b component-wise")
	}
}
