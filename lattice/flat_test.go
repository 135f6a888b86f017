package lattice

import "testing"

func TestFlatJoin(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Flat[int]
		want   Flat[int]
	}{
		{"bottom join bottom", Bottom[int](), Bottom[int](), Bottom[int]()},
		{"bottom join value", Bottom[int](), Value(3), Value(3)},
		{"value join bottom", Value(3), Bottom[int](), Value(3)},
		{"equal values", Value(5), Value(5), Value(5)},
		{"distinct values", Value(5), Value(6), Top[int]()},
		{"value join top", Value(5), Top[int](), Top[int]()},
		{"top join anything", Top[int](), Value(9), Top[int]()},
	}
	for _, tt := range tests {
		got := tt.a.Join(tt.b)
		if !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFlatLessEq(t *testing.T) {
	if !Bottom[int]().LessEq(Value(1)) {
		t.Errorf("bottom should be <= any value")
	}
	if !Value(1).LessEq(Top[int]()) {
		t.Errorf("any value should be <= top")
	}
	if Value(1).LessEq(Value(2)) {
		t.Errorf("distinct values must not be <=")
	}
	if Top[int]().LessEq(Value(1)) {
		t.Errorf("top must not be <= a value")
	}
}

func TestFlatGet(t *testing.T) {
	if _, ok := Top[int]().Get(); ok {
		t.Errorf("Get on Top should report false")
	}
	if _, ok := Bottom[int]().Get(); ok {
		t.Errorf("Get on Bottom should report false")
	}
	v, ok := Value(42).Get()
	if !ok || v != 42 {
		t.Errorf("Get on Value(42) = %v, %v; want 42, true", v, ok)
	}
}
