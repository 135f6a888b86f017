package pcode

import "testing"

func TestVarNodeResolve(t *testing.T) {
	cases := []struct {
		name     string
		node     VarNode
		from     uint64
		wantAddr uint64
		wantOK   bool
	}{
		{"const ignores from", Const(0x400), 0x100, 0x400, true},
		{"relative adds to from", Relative(8), 0x100, 0x108, true},
		{"relative handles negative offset", Relative(-4), 0x100, 0xfc, true},
		{"absolute never resolves", Absolute(), 0x100, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.node.Resolve(c.from)
			if ok != c.wantOK {
				t.Fatalf("ok = %v, want %v", ok, c.wantOK)
			}
			if ok && got != c.wantAddr {
				t.Errorf("resolved addr = %#x, want %#x", got, c.wantAddr)
			}
		})
	}
}

func TestKindStringCoversEveryTag(t *testing.T) {
	kinds := []Kind{
		KindData, KindBranch, KindConditionalBranch, KindIndirectBranch,
		KindCall, KindIndirectCall, KindCallOther, KindReturn,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" {
			t.Errorf("Kind %d stringified to empty string", k)
		}
		if seen[s] {
			t.Errorf("Kind %d stringified to %q, already used by another kind", k, s)
		}
		seen[s] = true
	}
}
