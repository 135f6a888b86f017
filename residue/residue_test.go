package residue

import (
	"testing"

	"github.com/Urethramancer/m68kcfa/pcode"
)

func intEqual(a, b int) bool { return a == b }

func TestVecResidueDedupsOnNew(t *testing.T) {
	v := NewVecResidue[int](intEqual)
	v.OnNew(0, 1, nil)
	v.OnNew(0, 1, nil)
	got := v.Finalize()
	if len(got) != 1 {
		t.Errorf("got %d entries, want 1 after a duplicate OnNew", len(got))
	}
}

func TestVecResidueReplacesOnMerge(t *testing.T) {
	v := NewVecResidue[int](intEqual)
	v.OnNew(0, 1, nil)
	v.OnMerged(0, 1, 2, nil)
	got := v.Finalize()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got %v, want [2] after merging 1 into 2", got)
	}
}

func TestCfgResidueBuildsGraph(t *testing.T) {
	c := NewCfgResidue[int](func(n int) int { return n })
	op := pcode.Op{Kind: pcode.KindBranch, Mnemonic: "bra"}
	c.OnNew(0, 0, nil)
	c.OnNew(0, 1, &op)
	g := c.Finalize()
	succ := g.Successors(0)
	if len(succ) != 1 || succ[0] != 1 {
		t.Errorf("got successors %v, want [1]", succ)
	}
}

func TestPathResidueRecordsForkedHistory(t *testing.T) {
	p := NewPathResidue[int](intEqual)
	op1 := pcode.Op{Mnemonic: "a"}
	op2 := pcode.Op{Mnemonic: "b"}
	p.OnNew(0, 0, nil)
	p.OnNew(0, 1, &op1)
	p.OnNew(1, 2, &op2)

	path, ok := p.PathTo(2)
	if !ok {
		t.Fatalf("expected a path to state 2")
	}
	ops := path.Ops()
	if len(ops) != 2 || ops[0].Mnemonic != "a" || ops[1].Mnemonic != "b" {
		t.Errorf("got %v, want [a b]", ops)
	}
}
