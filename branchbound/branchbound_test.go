package branchbound

import (
	"testing"

	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

func TestTransferIncrementsOnConditionalBranch(t *testing.T) {
	s := New(2)
	op := pcode.Op{Kind: pcode.KindConditionalBranch}
	succ := s.Transfer(op)
	if len(succ) != 1 || succ[0].Count != 1 {
		t.Fatalf("got %v, want a single successor with Count 1", succ)
	}
}

func TestTransferPrunesAtLimit(t *testing.T) {
	s := &State{Count: 2, Limit: 2}
	op := pcode.Op{Kind: pcode.KindConditionalBranch}
	succ := s.Transfer(op)
	if succ != nil {
		t.Errorf("got %v, want no successors once limit reached", succ)
	}
}

func TestTransferIgnoresNonBranchOps(t *testing.T) {
	s := New(2)
	op := pcode.Op{Kind: pcode.KindData}
	succ := s.Transfer(op)
	if len(succ) != 1 || succ[0].Count != 0 {
		t.Fatalf("got %v, want Count unchanged at 0", succ)
	}
}

func TestMergeKeepsSmallerCount(t *testing.T) {
	dest := &State{Count: 3, Limit: 5}
	outcome := dest.Merge(&State{Count: 1, Limit: 5})
	if dest.Count != 1 {
		t.Errorf("got Count %d, want 1 after merging a smaller count in", dest.Count)
	}
	if outcome != state.Merged {
		t.Errorf("got %v, want Merged", outcome)
	}
}

func TestMergeNoOpWhenNotSmaller(t *testing.T) {
	dest := &State{Count: 1, Limit: 5}
	outcome := dest.Merge(&State{Count: 3, Limit: 5})
	if dest.Count != 1 {
		t.Errorf("got Count %d, want unchanged at 1", dest.Count)
	}
	if outcome != state.NoOp {
		t.Errorf("got %v, want NoOp", outcome)
	}
}

func TestLessEqReversedOrder(t *testing.T) {
	smaller := &State{Count: 1, Limit: 5}
	larger := &State{Count: 3, Limit: 5}
	if !larger.LessEq(smaller) {
		t.Errorf("expected more-branches state to be <= fewer-branches state in reversed order")
	}
	if smaller.LessEq(larger) {
		t.Errorf("expected fewer-branches state NOT to be <= more-branches state")
	}
}
