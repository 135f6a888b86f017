package compound

import (
	"testing"

	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

func TestLocationBranchBoundTransferBothArms(t *testing.T) {
	p := NewLocationBranchBound(pcode.Addr{Machine: 0}, location.CallBranch, 3, nil)
	op := pcode.Op{Kind: pcode.KindConditionalBranch, Target: pcode.Const(100), Size: 2}
	succ := p.Transfer(op)
	if len(succ) != 2 {
		t.Fatalf("got %d successors, want 2 (branch taken and fallthrough)", len(succ))
	}
	for _, s := range succ {
		if s.Second.Count != 1 {
			t.Errorf("got branch count %d, want 1 on every successor", s.Second.Count)
		}
	}
}

func TestLocationBranchBoundPrunesAtLimit(t *testing.T) {
	p := NewLocationBranchBound(pcode.Addr{Machine: 0}, location.CallBranch, 0, nil)
	op := pcode.Op{Kind: pcode.KindConditionalBranch, Target: pcode.Const(100), Size: 2}
	succ := p.Transfer(op)
	if len(succ) != 0 {
		t.Errorf("got %d successors, want 0 once branch limit 0 is exceeded", len(succ))
	}
}

func TestAddrDelegatesToFirst(t *testing.T) {
	p := NewLocationBranchBound(pcode.Addr{Machine: 42}, location.CallBranch, 3, nil)
	a, ok := p.Addr()
	if !ok || a.Machine != 42 {
		t.Errorf("got %v, %v; want addr 42, true", a, ok)
	}
}

// counter and tally are minimal domains used only to drive Pair.Transfer's
// strengthening path directly, independent of any real domain's semantics.
type counter struct{ n int }
type tally struct{ total int }

func transferCounter(c *counter, op pcode.Op) []*counter {
	return []*counter{{n: c.n + 1}}
}

func transferTally(t *tally, op pcode.Op) []*tally {
	return []*tally{{total: t.total}}
}

func newCounterTally(strengthenSecond Strengthener[tally, counter]) *Pair[counter, tally] {
	ops := Ops[counter, tally]{
		TransferFirst:  transferCounter,
		TransferSecond: transferTally,
		MergeFirst:     func(a, b *counter) state.MergeOutcome { return state.NoOp },
		MergeSecond:    func(a, b *tally) state.MergeOutcome { return state.NoOp },
		LessEqFirst:    func(a, b *counter) bool { return a.n == b.n },
		LessEqSecond:   func(a, b *tally) bool { return a.total == b.total },
		EqualFirst:     func(a, b *counter) bool { return a.n == b.n },
		EqualSecond:    func(a, b *tally) bool { return a.total == b.total },
	}
	return New(&counter{}, &tally{}, ops, nil, strengthenSecond)
}

// TestStrengthenSecondObservesFirstTransition exercises a non-nil
// Strengthener directly on Pair: tally's strengthener adds counter's new
// value to its own running total, something tally.Transfer alone has no way
// to do since it never sees counter's successor.
func TestStrengthenSecondObservesFirstTransition(t *testing.T) {
	strengthen := func(oldC, newC *counter, tl *tally) (*tally, bool) {
		return &tally{total: tl.total + newC.n}, true
	}
	p := newCounterTally(strengthen)
	succ := p.Transfer(pcode.Op{})
	if len(succ) != 1 {
		t.Fatalf("got %d successors, want 1", len(succ))
	}
	if succ[0].First.n != 1 || succ[0].Second.total != 1 {
		t.Errorf("got counter=%d tally=%d, want counter=1 tally=1", succ[0].First.n, succ[0].Second.total)
	}
	next := succ[0].Transfer(pcode.Op{})
	if next[0].First.n != 2 || next[0].Second.total != 3 {
		t.Errorf("got counter=%d tally=%d, want counter=2 tally=3", next[0].First.n, next[0].Second.total)
	}
}

// TestStrengthenSecondCanVetoPairing confirms a Strengthener returning
// ok=false drops the pairing entirely, rather than just leaving it
// unrefined.
func TestStrengthenSecondCanVetoPairing(t *testing.T) {
	strengthen := func(oldC, newC *counter, tl *tally) (*tally, bool) {
		return nil, false
	}
	p := newCounterTally(strengthen)
	succ := p.Transfer(pcode.Op{})
	if len(succ) != 0 {
		t.Errorf("got %d successors, want 0 once the strengthener vetoes every pairing", len(succ))
	}
}

// TestMergeDoesNotCrossFirstComponents confirms Merge refuses to touch
// Second when First differs: two Pairs at unrelated locations must never
// let their branchbound counts merge just because one count compares
// favorably (a latent cross-location corruption bug cpa.Run's flat,
// non-partitioned reached set would otherwise expose).
func TestMergeDoesNotCrossFirstComponents(t *testing.T) {
	a := NewLocationBranchBound(pcode.Addr{Machine: 0}, location.CallBranch, 10, nil)
	b := NewLocationBranchBound(pcode.Addr{Machine: 100}, location.CallBranch, 10, nil)
	a.Second.Count = 5
	b.Second.Count = 1 // smaller count: would win a join-style merge if First were ignored
	outcome := a.Merge(b)
	if outcome == state.Merged {
		t.Fatalf("Merge must not fire across unrelated First components")
	}
	if a.Second.Count != 5 {
		t.Errorf("got Second.Count=%d, want unchanged at 5: Merge touched Second despite differing First", a.Second.Count)
	}
}
