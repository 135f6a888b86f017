package unwind

import (
	"testing"

	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
)

// loopStore models a two-instruction loop: addr 0 falls through to addr 2,
// addr 2 unconditionally branches back to addr 0.
type loopStore map[uint64]pcode.Op

func (m loopStore) GetOp(a pcode.Addr) (pcode.Op, bool) {
	op, ok := m[a.Machine]
	return op, ok
}

func TestDiscoverBackEdgesFindsLoop(t *testing.T) {
	store := loopStore{
		0: {Kind: pcode.KindData, Size: 2},
		2: {Kind: pcode.KindBranch, Target: pcode.Const(0), Size: 2},
	}
	edges := DiscoverBackEdges(store, pcode.Addr{Machine: 0}, location.CallBranch, nil)
	if len(edges) != 1 {
		t.Fatalf("got %d back edges, want 1", len(edges))
	}
	if edges[0].From.Machine != 2 || edges[0].To.Machine != 0 {
		t.Errorf("got %+v, want back edge 2 -> 0", edges[0])
	}
}

func TestBoundedVisitPrunesAtBound(t *testing.T) {
	store := loopStore{
		0: {Kind: pcode.KindData, Size: 2},
		2: {Kind: pcode.KindBranch, Target: pcode.Const(0), Size: 2},
	}
	s0, edges := NewAnalysis(store, pcode.Addr{Machine: 0}, location.CallBranch, 1, nil)
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}

	// First iteration: 0 -data-> 2 -branch-> 0, crossing the back edge once.
	op0, _ := store.GetOp(pcode.Addr{Machine: 0})
	succ := s0.Transfer(op0)
	if len(succ) != 1 {
		t.Fatalf("got %d successors at addr 0, want 1", len(succ))
	}
	at2 := succ[0]

	op2, _ := store.GetOp(pcode.Addr{Machine: 2})
	succ2 := at2.Transfer(op2)
	if len(succ2) != 1 {
		t.Fatalf("got %d successors at addr 2, want 1 (back to 0, within bound)", len(succ2))
	}
	if succ2[0].Second.counts[0] != 1 {
		t.Errorf("got visit count %d, want 1 after first crossing", succ2[0].Second.counts[0])
	}

	// Second crossing exceeds bound 1 and must be pruned.
	backAt0 := succ2[0]
	succ3 := backAt0.Transfer(op0)
	at2Again := succ3[0]
	succ4 := at2Again.Transfer(op2)
	if len(succ4) != 0 {
		t.Errorf("got %d successors, want 0 once the back edge bound is exceeded", len(succ4))
	}
}

func TestStrengthenVisitsIgnoresNonBackEdge(t *testing.T) {
	vc := NewVisitCounts([]BackEdge{{From: pcode.Addr{Machine: 2}, To: pcode.Addr{Machine: 0}}}, 1)
	oldLoc := location.New(pcode.Addr{Machine: 0}, location.CallBranch, nil)
	newLoc := location.New(pcode.Addr{Machine: 2}, location.CallBranch, nil)
	refined, ok := strengthenVisits(oldLoc, newLoc, vc)
	if !ok {
		t.Fatalf("expected non-back-edge transition to stay ok")
	}
	if refined.counts[0] != 0 {
		t.Errorf("got count %d, want 0 unchanged for a non-back-edge step", refined.counts[0])
	}
}
