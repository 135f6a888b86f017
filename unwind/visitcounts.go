package unwind

import (
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

// VisitCounts is the second half of the back-edge bounded compound state: a
// visit counter per discovered back edge, capped at bound. It cannot tell on
// its own which edge (if any) a transfer just crossed - that requires the
// concrete destination address, which only the paired location.State
// produces. NewAnalysis wires a compound.Strengthener that observes
// location's transition and does the actual counting/pruning; Transfer here
// is a pass-through that leaves the counts untouched.
type VisitCounts struct {
	edges  []BackEdge
	counts []int
	bound  int
}

// NewVisitCounts builds the zeroed counter vector for a discovered edge set.
func NewVisitCounts(edges []BackEdge, bound int) *VisitCounts {
	return &VisitCounts{edges: edges, counts: make([]int, len(edges)), bound: bound}
}

func (v VisitCounts) Equal(other *VisitCounts) bool {
	for i := range v.counts {
		if v.counts[i] != other.counts[i] {
			return false
		}
	}
	return true
}

// LessEq is exact-match only: a bounded-visit vector does not subsume any
// other with a different count, only an identical one.
func (v VisitCounts) LessEq(other *VisitCounts) bool {
	return v.Equal(other)
}

func (v *VisitCounts) Merge(other *VisitCounts) state.MergeOutcome {
	return state.NoOp
}

func (v VisitCounts) Transfer(pcode.Op) []*VisitCounts {
	return []*VisitCounts{{edges: v.edges, counts: append([]int(nil), v.counts...), bound: v.bound}}
}

func (v VisitCounts) edgeIndex(from, to pcode.Addr) int {
	for i, e := range v.edges {
		if e.From == from && e.To == to {
			return i
		}
	}
	return -1
}
