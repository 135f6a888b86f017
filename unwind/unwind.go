// Package unwind implements the back-edge bounded (loop-unwinding) domain
// (C3, §4.6): a two-phase analysis that first discovers the set of back
// edges in the reachable control flow, then bounds how many times each one
// may be traversed along any single exploration path.
package unwind

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/cfg"
	"github.com/Urethramancer/m68kcfa/compound"
	"github.com/Urethramancer/m68kcfa/cpa"
	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/residue"
	"github.com/Urethramancer/m68kcfa/state"
)

// BackEdge names a single discovered back-transition: a control-flow edge
// whose destination had already been visited by the sweep when it was
// taken. The visited set is global, not per path, so an edge into a join
// point first reached along another branch is recorded as well.
type BackEdge struct {
	From, To pcode.Addr
}

// DiscoverBackEdges runs Phase A: a plain depth-first reachability sweep
// over the location domain, recording a BackEdge whenever a transfer's
// destination is already in the visited set. This is the visited-set
// heuristic decision recorded in DESIGN.md (Open Question 2), not a
// dominator computation.
func DiscoverBackEdges(store pcode.Store, entry pcode.Addr, behavior location.CallBehavior, logger *zap.Logger) []BackEdge {
	if logger == nil {
		logger = zap.NewNop()
	}

	visited := map[pcode.Addr]bool{entry: true}
	var stack []pcode.Addr
	stack = append(stack, entry)

	var edges []BackEdge
	seenEdge := make(map[BackEdge]bool)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		op, ok := store.GetOp(cur)
		if !ok {
			continue
		}

		s := location.New(cur, behavior, logger)
		for _, succ := range s.Transfer(op) {
			dest, ok := succ.Addr()
			if !ok {
				continue // widened to Top, no concrete destination to track
			}
			if visited[dest] {
				edge := BackEdge{From: cur, To: dest}
				if !seenEdge[edge] {
					seenEdge[edge] = true
					edges = append(edges, edge)
				}
				continue
			}
			visited[dest] = true
			stack = append(stack, dest)
		}
	}

	return edges
}

// Analysis is the Phase B compound state: a program location paired with a
// bounded back-edge visit counter, composed via compound.Pair with a
// Strengthener. This is C4's mutual-strengthening case worked through for
// real: the visit counter alone cannot tell which back edge a step crossed,
// only location knows the concrete destination address, so strengthenVisits
// observes location's transition (before and after) to do the counting and
// pruning that VisitCounts.Transfer itself cannot.
type Analysis = compound.Pair[location.State, VisitCounts]

// NewAnalysis runs Phase A to discover back edges from entry, then builds
// the ready-to-run Phase B initial compound state together with the
// discovered edges (exposed for diagnostics/logging).
func NewAnalysis(store pcode.Store, entry pcode.Addr, behavior location.CallBehavior, bound int, logger *zap.Logger) (*Analysis, []BackEdge) {
	edges := DiscoverBackEdges(store, entry, behavior, logger)
	ops := compound.Ops[location.State, VisitCounts]{
		TransferFirst:  func(s *location.State, op pcode.Op) []*location.State { return s.Transfer(op) },
		TransferSecond: func(s *VisitCounts, op pcode.Op) []*VisitCounts { return s.Transfer(op) },
		MergeFirst:     func(s, other *location.State) state.MergeOutcome { return s.Merge(other) },
		MergeSecond:    func(s, other *VisitCounts) state.MergeOutcome { return s.Merge(other) },
		LessEqFirst:    func(s, other *location.State) bool { return s.LessEq(other) },
		LessEqSecond:   func(s, other *VisitCounts) bool { return s.LessEq(other) },
		EqualFirst:     func(s, other *location.State) bool { return s.Equal(other) },
		EqualSecond:    func(s, other *VisitCounts) bool { return s.Equal(other) },
	}
	s0 := compound.New(location.New(entry, behavior, logger), NewVisitCounts(edges, bound), ops, nil, strengthenVisits)
	return s0, edges
}

// strengthenVisits is the compound.Strengthener[location.State, VisitCounts]
// driving the whole domain: given where location was before (oldLoc) and
// after (newLoc) a transfer, it checks whether that transition crosses a
// discovered back edge and, if so, increments that edge's counter, vetoing
// the pairing (ok=false) once the counter would exceed bound.
func strengthenVisits(oldLoc, newLoc *location.State, vc *VisitCounts) (*VisitCounts, bool) {
	from, fromOK := oldLoc.Addr()
	to, toOK := newLoc.Addr()
	if !fromOK || !toOK {
		return vc, true // widened to Top on either side, no edge to identify
	}
	idx := vc.edgeIndex(from, to)
	if idx < 0 {
		return vc, true // not a discovered back edge, nothing to track
	}
	if vc.counts[idx]+1 > vc.bound {
		return nil, false // crossing this back edge once more than the bound allows
	}
	next := &VisitCounts{edges: vc.edges, counts: append([]int(nil), vc.counts...), bound: vc.bound}
	next.counts[idx]++
	return next, true
}

// RunAnalysis drives Phase B to a fixed point via the CPA engine, projecting
// the residue onto a location-keyed CFG exactly as the plain location
// analysis does.
func RunAnalysis(store pcode.Store, entry pcode.Addr, behavior location.CallBehavior, bound int, logger *zap.Logger) ([]*Analysis, []BackEdge, *cfg.Graph[pcode.Addr, pcode.Op]) {
	s0, edges := NewAnalysis(store, entry, behavior, bound, logger)
	r := residue.NewCfgResidue[*Analysis](func(p *Analysis) pcode.Addr {
		a, _ := p.Addr()
		return a
	})
	reached, g := cpa.Run[*Analysis, *cfg.Graph[pcode.Addr, pcode.Op]](store, s0, r, logger)
	return reached, edges, g
}
