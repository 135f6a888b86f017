// Package branchbound implements the bounded-branch domain (C3, §4.5): a
// bound on how many conditional branches have been taken along the current
// exploration path, used to force termination on code whose control flow
// the location domain alone cannot bound (e.g. unresolved loop structure).
package branchbound

import (
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

// State counts conditional branches taken so far against a fixed Limit.
// The lattice order is reversed relative to the raw count: a smaller count
// is "greater" (more dominant), because a path that has taken fewer
// branches subsumes one that has taken more of the same branches so far.
// Join is therefore min(count).
//
// cpa.Run is instantiated with S = *State: Merge has a pointer receiver so
// it can widen a reached entry's Count in place.
type State struct {
	Count int
	Limit int
}

func New(limit int) *State { return &State{Count: 0, Limit: limit} }

func (s State) Equal(other *State) bool {
	return s.Count == other.Count && s.Limit == other.Limit
}

// LessEq under the reversed order: s <= other iff s.Count >= other.Count
// (fewer branches taken is "larger").
func (s State) LessEq(other *State) bool {
	return s.Count >= other.Count
}

// Merge is join-style: other is folded into s by keeping the smaller
// (more dominant) Count, mutating s in place.
func (s *State) Merge(other *State) state.MergeOutcome {
	return state.MergeJoin(s, *other,
		func(a, b State) bool { return a.Count == b.Count },
		func(a, b State) State {
			if b.Count < a.Count {
				return State{Count: b.Count, Limit: a.Limit}
			}
			return a
		})
}

func (s State) Stop(reached []*State) bool {
	return state.StopJoin[*State](&s, reached)
}

// Transfer increments Count on a conditional branch and reports no
// successors once Limit is reached, pruning further exploration of that
// path. Any other op kind leaves Count unchanged; this domain only ever
// contributes its count, the caller composes it with location via compound
// to get an actual program-counter successor.
func (s State) Transfer(op pcode.Op) []*State {
	if op.Kind != pcode.KindConditionalBranch {
		return []*State{{Count: s.Count, Limit: s.Limit}}
	}
	if s.Count >= s.Limit {
		return nil
	}
	return []*State{{Count: s.Count + 1, Limit: s.Limit}}
}
