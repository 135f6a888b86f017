// Package compound implements domain composition with mutual strengthening
// (C4): a generic product of two abstract-state domains where either side
// may refine its own successor set using the other's current value.
//
// This deliberately does NOT reproduce jingle's runtime TypeId-keyed
// strengthen registry (the inventory crate + register_strengthen! macro in
// compound/strengthen.rs). That mechanism exists in the original to let
// strengthening rules be contributed from anywhere in a large crate graph
// without the composing code knowing about them up front; Go has no
// runtime type registry idiom to match it, and the distilled spec's own
// design notes call out this exact pattern for replacement. Here, a
// Strengthener is an explicit function value wired in by the caller at
// Pair construction time.
package compound

import (
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

// Strengthener refines a candidate A using B's transition across this
// step: its value both before (oldB) and after (newB) the transfer that
// produced the candidate. This is what lets a component observe which
// concrete destination the other component reached, not just where it
// started - e.g. a back-edge counter needs the post-transfer location to
// know which edge was crossed, not the pre-transfer one alone. Returning
// ok=false drops this particular (A, B) pairing from the cartesian
// product entirely; returning the input unchanged is always safe.
type Strengthener[A, B any] func(oldB, newB *B, a *A) (refined *A, ok bool)

// Pair is the product state (S1, S2). cpa.Run is instantiated with
// S = *Pair[S1, S2].
type Pair[S1, S2 any] struct {
	First  *S1
	Second *S2

	transferFirst  func(*S1, pcode.Op) []*S1
	transferSecond func(*S2, pcode.Op) []*S2
	mergeFirst     func(*S1, *S1) state.MergeOutcome
	mergeSecond    func(*S2, *S2) state.MergeOutcome
	lessEqFirst    func(*S1, *S1) bool
	lessEqSecond   func(*S2, *S2) bool
	equalFirst     func(*S1, *S1) bool
	equalSecond    func(*S2, *S2) bool

	strengthenFirst  Strengthener[S1, S2] // refine First using Second's transition
	strengthenSecond Strengthener[S2, S1] // refine Second using First's transition
}

// Ops bundles the operations New needs to read off S1/S2 generically:
// Go's generic system cannot express "S1 implements AbstractState[*S1]" as
// a constraint usable from inside another generic type's methods without
// a second type parameter per accessor, so the accessors are supplied
// explicitly instead of inferred from an interface constraint. Callers
// building a concrete composition (e.g. location x branchbound) write
// this once.
type Ops[S1, S2 any] struct {
	TransferFirst  func(*S1, pcode.Op) []*S1
	TransferSecond func(*S2, pcode.Op) []*S2
	MergeFirst     func(*S1, *S1) state.MergeOutcome
	MergeSecond    func(*S2, *S2) state.MergeOutcome
	LessEqFirst    func(*S1, *S1) bool
	LessEqSecond   func(*S2, *S2) bool
	EqualFirst     func(*S1, *S1) bool
	EqualSecond    func(*S2, *S2) bool
}

// New builds an initial compound state, wiring in both the domain
// operations and the (optional, nil-able) mutual strengtheners.
func New[S1, S2 any](first *S1, second *S2, ops Ops[S1, S2], strengthenFirst Strengthener[S1, S2], strengthenSecond Strengthener[S2, S1]) *Pair[S1, S2] {
	return &Pair[S1, S2]{
		First:            first,
		Second:           second,
		transferFirst:    ops.TransferFirst,
		transferSecond:   ops.TransferSecond,
		mergeFirst:       ops.MergeFirst,
		mergeSecond:      ops.MergeSecond,
		lessEqFirst:      ops.LessEqFirst,
		lessEqSecond:     ops.LessEqSecond,
		equalFirst:       ops.EqualFirst,
		equalSecond:      ops.EqualSecond,
		strengthenFirst:  strengthenFirst,
		strengthenSecond: strengthenSecond,
	}
}

// Addr exposes First's address when First is itself an address carrier
// (the common case: First is *location.State or another compound wrapping
// one), satisfying pcode.AddrCarrier so cpa.Run can drive this compound
// directly. A compound whose First component carries no address reports
// false.
func (p Pair[S1, S2]) Addr() (pcode.Addr, bool) {
	carrier, ok := any(p.First).(pcode.AddrCarrier)
	if !ok {
		return pcode.Addr{}, false
	}
	return carrier.Addr()
}

func (p Pair[S1, S2]) Equal(other *Pair[S1, S2]) bool {
	return p.equalFirst(p.First, other.First) && p.equalSecond(p.Second, other.Second)
}

func (p Pair[S1, S2]) LessEq(other *Pair[S1, S2]) bool {
	return p.lessEqFirst(p.First, other.First) && p.lessEqSecond(p.Second, other.Second)
}

// Merge merges both components independently, but only once the First
// components already agree: cpa.Run keeps one flat reached set with no
// location partitioning, and calls Merge against every entry regardless of
// program location (§4.9), so two Pairs at unrelated addresses must never
// let their Second components merge just because one happens to compare
// favorably. Each component's own merge discipline (join or sep) is used
// as-is where it applies, per DESIGN.md Open Question 3: compound never
// overrides it.
func (p *Pair[S1, S2]) Merge(other *Pair[S1, S2]) state.MergeOutcome {
	if !p.equalFirst(p.First, other.First) {
		return state.NoOp
	}
	a := p.mergeFirst(p.First, other.First)
	b := p.mergeSecond(p.Second, other.Second)
	if a == state.Merged || b == state.Merged {
		return state.Merged
	}
	return state.NoOp
}

func (p Pair[S1, S2]) Stop(reached []*Pair[S1, S2]) bool {
	for _, r := range reached {
		if p.LessEq(r) {
			return true
		}
	}
	return false
}

// Transfer computes the cartesian product of both components' successor
// sets. Each pairing is strengthened in turn: strengthenSecond gets to
// refine (or veto) the Second candidate using First's transition
// (p.First before the step, f after it), then strengthenFirst gets to
// refine (or veto) the First candidate using Second's transition (p.Second
// before, the already-strengthened s after). A strengthener returning
// ok=false drops that pairing from the result entirely.
func (p Pair[S1, S2]) Transfer(op pcode.Op) []*Pair[S1, S2] {
	firsts := p.transferFirst(p.First, op)
	seconds := p.transferSecond(p.Second, op)

	var out []*Pair[S1, S2]
	for _, f := range firsts {
		for _, s := range seconds {
			sOut := s
			if p.strengthenSecond != nil {
				refined, ok := p.strengthenSecond(p.First, f, sOut)
				if !ok {
					continue
				}
				sOut = refined
			}
			fOut := f
			if p.strengthenFirst != nil {
				refined, ok := p.strengthenFirst(p.Second, sOut, fOut)
				if !ok {
					continue
				}
				fOut = refined
			}
			out = append(out, &Pair[S1, S2]{
				First: fOut, Second: sOut,
				transferFirst: p.transferFirst, transferSecond: p.transferSecond,
				mergeFirst: p.mergeFirst, mergeSecond: p.mergeSecond,
				lessEqFirst: p.lessEqFirst, lessEqSecond: p.lessEqSecond,
				equalFirst: p.equalFirst, equalSecond: p.equalSecond,
				strengthenFirst: p.strengthenFirst, strengthenSecond: p.strengthenSecond,
			})
		}
	}
	return out
}
