// Package state defines the abstract-state contract every concrete domain
// (location, branchbound, unwind, compound) implements, and the engine in
// package cpa drives.
package state

import "github.com/Urethramancer/m68kcfa/pcode"

// MergeOutcome reports what Merge did: whether the receiver was left
// unchanged (NoOp) or absorbed information from the other operand
// (Merged). The CPA engine re-enqueues the destination state only on
// Merged.
type MergeOutcome uint8

const (
	NoOp MergeOutcome = iota
	Merged
)

// AbstractState is the contract an abstract domain must satisfy to be
// driven by cpa.Run. S is instantiated as a pointer to the domain's state
// struct (e.g. *location.State): Merge needs to mutate the reached entry
// in place, which only a pointer receiver can do, while Equal/LessEq/
// Transfer/Stop are ordinary value-receiver methods whose method set a
// pointer type also carries.
//
// Transfer produces the successor states reachable by executing op from
// the receiver. Merge attempts to fold other into the receiver in place,
// reporting whether anything changed. Stop reports whether the receiver is
// already covered by some state already in reached, meaning the engine
// need not explore it further.
type AbstractState[S any] interface {
	Equal(other S) bool
	LessEq(other S) bool
	Transfer(op pcode.Op) []S
	Merge(other S) MergeOutcome
	Stop(reached []S) bool
}

// MergeSep is the separate-states merge discipline: distinct states at a
// location are always kept apart, never combined. Domains with no natural
// join (e.g. location.State, unwind.VisitCounts) follow this discipline;
// their Merge returns NoOp just as MergeSep does.
func MergeSep[S any]() MergeOutcome {
	return NoOp
}

// MergeJoin is the join-style merge discipline: self is folded together
// with other via joinFn, mutating self in place to the result. Reports
// Merged only if the result actually differs from self's prior value (per
// equal), so the engine does not re-enqueue a state that didn't change.
//
// S here is the plain domain struct (e.g. branchbound.State), not the
// pointer type cpa.Run is instantiated with: self is the address of that
// struct, taken from inside the domain's own pointer-receiver Merge
// method, which is what lets this helper mutate the reached entry in
// place without needing a pointer-to-pointer signature.
func MergeJoin[S any](self *S, other S, equal func(a, b S) bool, joinFn func(a, b S) S) MergeOutcome {
	joined := joinFn(*self, other)
	if equal(joined, *self) {
		return NoOp
	}
	*self = joined
	return Merged
}

// StopSep is the matching stop discipline for MergeSep: a state is covered
// only by an LessEq-equal state already present.
func StopSep[S AbstractState[S]](self S, reached []S) bool {
	for _, r := range reached {
		if self.LessEq(r) {
			return true
		}
	}
	return false
}

// StopJoin is the matching stop discipline for a join-style Merge: covered
// by any reached state that is already at least as general (self <= r).
// Identical in implementation to StopSep, named separately because the two
// merge disciplines reach the same stop test from different reasoning
// (join-style: subsumption by a wider join; sep-style: exact duplicate).
func StopJoin[S AbstractState[S]](self S, reached []S) bool {
	return StopSep(self, reached)
}
