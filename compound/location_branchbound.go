package compound

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/branchbound"
	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

// NewLocationBranchBound wires the location and branchbound domains into a
// compound analysis with no mutual strengthening needed in either
// direction: branchbound only reads the op kind (already visible to both
// components independently), it never needs to peek at location's current
// address, and vice versa. This is the simplest concrete instantiation of
// Pair, matching bounded_steps/mod.rs's plain two-field compound state in
// the original.
func NewLocationBranchBound(entry pcode.Addr, behavior location.CallBehavior, branchLimit int, logger *zap.Logger) *Pair[location.State, branchbound.State] {
	ops := Ops[location.State, branchbound.State]{
		TransferFirst:  func(s *location.State, op pcode.Op) []*location.State { return s.Transfer(op) },
		TransferSecond: func(s *branchbound.State, op pcode.Op) []*branchbound.State { return s.Transfer(op) },
		MergeFirst:     func(s, other *location.State) state.MergeOutcome { return s.Merge(other) },
		MergeSecond:    func(s, other *branchbound.State) state.MergeOutcome { return s.Merge(other) },
		LessEqFirst:    func(s, other *location.State) bool { return s.LessEq(other) },
		LessEqSecond:   func(s, other *branchbound.State) bool { return s.LessEq(other) },
		EqualFirst:     func(s, other *location.State) bool { return s.Equal(other) },
		EqualSecond:    func(s, other *branchbound.State) bool { return s.Equal(other) },
	}
	return New(location.New(entry, behavior, logger), branchbound.New(branchLimit), ops, nil, nil)
}
