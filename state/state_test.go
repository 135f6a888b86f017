package state

import (
	"testing"

	"github.com/Urethramancer/m68kcfa/pcode"
)

// fakeState is a minimal AbstractState[*fakeState] used only to exercise
// the free-function helpers independent of any real domain.
type fakeState struct {
	val int
}

func (s *fakeState) Equal(other *fakeState) bool { return s.val == other.val }
func (s *fakeState) LessEq(other *fakeState) bool { return s.val <= other.val }
func (s *fakeState) Transfer(pcode.Op) []*fakeState { return nil }
func (s *fakeState) Merge(*fakeState) MergeOutcome { return NoOp }
func (s *fakeState) Stop(reached []*fakeState) bool { return StopSep[*fakeState](s, reached) }

func TestStopSepCoveredByEqualState(t *testing.T) {
	a := &fakeState{val: 3}
	b := &fakeState{val: 3}
	if !StopSep[*fakeState](a, []*fakeState{b}) {
		t.Errorf("expected a to be covered by an equal-valued reached state")
	}
}

func TestStopSepNotCoveredByLesserState(t *testing.T) {
	a := &fakeState{val: 5}
	b := &fakeState{val: 3}
	if StopSep[*fakeState](a, []*fakeState{b}) {
		t.Errorf("expected a (val 5) not to be covered by a lesser state (val 3)")
	}
}

func TestStopJoinAgreesWithStopSep(t *testing.T) {
	a := &fakeState{val: 1}
	b := &fakeState{val: 1}
	if StopJoin[*fakeState](a, []*fakeState{b}) != StopSep[*fakeState](a, []*fakeState{b}) {
		t.Errorf("StopJoin and StopSep should agree on the same inputs")
	}
}

func TestMergeSepAlwaysNoOp(t *testing.T) {
	if MergeSep[int]() != NoOp {
		t.Errorf("MergeSep should always report NoOp")
	}
}

func minInt(a, b int) int {
	if b < a {
		return b
	}
	return a
}

func TestMergeJoinReportsMergedOnChange(t *testing.T) {
	self := 5
	outcome := MergeJoin(&self, 3, func(a, b int) bool { return a == b }, minInt)
	if outcome != Merged || self != 3 {
		t.Errorf("got outcome=%v self=%d, want Merged and self=3", outcome, self)
	}
}

func TestMergeJoinReportsNoOpWhenUnchanged(t *testing.T) {
	self := 3
	outcome := MergeJoin(&self, 5, func(a, b int) bool { return a == b }, minInt)
	if outcome != NoOp || self != 3 {
		t.Errorf("got outcome=%v self=%d, want NoOp and self unchanged at 3", outcome, self)
	}
}
