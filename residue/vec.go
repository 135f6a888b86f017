package residue

import "github.com/Urethramancer/m68kcfa/pcode"

// VecResidue accumulates every distinct state reached, replacing a stale
// entry with its merged successor in place (by the caller-supplied
// equality) rather than growing the list on every merge. Grounded on
// jingle's VecReducer, which does the same replace-on-merge-by-equality.
type VecResidue[S any] struct {
	equal   func(a, b S) bool
	reached []S
}

func NewVecResidue[S any](equal func(a, b S) bool) *VecResidue[S] {
	return &VecResidue[S]{equal: equal}
}

func (v *VecResidue[S]) OnNew(prev, next S, op *pcode.Op) {
	for _, r := range v.reached {
		if v.equal(r, next) {
			return
		}
	}
	v.reached = append(v.reached, next)
}

func (v *VecResidue[S]) OnMerged(prev, dest, merged S, op *pcode.Op) {
	for i, r := range v.reached {
		if v.equal(r, dest) {
			v.reached[i] = merged
			return
		}
	}
	v.reached = append(v.reached, merged)
}

func (v *VecResidue[S]) Finalize() []S {
	out := make([]S, len(v.reached))
	copy(out, v.reached)
	return out
}
