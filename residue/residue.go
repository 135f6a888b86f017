// Package residue implements the pluggable observer mechanism (C5): a
// Residue is notified of every new state discovered and every merge the
// CPA engine performs, and produces some artifact (a CFG, a flat list of
// reached states, a witness path) once the fixed point is reached.
package residue

import "github.com/Urethramancer/m68kcfa/pcode"

// Residue receives the side effects of the fixed-point computation as they
// happen and reduces them into a final artifact of type O once the engine
// finishes. op is nil for the synthetic initial-state event.
type Residue[S any, O any] interface {
	OnNew(prev, next S, op *pcode.Op)
	OnMerged(prev, dest, merged S, op *pcode.Op)
	Finalize() O
}

// Pair runs two residues side by side against the same stream of events,
// producing both of their artifacts. Useful for e.g. building a CFG and a
// flat reached list in the same run without re-executing the analysis.
type Pair[S, O1, O2 any] struct {
	First  Residue[S, O1]
	Second Residue[S, O2]
}

func NewPair[S, O1, O2 any](first Residue[S, O1], second Residue[S, O2]) *Pair[S, O1, O2] {
	return &Pair[S, O1, O2]{First: first, Second: second}
}

func (p *Pair[S, O1, O2]) OnNew(prev, next S, op *pcode.Op) {
	p.First.OnNew(prev, next, op)
	p.Second.OnNew(prev, next, op)
}

func (p *Pair[S, O1, O2]) OnMerged(prev, dest, merged S, op *pcode.Op) {
	p.First.OnMerged(prev, dest, merged, op)
	p.Second.OnMerged(prev, dest, merged, op)
}

type pairOutput[O1, O2 any] struct {
	First  O1
	Second O2
}

func (p *Pair[S, O1, O2]) Finalize() pairOutput[O1, O2] {
	return pairOutput[O1, O2]{First: p.First.Finalize(), Second: p.Second.Finalize()}
}
