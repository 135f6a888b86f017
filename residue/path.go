package residue

import "github.com/Urethramancer/m68kcfa/pcode"

// Path is a witness sequence of ops taken along one exploration branch.
// Grounded on jingle's path.rs ProgramPath/ProgramPathSegment, reworked for
// Go: Fork copies the whole slice, so forked paths share no storage, in
// place of the original's Rc-shared segment list.
type Path struct {
	ops []pcode.Op
}

// Fork returns a copy of p's history, safe to extend independently at a
// branch point.
func (p Path) Fork() Path {
	forked := make([]pcode.Op, len(p.ops))
	copy(forked, p.ops)
	return Path{ops: forked}
}

func (p Path) Ops() []pcode.Op {
	out := make([]pcode.Op, len(p.ops))
	copy(out, p.ops)
	return out
}

// PathResidue tracks, per distinct state reached, the path of ops that led
// to it. On merge, the surviving path is whichever was already recorded
// for the merged state (the first one found); only when none is recorded
// is prev's path, extended by the op, recorded for it. This residue is meant for producing a
// concrete witness for a reachability question, not an exhaustive
// enumeration of every path.
type PathResidue[S any] struct {
	equal func(a, b S) bool
	keys  []S
	paths []Path
}

func NewPathResidue[S any](equal func(a, b S) bool) *PathResidue[S] {
	return &PathResidue[S]{equal: equal}
}

// Record associates state s with path p, replacing any path already
// recorded for an equal state. OnNew and OnMerged call it with prev's path
// extended by the single last op, since the residue interface carries no
// op-sequence context beyond that op.
func (r *PathResidue[S]) Record(s S, p Path) {
	for i, k := range r.keys {
		if r.equal(k, s) {
			r.paths[i] = p
			return
		}
	}
	r.keys = append(r.keys, s)
	r.paths = append(r.paths, p)
}

func (r *PathResidue[S]) PathTo(s S) (Path, bool) {
	for i, k := range r.keys {
		if r.equal(k, s) {
			return r.paths[i], true
		}
	}
	return Path{}, false
}

func (r *PathResidue[S]) OnNew(prev, next S, op *pcode.Op) {
	base, _ := r.PathTo(prev)
	p := base.Fork()
	if op != nil {
		p.ops = append(p.ops, *op)
	}
	r.Record(next, p)
}

func (r *PathResidue[S]) OnMerged(prev, dest, merged S, op *pcode.Op) {
	if _, ok := r.PathTo(merged); ok {
		return
	}
	base, _ := r.PathTo(prev)
	p := base.Fork()
	if op != nil {
		p.ops = append(p.ops, *op)
	}
	r.Record(merged, p)
}

// Finalize returns every recorded (state, path) pair.
func (r *PathResidue[S]) Finalize() []PathEntry[S] {
	out := make([]PathEntry[S], len(r.keys))
	for i := range r.keys {
		out[i] = PathEntry[S]{State: r.keys[i], Path: r.paths[i]}
	}
	return out
}

type PathEntry[S any] struct {
	State S
	Path  Path
}
