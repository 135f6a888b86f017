// Package lattice provides the join-semilattice primitives the abstract
// domains in location/branchbound/unwind/compound build their states on.
package lattice

// JoinSemiLattice is a type with a total join operation: every pair of
// values has a least upper bound. Join must be idempotent, commutative and
// associative; LessEq must be the order induced by Join (a <= b iff
// Join(a,b) == b).
type JoinSemiLattice[T any] interface {
	Join(other T) T
	LessEq(other T) bool
	Equal(other T) bool
}

// PartialJoinSemiLattice is for domains where not every pair of values has
// a join (e.g. two genuinely incomparable concrete values with no common
// abstraction weaker than "anything"). PartialJoin returns ok=false when no upper
// bound exists in the domain; callers combine this with Simple to recover
// a total lattice by falling back to Top.
type PartialJoinSemiLattice[T any] interface {
	PartialJoin(other T) (joined T, ok bool)
	LessEq(other T) bool
	Equal(other T) bool
}

// Product composes two join-semilattices component-wise: (a1,b1) <= (a2,b2)
// iff a1<=a2 and b1<=b2, and join is component-wise join. This is the
// lattice underlying compound.Pair.
type Product[A JoinSemiLattice[A], B JoinSemiLattice[B]] struct {
	First  A
	Second B
}

func (p Product[A, B]) Join(other Product[A, B]) Product[A, B] {
	return Product[A, B]{First: p.First.Join(other.First), Second: p.Second.Join(other.Second)}
}

func (p Product[A, B]) LessEq(other Product[A, B]) bool {
	return p.First.LessEq(other.First) && p.Second.LessEq(other.Second)
}

func (p Product[A, B]) Equal(other Product[A, B]) bool {
	return p.First.Equal(other.First) && p.Second.Equal(other.Second)
}
