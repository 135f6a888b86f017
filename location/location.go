// Package location implements the program-counter tracking domain: the
// flat lattice of pcode.Addr, its transfer relation over the IR op
// taxonomy, and the call-policy switch controlling how Call/IndirectCall
// sites are treated.
package location

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/lattice"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/state"
)

// CallBehavior selects how State.Transfer treats Call and IndirectCall
// ops. CallOther never consults this switch: it always falls through to
// the next instruction (see Open Question 1 in DESIGN.md).
type CallBehavior uint8

const (
	// CallBranch treats a call like an intra-procedural branch: the
	// successor is the call target, the return address is never visited.
	CallBranch CallBehavior = iota
	// CallStepOver treats a call as opaque and resumes at the
	// instruction after it, never visiting the callee.
	CallStepOver
	// CallTerminate treats a call as a dead end: no successor at all.
	CallTerminate
)

// State is the flat-lattice abstract state tracking "the current address is
// exactly A, or could be anything (Top)". Bottom never occurs in practice:
// every reachable state carries a concrete address until widened to Top by
// an indirect branch/call.
//
// cpa.Run is instantiated with S = *State: Merge has a pointer receiver so
// it can fold information into a reached entry in place.
type State struct {
	addr     lattice.Flat[pcode.Addr]
	behavior CallBehavior
	logger   *zap.Logger
}

// New builds the initial state at entry, under the given call behavior.
// A nil logger is replaced with a no-op logger.
func New(entry pcode.Addr, behavior CallBehavior, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{addr: lattice.Value(entry), behavior: behavior, logger: logger}
}

// Addr returns the concrete address, or false if this state is Top.
func (s State) Addr() (pcode.Addr, bool) { return s.addr.Get() }

func (s State) Equal(other *State) bool {
	return s.addr.Equal(other.addr) && s.behavior == other.behavior
}

func (s State) LessEq(other *State) bool {
	return s.addr.LessEq(other.addr)
}

// Merge is sep-style: distinct locations are never combined, each is kept
// as its own reached entry. See DESIGN.md Open Question 3.
func (s *State) Merge(other *State) state.MergeOutcome {
	return state.NoOp
}

// Stop reports whether s is already covered by a state in reached.
func (s State) Stop(reached []*State) bool {
	return state.StopSep[*State](&s, reached)
}

// Transfer implements the IR-address transfer table (C9): the successor
// set of executing op from the current address.
func (s State) Transfer(op pcode.Op) []*State {
	addr, ok := s.addr.Get()
	if !ok {
		// Already Top: no further information can be derived.
		return nil
	}
	next := addr.Next(op.Size)

	switch op.Kind {
	case pcode.KindBranch:
		return s.resolved(op.Target, addr.Machine, op)
	case pcode.KindConditionalBranch:
		dests := s.resolved(op.Target, addr.Machine, op)
		return append(dests, s.at(next))
	case pcode.KindIndirectBranch:
		return []*State{s.top()}
	case pcode.KindCall:
		return s.call(op, addr, next)
	case pcode.KindIndirectCall:
		switch s.behavior {
		case CallStepOver:
			return []*State{s.at(next)}
		case CallTerminate:
			return nil
		default: // CallBranch: target unknown, widen
			return []*State{s.top()}
		}
	case pcode.KindCallOther:
		// CallOther never consults CallBehavior: always falls through.
		return []*State{s.at(next)}
	case pcode.KindReturn:
		return nil
	default: // KindData
		return []*State{s.at(next)}
	}
}

func (s State) call(op pcode.Op, addr pcode.Addr, next pcode.Addr) []*State {
	switch s.behavior {
	case CallStepOver:
		return []*State{s.at(next)}
	case CallTerminate:
		return nil
	default: // CallBranch
		return s.resolved(op.Target, addr.Machine, op)
	}
}

func (s State) resolved(target pcode.VarNode, from uint64, op pcode.Op) []*State {
	dest, ok := target.Resolve(from)
	if !ok {
		s.logger.Warn("unresolvable branch target, widening to top",
			zap.String("mnemonic", op.Mnemonic))
		return []*State{s.top()}
	}
	return []*State{s.at(pcode.Addr{Machine: dest, Slot: 0})}
}

func (s State) at(a pcode.Addr) *State {
	return &State{addr: lattice.Value(a), behavior: s.behavior, logger: s.logger}
}

func (s State) top() *State {
	return &State{addr: lattice.Top[pcode.Addr](), behavior: s.behavior, logger: s.logger}
}
