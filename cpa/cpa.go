// Package cpa implements the generic Configurable Program Analysis engine
// (C6): a single-threaded, LIFO-worklist fixed-point loop over any domain
// satisfying state.AbstractState, driven by a pcode.Store and observed
// through a residue.Residue.
package cpa

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/residue"
	"github.com/Urethramancer/m68kcfa/state"
)

// waitlist is a LIFO multiset of pending states, grounded on the
// disassembler package's addrQueue push/pop worklist idiom but run
// depth-first (LIFO) instead of addrQueue's breadth-first (FIFO) order,
// per the engine's single-threaded depth-first exploration requirement.
type waitlist[S any] struct {
	items []S
}

func (w *waitlist[S]) push(s S) {
	w.items = append(w.items, s)
}

func (w *waitlist[S]) pop() (S, bool) {
	var zero S
	if len(w.items) == 0 {
		return zero, false
	}
	last := len(w.items) - 1
	s := w.items[last]
	w.items = w.items[:last]
	return s, true
}

func (w *waitlist[S]) empty() bool {
	return len(w.items) == 0
}

// Run drives the fixed point from s0 over store, notifying r of every new
// state and merge, and returns the final reached set together with r's
// finalized artifact. logger may be nil.
func Run[S state.AbstractState[S], O any](store pcode.Store, s0 S, r residue.Residue[S, O], logger *zap.Logger) ([]S, O) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var reached []S
	var wl waitlist[S]

	wl.push(s0)
	r.OnNew(s0, s0, nil)
	reached = append(reached, s0)

	for !wl.empty() {
		cur, _ := wl.pop()

		op, ok := opAt(store, cur, logger)
		if !ok {
			continue
		}

		successors := cur.Transfer(op)
		for _, next := range successors {
			current := next
			for i := range reached {
				outcome := reached[i].Merge(current)
				if outcome == state.Merged {
					r.OnMerged(cur, current, reached[i], &op)
					current = reached[i]
					wl.push(current)
				}
			}
			if !current.Stop(reached) {
				reached = append(reached, current)
				r.OnNew(cur, current, &op)
				wl.push(current)
			}
		}
	}

	return reached, r.Finalize()
}

func opAt[S any](store pcode.Store, cur S, logger *zap.Logger) (pcode.Op, bool) {
	carrier, ok := any(cur).(pcode.AddrCarrier)
	if !ok {
		logger.Warn("state does not expose an address, cannot look up op")
		return pcode.Op{}, false
	}
	addr, ok := carrier.Addr()
	if !ok {
		return pcode.Op{}, false
	}
	op, ok := store.GetOp(addr)
	if !ok {
		logger.Debug("no op at address, dropping from exploration", zap.Stringer("addr", addr))
		return pcode.Op{}, false
	}
	return op, true
}
