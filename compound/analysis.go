package compound

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/branchbound"
	"github.com/Urethramancer/m68kcfa/cfg"
	"github.com/Urethramancer/m68kcfa/cpa"
	"github.com/Urethramancer/m68kcfa/location"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/residue"
)

// RunLocationBranchBound drives the location x branchbound compound to a
// fixed point via the CPA engine, projecting the residue onto a
// location-keyed CFG exactly as the plain location analysis does.
func RunLocationBranchBound(store pcode.Store, entry pcode.Addr, behavior location.CallBehavior, branchLimit int, logger *zap.Logger) ([]*Pair[location.State, branchbound.State], *cfg.Graph[pcode.Addr, pcode.Op]) {
	s0 := NewLocationBranchBound(entry, behavior, branchLimit, logger)
	r := residue.NewCfgResidue[*Pair[location.State, branchbound.State]](func(p *Pair[location.State, branchbound.State]) pcode.Addr {
		a, _ := p.Addr()
		return a
	})
	return cpa.Run[*Pair[location.State, branchbound.State], *cfg.Graph[pcode.Addr, pcode.Op]](store, s0, r, logger)
}
