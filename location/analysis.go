package location

import (
	"go.uber.org/zap"

	"github.com/Urethramancer/m68kcfa/cfg"
	"github.com/Urethramancer/m68kcfa/cpa"
	"github.com/Urethramancer/m68kcfa/pcode"
	"github.com/Urethramancer/m68kcfa/residue"
)

// NewAnalysis builds the "direct location" CPA run: no bound or unwind
// domain attached, just reachability over addresses with the given call
// policy. This is the supplemented convenience wrapper from jingle's
// direct_location module (see SPEC_FULL.md SUPPLEMENTED FEATURES) and
// covers scenarios S1-S3 from the distilled spec's testable properties.
func NewAnalysis(store pcode.Store, entry pcode.Addr, behavior CallBehavior, logger *zap.Logger) ([]*State, *cfg.Graph[pcode.Addr, pcode.Op]) {
	s0 := New(entry, behavior, logger)
	r := residue.NewCfgResidue[*State](func(s *State) pcode.Addr {
		a, _ := s.Addr()
		return a
	})
	reached, g := cpa.Run[*State, *cfg.Graph[pcode.Addr, pcode.Op]](store, s0, r, logger)
	return reached, g
}
