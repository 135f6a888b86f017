package residue

import (
	"github.com/Urethramancer/m68kcfa/cfg"
	"github.com/Urethramancer/m68kcfa/pcode"
)

// CfgResidue reifies the fixed point as a cfg.Graph keyed by a caller
// projection from a state to its node identity (typically the concrete
// address a location.State carries). Grounded on jingle's CfgReducer.
type CfgResidue[S any, K comparable] struct {
	key   func(S) K
	graph *cfg.Graph[K, pcode.Op]
}

func NewCfgResidue[S any, K comparable](key func(S) K) *CfgResidue[S, K] {
	return &CfgResidue[S, K]{key: key, graph: cfg.New[K, pcode.Op]()}
}

func opEqual(a, b pcode.Op) bool {
	return a.Kind == b.Kind && a.Mnemonic == b.Mnemonic && a.Target == b.Target
}

func (c *CfgResidue[S, K]) OnNew(prev, next S, op *pcode.Op) {
	c.graph.AddNode(c.key(next))
	if op != nil {
		c.graph.AddEdge(c.key(prev), c.key(next), *op, opEqual)
	}
}

func (c *CfgResidue[S, K]) OnMerged(prev, dest, merged S, op *pcode.Op) {
	c.graph.AddNode(c.key(merged))
	if op != nil {
		c.graph.AddEdge(c.key(prev), c.key(dest), *op, opEqual)
	}
	if c.key(dest) != c.key(merged) {
		c.graph.ReplaceAndCombineNodes(c.key(dest), c.key(merged), opEqual)
	}
}

func (c *CfgResidue[S, K]) Finalize() *cfg.Graph[K, pcode.Op] {
	return c.graph
}
