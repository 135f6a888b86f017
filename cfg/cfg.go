// Package cfg is the control-flow graph data structure (C7): a directed
// multigraph of nodes keyed by a comparable type N, with edges labelled by
// data of type D (typically pcode.Op). It is the canonical residue
// artifact produced by residue.CfgResidue.
package cfg

import "github.com/emicklei/dot"

// Edge is one labelled directed edge from From to To.
type Edge[N comparable, D any] struct {
	From, To N
	Label    D
}

// Graph is an adjacency-map backed directed multigraph. AddNode is
// idempotent, and so is AddEdge when it is given an equalFn: adding an
// already-present node, or an already-present (From,To,Label) edge under
// that equalFn, is a no-op. AddEdge with a nil equalFn always appends.
type Graph[N comparable, D any] struct {
	nodes map[N]struct{}
	order []N
	edges []Edge[N, D]
}

// New returns an empty graph.
func New[N comparable, D any]() *Graph[N, D] {
	return &Graph[N, D]{nodes: make(map[N]struct{})}
}

// AddNode inserts n if not already present.
func (g *Graph[N, D]) AddNode(n N) {
	if _, ok := g.nodes[n]; ok {
		return
	}
	g.nodes[n] = struct{}{}
	g.order = append(g.order, n)
}

// HasNode reports whether n is in the graph.
func (g *Graph[N, D]) HasNode(n N) bool {
	_, ok := g.nodes[n]
	return ok
}

// AddEdge inserts an edge from->to labelled label, adding both endpoints as
// nodes if they are not already present. Re-adding an edge with an equal
// label (per equalFn) to the same pair is a no-op. A nil equalFn disables
// dedup entirely (every call appends a new edge); pass one whenever D
// should be compared for the idempotency to take effect.
func (g *Graph[N, D]) AddEdge(from, to N, label D, equalFn func(a, b D) bool) {
	g.AddNode(from)
	g.AddNode(to)
	if equalFn != nil {
		for _, e := range g.edges {
			if e.From == from && e.To == to && equalFn(e.Label, label) {
				return
			}
		}
	}
	g.edges = append(g.edges, Edge[N, D]{From: from, To: to, Label: label})
}

// Nodes returns all nodes in insertion order.
func (g *Graph[N, D]) Nodes() []N {
	out := make([]N, len(g.order))
	copy(out, g.order)
	return out
}

// Successors returns the distinct nodes n has an edge to.
func (g *Graph[N, D]) Successors(n N) []N {
	seen := make(map[N]struct{})
	var out []N
	for _, e := range g.edges {
		if e.From != n {
			continue
		}
		if _, ok := seen[e.To]; ok {
			continue
		}
		seen[e.To] = struct{}{}
		out = append(out, e.To)
	}
	return out
}

// LeafNodes returns every node with no outgoing edges.
func (g *Graph[N, D]) LeafNodes() []N {
	hasOut := make(map[N]bool)
	for _, e := range g.edges {
		hasOut[e.From] = true
	}
	var out []N
	for _, n := range g.order {
		if !hasOut[n] {
			out = append(out, n)
		}
	}
	return out
}

// ReplaceNode renames every occurrence of old to replacement across nodes
// and edge endpoints. If replacement already exists, edges incident to old
// are re-pointed to it and old is dropped (the two nodes are unified); any
// edges replacement already owned are preserved alongside the re-pointed
// ones. Use ReplaceAndCombineNodes when old's own edges should also be
// deduplicated against replacement's existing edges.
func (g *Graph[N, D]) ReplaceNode(old, replacement N) {
	if old == replacement || !g.HasNode(old) {
		return
	}
	g.AddNode(replacement)
	for i := range g.edges {
		if g.edges[i].From == old {
			g.edges[i].From = replacement
		}
		if g.edges[i].To == old {
			g.edges[i].To = replacement
		}
	}
	g.removeNode(old)
}

// ReplaceAndCombineNodes behaves like ReplaceNode but also drops any
// resulting duplicate edge (From,To) pairs per equalFn, keeping the
// earliest-inserted edge of each set of duplicates, whether it belonged to
// old or to replacement.
func (g *Graph[N, D]) ReplaceAndCombineNodes(old, replacement N, equalFn func(a, b D) bool) {
	if old == replacement || !g.HasNode(old) {
		return
	}
	g.AddNode(replacement)
	var kept []Edge[N, D]
	seen := make(map[[2]N][]D)
	for _, e := range g.edges {
		from, to := e.From, e.To
		if from == old {
			from = replacement
		}
		if to == old {
			to = replacement
		}
		key := [2]N{from, to}
		dup := false
		if equalFn != nil {
			for _, existing := range seen[key] {
				if equalFn(existing, e.Label) {
					dup = true
					break
				}
			}
		}
		if dup {
			continue
		}
		seen[key] = append(seen[key], e.Label)
		kept = append(kept, Edge[N, D]{From: from, To: to, Label: e.Label})
	}
	g.edges = kept
	g.removeNode(old)
}

func (g *Graph[N, D]) removeNode(n N) {
	delete(g.nodes, n)
	for i, o := range g.order {
		if o == n {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// DOT renders the graph in Graphviz DOT form, the interoperability format
// named in the external interfaces.
func (g *Graph[N, D]) DOT(nodeLabel func(N) string, edgeLabel func(D) string) string {
	dg := dot.NewGraph(dot.Directed)
	nodes := make(map[N]dot.Node)
	for _, n := range g.order {
		label := nodeLabel(n)
		nodes[n] = dg.Node(label)
	}
	for _, e := range g.edges {
		from, ok := nodes[e.From]
		if !ok {
			from = dg.Node(nodeLabel(e.From))
			nodes[e.From] = from
		}
		to, ok := nodes[e.To]
		if !ok {
			to = dg.Node(nodeLabel(e.To))
			nodes[e.To] = to
		}
		edge := dg.Edge(from, to)
		if edgeLabel != nil {
			edge.Label(edgeLabel(e.Label))
		}
	}
	return dg.String()
}
