package cfg

import (
	"sort"
	"testing"
)

func strEq(a, b string) bool { return a == b }

func TestAddEdgeIdempotent(t *testing.T) {
	g := New[int, string]()
	g.AddEdge(1, 2, "a", strEq)
	g.AddEdge(1, 2, "a", strEq)
	succ := g.Successors(1)
	if len(succ) != 1 || succ[0] != 2 {
		t.Errorf("got %v, want [2]", succ)
	}
	if len(g.edges) != 1 {
		t.Errorf("expected 1 edge after duplicate add, got %d", len(g.edges))
	}
}

func TestLeafNodes(t *testing.T) {
	g := New[int, string]()
	g.AddEdge(1, 2, "a", strEq)
	g.AddEdge(2, 3, "b", strEq)
	g.AddNode(4)
	leaves := g.LeafNodes()
	sort.Ints(leaves)
	if len(leaves) != 2 || leaves[0] != 3 || leaves[1] != 4 {
		t.Errorf("got %v, want [3 4]", leaves)
	}
}

func TestReplaceNode(t *testing.T) {
	g := New[int, string]()
	g.AddEdge(1, 2, "a", strEq)
	g.AddEdge(3, 2, "b", strEq)
	g.ReplaceNode(2, 5)
	if g.HasNode(2) {
		t.Errorf("old node 2 should be gone")
	}
	succ := g.Successors(1)
	if len(succ) != 1 || succ[0] != 5 {
		t.Errorf("got %v, want [5]", succ)
	}
}

func TestReplaceAndCombineNodesDedup(t *testing.T) {
	g := New[int, string]()
	g.AddEdge(1, 2, "a", strEq)
	g.AddEdge(1, 3, "a", strEq)
	g.ReplaceAndCombineNodes(2, 3, strEq)
	succ := g.Successors(1)
	if len(succ) != 1 || succ[0] != 3 {
		t.Errorf("got %v, want a single deduped edge to 3", succ)
	}
}
