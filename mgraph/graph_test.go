package mgraph

import "testing"

func TestAddNodeIDsStartAtOne(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	if a != 1 || b != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", a, b)
	}
}

func TestAddEdgeCanonicalOrdering(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()
	id, err := g.AddEdge(b, a)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := g.Edge(id)
	if !ok {
		t.Fatal("edge not found")
	}
	lo, hi := e.Canon()
	if lo != a || hi != b {
		t.Fatalf("expected canon (%d,%d) got (%d,%d)", a, b, lo, hi)
	}
}

func TestAddEdgeMissingEndpoint(t *testing.T) {
	g := New()
	a := g.AddNode()
	if _, err := g.AddEdge(a, 99); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestNeighborsAndDegree(t *testing.T) {
	g := New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	if _, err := g.AddEdge(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddEdge(a, c); err != nil {
		t.Fatal(err)
	}
	if got := g.Degree(a); got != 2 {
		t.Fatalf("expected degree 2 got %d", got)
	}
	neighbors := g.Neighbors(a)
	if len(neighbors) != 2 || neighbors[0] != b || neighbors[1] != c {
		t.Fatalf("unexpected neighbor order: %v", neighbors)
	}
}

func TestRemoveNodeRemovesIncidentEdges(t *testing.T) {
	g := New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	if _, err := g.AddEdge(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddEdge(b, c); err != nil {
		t.Fatal(err)
	}
	g.RemoveNode(b)
	if g.HasNode(b) {
		t.Fatal("node b should be gone")
	}
	if g.NumEdges() != 0 {
		t.Fatalf("expected 0 edges after removing shared node, got %d", g.NumEdges())
	}
	if g.Degree(a) != 0 || g.Degree(c) != 0 {
		t.Fatal("dangling adjacency entries left behind")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	a, b := g.AddNode(), g.AddNode()
	if _, err := g.AddEdge(a, b); err != nil {
		t.Fatal(err)
	}
	clone := g.Clone()
	clone.RemoveNode(a)
	if !g.HasNode(a) {
		t.Fatal("mutating the clone mutated the original")
	}
	if g.NumEdges() != 1 {
		t.Fatal("original edge count changed")
	}
}

func TestEdgeBetween(t *testing.T) {
	g := New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	eid, _ := g.AddEdge(a, b)
	if got, ok := g.EdgeBetween(a, b); !ok || got != eid {
		t.Fatalf("expected to find edge %d, got %d ok=%v", eid, got, ok)
	}
	if _, ok := g.EdgeBetween(a, c); ok {
		t.Fatal("expected no edge between a and c")
	}
}
