/*
Package mgraph provides a small undirected multigraph substrate: nodes and
edges identified by per-graph integer ids, ordered adjacency, and a stable
canonical ordering of each edge's endpoints kept separate from the
unordered adjacency storage.

It deliberately knows nothing about chemistry. lattice.Graph embeds a
*mgraph.Graph and layers atoms, bonds, and periodic-image bookkeeping on
top of it.
*/
package mgraph

import "fmt"

// Node is the minimal identity of a graph vertex. Callers embed Node (or
// just its id) in their own richer node types.
type Node struct {
	ID int
}

// Edge is the minimal identity of a graph edge, plus the canonical
// (lo, hi) ordering of its endpoints. Canon is computed once, when the
// edge is added, and never recomputed from Node order after that, so
// that terms derived from the edge (angles sharing it, dihedrals
// anchored on it) can rely on a single stable ordering for the lifetime
// of the edge.
type Edge struct {
	ID       int
	U, V     int
	canonLo  int
	canonHi  int
}

// Canon returns the edge's cached canonical endpoint ordering.
func (e Edge) Canon() (lo, hi int) {
	return e.canonLo, e.canonHi
}

// Graph is an undirected multigraph: multiple edges between the same pair
// of nodes are permitted (the lattice package uses this for periodic
// images that would otherwise collide on a single Go map key).
type Graph struct {
	nodes     map[int]Node
	edges     map[int]Edge
	adjacency map[int][]int // nodeID -> ordered list of incident edge IDs
	nextNode  int
	nextEdge  int
}

// New returns an empty Graph. IDs are assigned starting at 1, per
// spec: "Unique within a graph by integer id assigned in insertion order
// starting at 1."
func New() *Graph {
	return &Graph{
		nodes:     make(map[int]Node),
		edges:     make(map[int]Edge),
		adjacency: make(map[int][]int),
	}
}

// AddNode allocates and returns a new node id.
func (g *Graph) AddNode() int {
	g.nextNode++
	id := g.nextNode
	g.nodes[id] = Node{ID: id}
	g.adjacency[id] = nil
	return id
}

// HasNode reports whether id names a live node.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node ids in insertion order.
func (g *Graph) NodeIDs() []int {
	ids := make([]int, 0, len(g.nodes))
	for i := 1; i <= g.nextNode; i++ {
		if _, ok := g.nodes[i]; ok {
			ids = append(ids, i)
		}
	}
	return ids
}

// RemoveNode deletes a node and every edge incident to it.
func (g *Graph) RemoveNode(id int) {
	for _, eid := range append([]int(nil), g.adjacency[id]...) {
		g.RemoveEdge(eid)
	}
	delete(g.nodes, id)
	delete(g.adjacency, id)
}

// AddEdge connects u and v and returns the new edge id. The canonical
// ordering is min(u,v), max(u,v); callers that need a different
// canonical rule (e.g. keeping a specific endpoint first regardless of
// numeric order) should not rely on Canon and should track their own
// ordering alongside the edge.
func (g *Graph) AddEdge(u, v int) (int, error) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return 0, fmt.Errorf("mgraph: AddEdge: endpoint does not exist (u=%d v=%d)", u, v)
	}
	g.nextEdge++
	id := g.nextEdge
	lo, hi := u, v
	if lo > hi {
		lo, hi = hi, lo
	}
	g.edges[id] = Edge{ID: id, U: u, V: v, canonLo: lo, canonHi: hi}
	g.adjacency[u] = append(g.adjacency[u], id)
	if v != u {
		g.adjacency[v] = append(g.adjacency[v], id)
	}
	return id, nil
}

// RemoveEdge deletes an edge and its adjacency-list entries.
func (g *Graph) RemoveEdge(id int) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	g.adjacency[e.U] = removeValue(g.adjacency[e.U], id)
	if e.V != e.U {
		g.adjacency[e.V] = removeValue(g.adjacency[e.V], id)
	}
	delete(g.edges, id)
}

func removeValue(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id int) (Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// EdgeIDs returns all edge ids in insertion order.
func (g *Graph) EdgeIDs() []int {
	ids := make([]int, 0, len(g.edges))
	for i := 1; i <= g.nextEdge; i++ {
		if _, ok := g.edges[i]; ok {
			ids = append(ids, i)
		}
	}
	return ids
}

// Incident returns the edge ids touching node id, in the order they were
// added (ordered adjacency, not the unordered map iteration order).
func (g *Graph) Incident(id int) []int {
	return g.adjacency[id]
}

// Neighbors returns the other endpoint of every edge incident to id, in
// adjacency order. A self-loop contributes id itself.
func (g *Graph) Neighbors(id int) []int {
	inc := g.Incident(id)
	out := make([]int, 0, len(inc))
	for _, eid := range inc {
		e := g.edges[eid]
		if e.U == id {
			out = append(out, e.V)
		} else {
			out = append(out, e.U)
		}
	}
	return out
}

// Degree is len(Incident(id)).
func (g *Graph) Degree(id int) int {
	return len(g.adjacency[id])
}

// NumNodes and NumEdges report live counts (post-removal).
func (g *Graph) NumNodes() int { return len(g.nodes) }
func (g *Graph) NumEdges() int { return len(g.edges) }

// EdgeBetween returns the first edge id connecting u and v, if any.
func (g *Graph) EdgeBetween(u, v int) (int, bool) {
	for _, eid := range g.adjacency[u] {
		e := g.edges[eid]
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			return eid, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of g with an identical id space: every node
// and edge keeps its id, and the id counters carry over.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		nodes:     make(map[int]Node, len(g.nodes)),
		edges:     make(map[int]Edge, len(g.edges)),
		adjacency: make(map[int][]int, len(g.adjacency)),
		nextNode:  g.nextNode,
		nextEdge:  g.nextEdge,
	}
	for k, v := range g.nodes {
		out.nodes[k] = v
	}
	for k, v := range g.edges {
		out.edges[k] = v
	}
	for k, v := range g.adjacency {
		out.adjacency[k] = append([]int(nil), v...)
	}
	return out
}
