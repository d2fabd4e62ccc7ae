package lattice

import (
	"sort"

	"github.com/corrinlane/latticeff/elements"
)

// ClusterReference is one entry in the fixed library of inorganic-cluster
// reference subgraphs consulted during DetectClusters: spec.md's example
// is the copper paddlewheel, two Cu bridged by four carboxylate oxygens.
type ClusterReference struct {
	Label     string
	Elements  []string    // element per reference node, index = reference node id
	Distances [][]float64 // symmetric intra-reference distance matrix, angstroms
}

// clusterTol is the distance-agreement tolerance spec.md fixes for
// correspondence-graph edges: 0.1 Å.
const clusterTol = 0.1

// bfsDepth is the neighbourhood radius spec.md fixes for cluster
// detection: 5 bonds from the candidate metal.
const bfsDepth = 5

// CuPaddlewheel: two Cu atoms 2.64 Å apart (the characteristic Cu-Cu
// paddlewheel distance) each coordinated to four bridging carboxylate
// oxygens at 1.96 Å, the oxygens arranged in a square around the Cu-Cu
// axis (2.049 Å between adjacent oxygens, 2.898 Å across the diagonal).
var CuPaddlewheel = ClusterReference{
	Label:    "Cu paddlewheel",
	Elements: []string{"Cu", "Cu", "O", "O", "O", "O"},
	Distances: [][]float64{
		{0.00, 2.64, 1.96, 1.96, 1.96, 1.96},
		{2.64, 0.00, 1.96, 1.96, 1.96, 1.96},
		{1.96, 1.96, 0.00, 2.049, 2.898, 2.049},
		{1.96, 1.96, 2.049, 0.00, 2.049, 2.898},
		{1.96, 1.96, 2.898, 2.049, 0.00, 2.049},
		{1.96, 1.96, 2.049, 2.898, 2.049, 0.00},
	},
}

// ClusterLibrary is the fixed set of reference subgraphs consulted for
// every candidate metal atom.
var ClusterLibrary = []ClusterReference{CuPaddlewheel}

// correspondenceNode is one candidate (graph atom, reference atom) pairing.
type correspondenceNode struct {
	graphID int
	refIdx  int
}

// DetectClusters consults ClusterLibrary against every metal atom's
// depth-5 neighbourhood, via a correspondence graph and maximum-clique
// search, and sets Atom.SpecialFlag on every atom of a confirmed match.
// Matched atoms are removed from the candidate pool before recursing on
// the remaining metals, per spec.md §4.2.
func (pg *Graph) DetectClusters() {
	matched := make(map[int]bool)

	var metals []int
	for _, id := range pg.AtomIDs() {
		if elements.Metals[pg.atoms[id].Element] {
			metals = append(metals, id)
		}
	}
	sort.Ints(metals)

	dm := pg.DistanceMatrix()
	dmIndex := make(map[int]int, len(dm.ids))
	for i, id := range dm.ids {
		dmIndex[id] = i
	}

	for _, metal := range metals {
		if matched[metal] {
			continue
		}
		neighborhood := pg.bfsNeighborhood(metal, bfsDepth, matched)
		for _, ref := range ClusterLibrary {
			clique, ok := pg.matchReference(neighborhood, ref, matched, dm, dmIndex)
			if !ok {
				continue
			}
			for _, node := range clique {
				pg.atoms[node.graphID].SpecialFlag = ref.Label
				matched[node.graphID] = true
			}
			break
		}
	}
}

// bfsNeighborhood returns every atom id within depth bonds of start,
// excluding atoms already matched into an earlier cluster.
func (pg *Graph) bfsNeighborhood(start, depth int, matched map[int]bool) []int {
	visited := map[int]int{start: 0}
	queue := []int{start}
	var out []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !matched[cur] {
			out = append(out, cur)
		}
		if visited[cur] >= depth {
			continue
		}
		for _, n := range pg.Neighbors(cur) {
			if _, seen := visited[n]; !seen {
				visited[n] = visited[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	return out
}

// matchReference builds the correspondence graph between neighborhood
// atoms and ref's nodes, then searches for a maximum clique covering
// every reference node exactly once. Intra-graph distances are O(1)
// lookups against dm (indexed via dmIndex), rather than recomputing
// MinImageDistance for every candidate pair.
func (pg *Graph) matchReference(neighborhood []int, ref ClusterReference, matched map[int]bool, dm *DistanceMatrix, dmIndex map[int]int) ([]correspondenceNode, bool) {
	var nodes []correspondenceNode
	for _, gid := range neighborhood {
		if matched[gid] {
			continue
		}
		elem := pg.atoms[gid].Element
		for ri, relem := range ref.Elements {
			if elem == relem {
				nodes = append(nodes, correspondenceNode{graphID: gid, refIdx: ri})
			}
		}
	}
	if len(nodes) < len(ref.Elements) {
		return nil, false
	}

	adj := make([][]bool, len(nodes))
	for i := range adj {
		adj[i] = make([]bool, len(nodes))
	}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if a.graphID == b.graphID || a.refIdx == b.refIdx {
				continue
			}
			gd := dm.At(dmIndex[a.graphID], dmIndex[b.graphID])
			rd := ref.Distances[a.refIdx][b.refIdx]
			if abs(gd-rd) <= clusterTol {
				adj[i][j] = true
				adj[j][i] = true
			}
		}
	}

	clique := maxClique(adj)
	if len(clique) != len(ref.Elements) {
		return nil, false
	}
	seenRef := make(map[int]bool, len(ref.Elements))
	out := make([]correspondenceNode, 0, len(clique))
	for _, idx := range clique {
		n := nodes[idx]
		if seenRef[n.refIdx] {
			return nil, false
		}
		seenRef[n.refIdx] = true
		out = append(out, n)
	}
	return out, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// maxClique runs Bron-Kerbosch without pivoting over an adjacency
// matrix and returns the node indices of the largest clique found. The
// correspondence graphs here have under 20 nodes, so the exponential
// worst case never matters in practice.
func maxClique(adj [][]bool) []int {
	n := len(adj)
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	var best []int
	var bk func(r, p, x []int)
	bk = func(r, p, x []int) {
		if len(p) == 0 && len(x) == 0 {
			if len(r) > len(best) {
				best = append([]int(nil), r...)
			}
			return
		}
		for i := 0; i < len(p); i++ {
			v := p[i]
			var np, nx []int
			for _, u := range p {
				if adj[v][u] {
					np = append(np, u)
				}
			}
			for _, u := range x {
				if adj[v][u] {
					nx = append(nx, u)
				}
			}
			bk(append(r, v), np, nx)
			p = append(p[:i], p[i+1:]...)
			x = append(x, v)
			i--
		}
	}
	bk(nil, all, nil)
	return best
}
