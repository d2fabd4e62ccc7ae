package lattice

// aromaticCandidateElements is the element set a ring's members must be
// drawn from to qualify for aromatic reclassification. Deliberately
// narrower than elements.Organics (no H, F, Cl, B: those never appear as
// in-ring atoms here).
var aromaticCandidateElements = map[string]bool{
	"C": true, "N": true, "O": true, "S": true,
}

// maxRingLength bounds the candidate rings kept during cycle detection,
// per spec.md's "shortest paths ... of length <= 10".
const maxRingLength = 10

// AssignInitialHybridization sets each atom's hybridization from its
// element and degree, per spec.md's table, then runs cycle detection and
// reclassifies members of small all-degree-<=3 {C,N,O,S} rings as
// aromatic.
func (pg *Graph) AssignInitialHybridization() {
	for _, id := range pg.AtomIDs() {
		a := pg.atoms[id]
		deg := pg.Degree(id)
		switch a.Element {
		case "C":
			switch {
			case deg >= 4:
				a.Hybridization = SP3
			case deg == 3:
				a.Hybridization = SP2
			default:
				a.Hybridization = SP
			}
		case "N":
			switch {
			case deg >= 3:
				a.Hybridization = SP3
			case deg == 2:
				a.Hybridization = SP2
			default:
				a.Hybridization = SP
			}
		case "O", "S":
			switch {
			case deg >= 2:
				a.Hybridization = SP3
			default:
				a.Hybridization = SP2
			}
		default:
			a.Hybridization = SP3
		}
	}

	cycles := pg.detectCandidateRings()
	for _, cyc := range cycles {
		if !pg.ringQualifiesAromatic(cyc) {
			continue
		}
		idx := pg.addRing(cyc)
		for _, id := range cyc {
			a := pg.atoms[id]
			a.Hybridization = Aromatic
			a.Rings = append(a.Rings, idx)
		}
	}
}

func (pg *Graph) ringQualifiesAromatic(cyc []int) bool {
	for _, id := range cyc {
		a := pg.atoms[id]
		if pg.Degree(id) > 3 {
			return false
		}
		if !aromaticCandidateElements[a.Element] {
			return false
		}
	}
	return true
}

// detectCandidateRings implements spec.md's cycle detection: for every
// atom u and neighbour v, remove (u,v), enumerate all shortest paths
// u->v of length <= maxRingLength, reinstate the edge, and record each
// path (closed by the removed edge) as a candidate ring.
func (pg *Graph) detectCandidateRings() [][]int {
	var rings [][]int
	for _, u := range pg.AtomIDs() {
		for _, eid := range append([]int(nil), pg.IncidentEdges(u)...) {
			b := pg.bonds[eid]
			v := b.Other(u)
			if v == u {
				continue
			}
			paths := pg.shortestPathsExcludingEdge(u, v, eid)
			for _, p := range paths {
				if len(p) <= maxRingLength {
					rings = append(rings, p)
				}
			}
		}
	}
	return rings
}

// shortestPathsExcludingEdge returns every shortest path from u to v (as
// ordered atom-id lists, u first, v last) in pg with the single edge
// excludeEdge removed from consideration. Multiple parallel edges
// between two atoms (periodic-image duplicates) are otherwise still
// usable.
func (pg *Graph) shortestPathsExcludingEdge(u, v, excludeEdge int) [][]int {
	dist := make(map[int]int)
	dist[u] = 0
	queue := []int{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, eid := range pg.IncidentEdges(cur) {
			if eid == excludeEdge {
				continue
			}
			b := pg.bonds[eid]
			n := b.Other(cur)
			if _, seen := dist[n]; !seen {
				dist[n] = dist[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	if _, ok := dist[v]; !ok {
		return nil
	}

	var paths [][]int
	var walk func(node int, acc []int)
	walk = func(node int, acc []int) {
		acc = append(acc, node)
		if node == u {
			rev := make([]int, len(acc))
			for i, x := range acc {
				rev[len(acc)-1-i] = x
			}
			paths = append(paths, rev)
			return
		}
		for _, eid := range pg.IncidentEdges(node) {
			if eid == excludeEdge {
				continue
			}
			b := pg.bonds[eid]
			n := b.Other(node)
			if d, ok := dist[n]; ok && d == dist[node]-1 {
				walk(n, append([]int(nil), acc...))
			}
		}
	}
	walk(v, nil)
	return paths
}
