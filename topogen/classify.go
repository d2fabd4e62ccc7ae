package topogen

import "github.com/corrinlane/latticeff/lattice"

// fragmentTol mirrors lattice's cluster-detection distance tolerance
// (0.1 A) for the pairwise correspondence-graph matching spec.md §4.4
// step 4 describes between carved-out subgraphs.
const fragmentTol = 0.1

// MoleculeType groups every carved subgraph spec.md's correspondence
// matching judged structurally identical.
type MoleculeType struct {
	Label    string
	Fragment ForceFieldName
	Members  []*lattice.Graph
}

// Size is the atom count shared by every member of the type.
func (mt *MoleculeType) Size() int {
	if len(mt.Members) == 0 {
		return 0
	}
	return mt.Members[0].NumAtoms()
}

// classifyFragments groups fragments into molecule types via pairwise
// correspondence-graph matching against each type's first member, in
// the order fragments were carved (deterministic given deterministic
// component ordering).
func classifyFragments(fragments []*lattice.Graph, cfg Config) []*MoleculeType {
	var types []*MoleculeType
	for _, frag := range fragments {
		placed := false
		for _, mt := range types {
			if sameFragmentType(mt.Members[0], frag) {
				mt.Members = append(mt.Members, frag)
				placed = true
				break
			}
		}
		if !placed {
			label := moleculeLabel(len(types) + 1)
			types = append(types, &MoleculeType{
				Label:    label,
				Fragment: cfg.forceFieldFor(label),
				Members:  []*lattice.Graph{frag},
			})
		}
	}
	return types
}

func moleculeLabel(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if n <= len(letters) {
		return "molecule_" + string(letters[n-1])
	}
	return "molecule_x"
}

// sameFragmentType reports whether a and b are the same size and admit a
// full correspondence-graph clique: a one-to-one element-preserving
// pairing of every atom in a with an atom in b such that every pairwise
// intra-fragment distance agrees within fragmentTol, per spec.md's
// "same-size components whose correspondence clique covers all nodes
// are declared the same molecule type".
func sameFragmentType(a, b *lattice.Graph) bool {
	if a.NumAtoms() != b.NumAtoms() {
		return false
	}
	aIDs, bIDs := a.AtomIDs(), b.AtomIDs()
	n := len(aIDs)
	if n == 0 {
		return true
	}

	type corrNode struct{ i, j int }
	var nodes []corrNode
	for i, aid := range aIDs {
		ae := a.Atom(aid).Element
		for j, bid := range bIDs {
			if ae == b.Atom(bid).Element {
				nodes = append(nodes, corrNode{i, j})
			}
		}
	}
	if len(nodes) < n {
		return false
	}

	adj := make([][]bool, len(nodes))
	for i := range adj {
		adj[i] = make([]bool, len(nodes))
	}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			p, q := nodes[i], nodes[j]
			if p.i == q.i || p.j == q.j {
				continue
			}
			da := a.MinImageDistance(a.Atom(aIDs[p.i]).Cartesian, a.Atom(aIDs[q.i]).Cartesian)
			db := b.MinImageDistance(b.Atom(bIDs[p.j]).Cartesian, b.Atom(bIDs[q.j]).Cartesian)
			if absFloat(da-db) <= fragmentTol {
				adj[i][j] = true
				adj[j][i] = true
			}
		}
	}

	clique := maxCliqueLocal(adj)
	if len(clique) != n {
		return false
	}
	seenA := make(map[int]bool, n)
	seenB := make(map[int]bool, n)
	for _, idx := range clique {
		p := nodes[idx]
		if seenA[p.i] || seenB[p.j] {
			return false
		}
		seenA[p.i] = true
		seenB[p.j] = true
	}
	return true
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// maxCliqueLocal is the same Bron-Kerbosch-without-pivoting search
// lattice.maxClique runs for inorganic-cluster detection, duplicated
// here since that one is unexported and fragment classification is a
// distinct concern (matching two whole fragments against each other,
// not one neighbourhood against a fixed reference library).
func maxCliqueLocal(adj [][]bool) []int {
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
