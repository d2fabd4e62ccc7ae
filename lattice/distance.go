package lattice

import (
	"gonum.org/v2/gonum/mat"
)

// DistanceMatrix computes the dense minimum-image distance matrix over
// every live atom, indexed by position in AtomIDs() (not by atom id).
// Cluster detection's correspondence-graph comparisons run against this
// rather than recomputing pairwise MinImageDistance on every candidate
// pair.
type DistanceMatrix struct {
	ids []int
	m   *mat.SymDense
}

// IDs returns the atom ids in the order used to index the matrix.
func (d *DistanceMatrix) IDs() []int {
	return d.ids
}

// At returns the minimum-image distance between the i-th and j-th atoms
// in IDs().
func (d *DistanceMatrix) At(i, j int) float64 {
	return d.m.At(i, j)
}

// DistanceMatrix builds the pairwise minimum-image distance matrix for
// every live atom in pg, using pg's cell if set, else plain Euclidean
// distance.
func (pg *Graph) DistanceMatrix() *DistanceMatrix {
	ids := pg.AtomIDs()
	n := len(ids)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		ai := pg.atoms[ids[i]]
		for j := i; j < n; j++ {
			if i == j {
				sym.SetSym(i, j, 0)
				continue
			}
			aj := pg.atoms[ids[j]]
			var d float64
			if pg.cell != nil {
				d = pg.MinImageDistance(ai.Cartesian, aj.Cartesian)
			} else {
				d = dist(ai.Cartesian, aj.Cartesian)
			}
			sym.SetSym(i, j, d)
		}
	}
	return &DistanceMatrix{ids: ids, m: sym}
}
