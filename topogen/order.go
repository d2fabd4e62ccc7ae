package topogen

import "github.com/corrinlane/latticeff/lattice"

// sortedDihedralsOf returns a bond's dihedrals in a deterministic order.
// DihedralTable is a Go map, whose iteration order varies from run to
// run; spec.md §5/§8 requires type-index assignment to be a
// deterministic function of the input, so every map walk that feeds
// into IndexFor must be sorted first rather than ranged directly.
func sortedDihedralsOf(b *lattice.Bond) []*lattice.Dihedral {
	out := make([]*lattice.Dihedral, 0, len(b.DihedralTable))
	for _, d := range b.DihedralTable {
		out = append(out, d)
	}
	sortByQuad(out, func(d *lattice.Dihedral) (int, int, int, int) { return d.A, d.B, d.C, d.D })
	return out
}

// sortedImpropersOf returns an atom's impropers in a deterministic order,
// for the same reason as sortedDihedralsOf.
func sortedImpropersOf(a *lattice.Atom) []*lattice.Improper {
	out := make([]*lattice.Improper, 0, len(a.ImproperTable))
	for _, imp := range a.ImproperTable {
		out = append(out, imp)
	}
	sortByQuad(out, func(imp *lattice.Improper) (int, int, int, int) { return imp.A, imp.B, imp.C, imp.D })
	return out
}

// sortByQuad insertion-sorts s by the 4-int key key(s[i]) returns.
// Term tables are always tiny (a handful of dihedrals per bond, at most
// a few impropers per atom), so an O(n^2) sort avoids pulling in
// sort.Slice's reflection-based comparator for no real benefit.
func sortByQuad[T any](s []T, key func(T) (int, int, int, int)) {
	less := func(i, j T) bool {
		ai, bi, ci, di := key(i)
		aj, bj, cj, dj := key(j)
		if ai != aj {
			return ai < aj
		}
		if bi != bj {
			return bi < bj
		}
		if ci != cj {
			return ci < cj
		}
		return di < dj
	}
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
