package lattice

// EnumerateAngles emits one Angle per unordered pair of neighbours for
// every atom of degree >= 2, storing each in the central atom's
// AngleTable keyed by (a, c) (and (c, a), so lookups work from either
// direction — spec.md's reverse-invariance requirement for angle typing
// relies on both endpoints resolving to the same stored Angle).
func (pg *Graph) EnumerateAngles() {
	for _, id := range pg.AtomIDs() {
		neighbors := pg.Neighbors(id)
		if len(neighbors) < 2 {
			continue
		}
		b := pg.atoms[id]
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				a, c := neighbors[i], neighbors[j]
				ang := &Angle{A: a, B: id, C: c}
				b.AngleTable[[2]int{a, c}] = ang
				b.AngleTable[[2]int{c, a}] = ang
			}
		}
	}
}

// EnumerateDihedrals emits one Dihedral per (a in N(b)\{c}, d in
// N(c)\{b}) for every bond (b, c), storing each in the bond's
// DihedralTable keyed by (a, d).
func (pg *Graph) EnumerateDihedrals() {
	for _, eid := range pg.BondIDs() {
		bond := pg.bonds[eid]
		bID, cID := bond.CanonU, bond.CanonV
		for _, a := range pg.Neighbors(bID) {
			if a == cID {
				continue
			}
			for _, d := range pg.Neighbors(cID) {
				if d == bID {
					continue
				}
				dih := &Dihedral{A: a, B: bID, C: cID, D: d}
				bond.DihedralTable[[2]int{a, d}] = dih
			}
		}
	}
}

// EnumerateImpropers emits, for every atom b of degree exactly 3, the
// three distinct (a, c, d) substituent triples taken from the six
// permutations of b's neighbours at indices 0, 2, 4, storing each in b's
// ImproperTable keyed by (a, c, d).
func (pg *Graph) EnumerateImpropers() {
	for _, id := range pg.AtomIDs() {
		neighbors := pg.Neighbors(id)
		if len(neighbors) != 3 {
			continue
		}
		b := pg.atoms[id]
		perms := permutations3(neighbors)
		for i := 0; i < len(perms); i += 2 {
			p := perms[i]
			imp := &Improper{A: p[0], B: id, C: p[1], D: p[2]}
			b.ImproperTable[[3]int{p[0], p[1], p[2]}] = imp
		}
	}
}

// permutations3 returns all 6 permutations of a 3-element slice, in the
// conventional lexicographic-by-index order spec.md's "six permutations"
// language assumes.
func permutations3(s []int) [][3]int {
	idx := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	out := make([][3]int, len(idx))
	for i, p := range idx {
		out[i] = [3]int{s[p[0]], s[p[1]], s[p[2]]}
	}
	return out
}
