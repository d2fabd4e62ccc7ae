package topogen

import "github.com/corrinlane/latticeff/lattice"

// mergeFragment deep-copies every atom, bond, angle, dihedral and
// improper of src into dst under fresh ids, per spec.md §4.4 step 7.
// Term tables (keyed by old ids inside src) are rebuilt against the new
// ids rather than carried over verbatim, since Graph.Subgraph and
// Graph.Expand already established the pattern of owning deep copies
// rather than aliasing another graph's term objects.
//
// Every merged atom is stamped with moleculeLabel and molid (Aux keys
// "molecule_type"/"molid"), so io/lmpdata can render the Atoms table's
// molecule-id column and group atoms by molecule type in the control
// file even though they all now live in dst's single atom table.
func mergeFragment(dst, src *lattice.Graph, moleculeLabel string, molid int) {
	remap := make(map[int]int, src.NumAtoms())
	for _, id := range src.AtomIDs() {
		s := src.Atom(id)
		d := dst.AddAtom(s.Element, s.Cartesian)
		d.AtomicNumber = s.AtomicNumber
		d.Mass = s.Mass
		d.Charge = s.Charge
		d.Hybridization = s.Hybridization
		d.ForceFieldLabel = s.ForceFieldLabel
		d.SpecialFlag = s.SpecialFlag
		d.HBondDonor = s.HBondDonor
		for k, v := range s.Aux {
			d.Aux[k] = v
		}
		d.Aux["molecule_type"] = moleculeLabel
		d.Aux["molid"] = molid
		remap[id] = d.ID
	}

	seenAngle := make(map[*lattice.Angle]bool)
	for _, id := range src.AtomIDs() {
		s := src.Atom(id)
		d := dst.Atom(remap[id])
		for _, ang := range s.AngleTable {
			if seenAngle[ang] {
				continue
			}
			seenAngle[ang] = true
			na := &lattice.Angle{
				A: remap[ang.A], B: remap[ang.B], C: remap[ang.C],
				Potential: ang.Potential, TypeIndex: ang.TypeIndex,
			}
			d.AngleTable[[2]int{na.A, na.C}] = na
			d.AngleTable[[2]int{na.C, na.A}] = na
		}
		for _, imp := range s.ImproperTable {
			ni := &lattice.Improper{
				A: remap[imp.A], B: remap[imp.B], C: remap[imp.C], D: remap[imp.D],
				Potential: imp.Potential, TypeIndex: imp.TypeIndex,
			}
			d.ImproperTable[[3]int{ni.A, ni.C, ni.D}] = ni
		}
	}

	for _, eid := range src.BondIDs() {
		b := src.Bond(eid)
		nb, err := dst.AddBond(remap[b.U], remap[b.V], b.Order)
		if err != nil {
			continue
		}
		nb.Length = b.Length
		nb.SymFlag = b.SymFlag
		nb.Potential = b.Potential
		nb.TypeIndex = b.TypeIndex
		for _, dih := range b.DihedralTable {
			nd := &lattice.Dihedral{
				A: remap[dih.A], B: remap[dih.B], C: remap[dih.C], D: remap[dih.D],
				Potential: dih.Potential, TypeIndex: dih.TypeIndex,
			}
			nb.DihedralTable[[2]int{nd.A, nd.D}] = nd
		}
	}
}
