package lattice

import "github.com/corrinlane/latticeff/elements"

// bondTypingOrganics is compute_bond_typing's organic set
// (original_source: structure_data.py:340), narrower than
// elements.Organics (no F, Cl, B: those never take part in the C-O/C-N
// resonance checks below).
var bondTypingOrganics = map[string]bool{
	"H": true, "C": true, "N": true, "O": true, "S": true,
}

// RefineBondOrders walks every bond and refines its order from the
// default 1.0 using the endpoint elements, hybridizations and ring
// membership, per spec.md §4.2's "Bond-order refinement" decision tree
// (grounded on structure_data.py's compute_bond_typing).
func (pg *Graph) RefineBondOrders() {
	for _, eid := range pg.BondIDs() {
		b := pg.bonds[eid]
		u, v := pg.atoms[b.U], pg.atoms[b.V]

		sameRing := pg.sharesRing(u, v)
		if u.Hybridization == Aromatic && v.Hybridization == Aromatic && sameRing {
			b.Order = 1.5
		}

		switch {
		case isPair(u, v, "C", "O"):
			pg.refineCarbonOxygen(b, u, v)
		case isPair(u, v, "C", "N") && !sameRing:
			pg.refineCarbonNitrogen(b, u, v)
		}

		if !u.InRing() && !v.InRing() && bondTypingOrganics[u.Element] && bondTypingOrganics[v.Element] {
			pg.refineByLengthAndHybridization(b, u, v)
		}
	}
}

// sharesRing reports whether u and v are both members of some common
// ring (spec.md's "two aromatic atoms sharing a common ring").
func (pg *Graph) sharesRing(u, v *Atom) bool {
	if len(u.Rings) == 0 || len(v.Rings) == 0 {
		return false
	}
	vRings := make(map[int]bool, len(v.Rings))
	for _, r := range v.Rings {
		vRings[r] = true
	}
	for _, r := range u.Rings {
		if vRings[r] {
			return true
		}
	}
	return false
}

func isPair(u, v *Atom, e1, e2 string) bool {
	return (u.Element == e1 && v.Element == e2) || (u.Element == e2 && v.Element == e1)
}

// carbonOf returns the carbon endpoint first and the other endpoint second.
func carbonOf(u, v *Atom) (*Atom, *Atom) {
	if u.Element == "C" {
		return u, v
	}
	return v, u
}

func elementNeighbors(pg *Graph, id, excluding int) []string {
	var out []string
	for _, n := range pg.Neighbors(id) {
		if n == excluding {
			continue
		}
		out = append(out, pg.atoms[n].Element)
	}
	return out
}

func allIn(elems []string, set map[string]bool) bool {
	for _, e := range elems {
		if !set[e] {
			return false
		}
	}
	return true
}

func containsElement(elems []string, e string) (int, bool) {
	for i, x := range elems {
		if x == e {
			return i, true
		}
	}
	return 0, false
}

// refineCarbonOxygen reproduces the C-O branch of spec.md's bond-order
// decision tree: distinguishes CO2, ester carbonyl/ether, carboxylate,
// amide carbonyl, ether, and plain carbonyl.
func (pg *Graph) refineCarbonOxygen(b *Bond, u, v *Atom) {
	car, oxy := carbonOf(u, v)
	carNeighborIDs := neighborIDsExcluding(pg, car.ID, oxy.ID)
	carNeighborElems := elementNeighbors(pg, car.ID, oxy.ID)
	oxyNeighborElems := elementNeighbors(pg, oxy.ID, car.ID)

	if idx, ok := containsElement(carNeighborElems, "O"); ok {
		at := pg.atoms[carNeighborIDs[idx]]
		if pg.Degree(at.ID) == 1 {
			if pg.Degree(oxy.ID) == 1 {
				// CO2
				car.Hybridization = SP
				oxy.Hybridization = SP2
				b.Order = 2.0
			} else if allIn(oxyNeighborElems, bondTypingOrganics) {
				// ester, ether half
				car.Hybridization = SP2
				oxy.Hybridization = SP2
				b.Order = 1.0
			} else {
				// carboxylate
				car.Hybridization = Aromatic
				oxy.Hybridization = Aromatic
				b.Order = 1.5
			}
		} else {
			atNeighborElems := elementNeighbors(pg, at.ID, 0)
			if allIn(atNeighborElems, bondTypingOrganics) {
				if len(oxyNeighborElemsNonEmpty(pg, oxy.ID, car.ID)) == 0 {
					car.Hybridization = SP2
					oxy.Hybridization = SP2
					b.Order = 2.0 // ester carbonyl
				} else {
					car.Hybridization = Aromatic
					oxy.Hybridization = Aromatic
					b.Order = 1.5 // resonance structure
				}
			} else {
				car.Hybridization = Aromatic
				oxy.Hybridization = Aromatic
				b.Order = 1.5
			}
		}
	}

	if _, ok := containsElement(carNeighborElems, "N"); ok {
		if pg.Degree(oxy.ID) == 1 {
			// amide C=O
			b.Order = 1.5
			car.Hybridization = Aromatic
			oxy.Hybridization = Aromatic
		}
	}

	_, hasO := containsElement(carNeighborElems, "O")
	_, hasN := containsElement(carNeighborElems, "N")
	if !hasO && !hasN {
		if len(oxyNeighborElemsNonEmpty(pg, oxy.ID, car.ID)) > 0 {
			oxy.Hybridization = SP3
			b.Order = 1.0 // ether
		} else if car.InRing() && car.Hybridization == Aromatic {
			oxy.Hybridization = Aromatic
			b.Order = 1.5
		} else {
			oxy.Hybridization = SP2
			b.Order = 2.0 // carbonyl
		}
	}
}

func oxyNeighborElemsNonEmpty(pg *Graph, oxyID, excluding int) []string {
	return elementNeighbors(pg, oxyID, excluding)
}

func neighborIDsExcluding(pg *Graph, id, excluding int) []int {
	var out []int
	for _, n := range pg.Neighbors(id) {
		if n != excluding {
			out = append(out, n)
		}
	}
	return out
}

// refineCarbonNitrogen reproduces the non-ring C-N branch: aromatic
// amine and amide detection.
func (pg *Graph) refineCarbonNitrogen(b *Bond, u, v *Atom) {
	car, nit := carbonOf2(u, v)
	nitNeighborElems := elementNeighbors(pg, nit.ID, car.ID)
	carNeighborElems := elementNeighbors(pg, car.ID, nit.ID)

	if car.Hybridization == Aromatic && allAreH(nitNeighborElems) {
		b.Order = 1.5
		nit.Hybridization = Aromatic
		return
	}
	if pg.Degree(car.ID) == 3 && len(nitNeighborElems) >= 2 {
		if _, ok := containsElement(carNeighborElems, "O"); ok {
			b.Order = 1.5
			nit.Hybridization = Aromatic
		}
	}
}

func carbonOf2(u, v *Atom) (carbon, nitrogen *Atom) {
	if u.Element == "C" {
		return u, v
	}
	return v, u
}

func allAreH(elems []string) bool {
	if len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		if e != "H" {
			return false
		}
	}
	return true
}

// refineByLengthAndHybridization implements the non-cyclic organic sp2/sp
// double/triple bond length checks.
func (pg *Graph) refineByLengthAndHybridization(b *Bond, u, v *Atom) {
	switch {
	case u.Hybridization == SP2 && v.Hybridization == SP2:
		r1, _ := elements.RadiusForHybridization(u.Element, "sp2")
		r2, _ := elements.RadiusForHybridization(v.Element, "sp2")
		if b.Length <= 0.95*(r1+r2) {
			b.Order = 2.0
		}
	case u.Hybridization == SP && v.Hybridization == SP:
		r1, _ := elements.RadiusForHybridization(u.Element, "sp")
		r2, _ := elements.RadiusForHybridization(v.Element, "sp")
		if b.Length <= 0.95*(r1+r2) {
			b.Order = 3.0
		}
	}
}

// InRing reports whether the atom has any ring membership.
func (a *Atom) InRing() bool {
	return len(a.Rings) > 0
}
