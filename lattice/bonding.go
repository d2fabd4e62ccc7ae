package lattice

import (
	"math"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/elements"
)

// MinImageDistance returns the minimum-image-convention Cartesian
// distance between two points under pg's current cell: convert both to
// fractional, take (one - two) modulo 1 into [-0.5, 0.5), convert back,
// return the Euclidean norm.
func (pg *Graph) MinImageDistance(p, q cell.Vec3) float64 {
	fp := pg.cell.Fractional(p)
	fq := pg.cell.Fractional(q)
	var d cell.Vec3
	for i := 0; i < 3; i++ {
		diff := fp[i] - fq[i]
		diff -= math.Round(diff)
		d[i] = diff
	}
	cart := pg.cell.Cartesian(d)
	return math.Sqrt(cart[0]*cart[0] + cart[1]*cart[1] + cart[2]*cart[2])
}

// computeBondImageFlag tries all 27 integer shifts of v's fractional
// coordinates and picks the one minimising Cartesian distance to u,
// returning the SymFlag naming that shift.
func (pg *Graph) computeBondImageFlag(u, v *Atom) SymFlag {
	fu := pg.cell.Fractional(u.Cartesian)
	fv := pg.cell.Fractional(v.Cartesian)

	best := SymFlag("")
	bestDist := math.Inf(1)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				shifted := cell.Vec3{fv[0] + float64(dx), fv[1] + float64(dy), fv[2] + float64(dz)}
				cart := pg.cell.Cartesian(shifted)
				d := dist(u.Cartesian, cart)
				if d < bestDist {
					bestDist = d
					best = NewSymFlag(dx, dy, dz)
				}
			}
		}
	}
	return best
}

func dist(a, b cell.Vec3) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// hBondingOrganics mirrors spec.md's compute_bonding organics set, used
// for the H-nonorganic exclusion. It has the same members as
// elements.Organics, boron included.
var hBondingOrganics = map[string]bool{
	"H": true, "C": true, "N": true, "O": true, "F": true, "Cl": true, "S": true, "B": true,
}

// ComputeBonding fills in bond lengths and symmetry flags. If the graph
// already has bonds (supplied by the reader), only lengths and flags are
// computed for the existing edges. Otherwise, every unordered pair of
// atoms whose minimum-image distance d satisfies d*scale < r1+r2 (d below
// (r1+r2)/scale) becomes a new bond of order 1, subject to the
// H-nonorganic exclusion; a second
// pass then retracts any H-H bond where either hydrogen ends up bonded
// to more than one neighbour, matching compute_bonding's two-pass shape
// (original_source: form every qualifying bond first, then delete
// disqualified H-H bonds by *final* degree, not by degree-so-far).
func (pg *Graph) ComputeBonding(scale float64) error {
	if scale <= 0 {
		scale = 0.9
	}

	if pg.NumBonds() > 0 {
		for _, eid := range pg.BondIDs() {
			b := pg.bonds[eid]
			u, v := pg.atoms[b.U], pg.atoms[b.V]
			b.Length = pg.MinImageDistance(u.Cartesian, v.Cartesian)
			b.SymFlag = pg.computeBondImageFlag(u, v)
		}
		return nil
	}

	var hhBonds []int
	ids := pg.AtomIDs()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			ai, aj := pg.atoms[ids[i]], pg.atoms[ids[j]]
			ri, ok1 := elements.CovalentRadius(ai.Element)
			rj, ok2 := elements.CovalentRadius(aj.Element)
			if !ok1 {
				return &TopologyError{Kind: UnknownElement, AtomID: ai.ID, Element: ai.Element}
			}
			if !ok2 {
				return &TopologyError{Kind: UnknownElement, AtomID: aj.ID, Element: aj.Element}
			}

			// Grounded on compute_bonding (original_source): the covalent
			// radius sum is compared against scale*distance, not the other
			// way around, so scale widens the cutoff as it drops below 1
			// rather than narrowing it.
			d := pg.MinImageDistance(ai.Cartesian, aj.Cartesian)
			if d*scale >= ri+rj {
				continue
			}
			if excludedPair(ai, aj) {
				continue
			}
			b, err := pg.AddBond(ai.ID, aj.ID, 1.0)
			if err != nil {
				return err
			}
			b.Length = d
			b.SymFlag = pg.computeBondImageFlag(ai, aj)
			if ai.Element == "H" && aj.Element == "H" {
				hhBonds = append(hhBonds, b.EdgeID)
			}
		}
	}

	// Second pass: an H-H bond survives only if, with every other
	// qualifying bond already formed, both hydrogens are still degree 1.
	for _, eid := range hhBonds {
		b := pg.bonds[eid]
		if pg.Degree(b.U) > 1 || pg.Degree(b.V) > 1 {
			pg.RemoveBond(eid)
		}
	}
	return nil
}

// excludedPair implements spec.md's H-nonorganic exclusion. H-H pairs
// are never excluded here; ComputeBonding's second pass retracts H-H
// bonds after the fact, by final degree.
func excludedPair(a, b *Atom) bool {
	if a.Element == "H" && b.Element == "H" {
		return false
	}
	if a.Element == "H" && !hBondingOrganics[b.Element] {
		return true
	}
	if b.Element == "H" && !hBondingOrganics[a.Element] {
		return true
	}
	return false
}
