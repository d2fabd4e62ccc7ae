package topogen

import (
	"fmt"

	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/ffparams/dreiding"
	"github.com/corrinlane/latticeff/ffparams/uff"
	"github.com/corrinlane/latticeff/lattice"
)

// applyForceField assigns force-field labels and every term's Potential
// on pg, per spec.md §4.4 step 6. Label assignment failures are
// UnknownForceFieldType and abort (returned as an error); a term that
// exists structurally but can't be parameterized is MissingPotential and
// only recorded on w.
func applyForceField(pg *lattice.Graph, ff ForceFieldName, cfg Config, w *Warnings) error {
	switch ff {
	case UFF:
		return applyUFF(pg, w)
	case DREIDING:
		return applyDREIDING(pg, cfg, w)
	default:
		return fmt.Errorf("topogen: unknown force field %q", ff)
	}
}

func applyUFF(pg *lattice.Graph, w *Warnings) error {
	if err := uff.AssignLabels(pg); err != nil {
		return err
	}
	for _, id := range pg.AtomIDs() {
		pg.Atom(id).Aux["forcefield"] = string(UFF)
	}

	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		u, v := pg.Atom(b.U), pg.Atom(b.V)
		pot, err := uff.BondPotential(u, v, b.Order)
		if err != nil {
			w.addMissing("bond", fmt.Sprintf("%d-%d: %v", b.U, b.V, err))
			continue
		}
		b.Potential = pot
	}

	for _, ang := range distinctAngles(pg) {
		aAtom, bAtom, cAtom := pg.Atom(ang.A), pg.Atom(ang.B), pg.Atom(ang.C)
		rAB, rBC, ok := angleBondLengths(pg, ang)
		if !ok {
			w.addMissing("angle", fmt.Sprintf("%d-%d-%d: missing bond length", ang.A, ang.B, ang.C))
			continue
		}
		pot, err := uff.AnglePotential(aAtom, bAtom, cAtom, rAB, rBC)
		if err != nil {
			w.addMissing("angle", fmt.Sprintf("%d-%d-%d: %v", ang.A, ang.B, ang.C, err))
			continue
		}
		ang.Potential = pot
	}

	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		bAtom, cAtom := pg.Atom(b.CanonU), pg.Atom(b.CanonV)
		degB, degC := pg.Degree(b.CanonU), pg.Degree(b.CanonV)
		for _, dih := range sortedDihedralsOf(b) {
			dih.Potential = uff.DihedralPotential(bAtom, cAtom, b.Order, degB, degC)
		}
	}

	for _, id := range pg.AtomIDs() {
		bAtom := pg.Atom(id)
		for _, imp := range sortedImpropersOf(bAtom) {
			neighborElements := []string{
				pg.Atom(imp.A).Element,
				pg.Atom(imp.C).Element,
				pg.Atom(imp.D).Element,
			}
			pot, ok := uff.ImproperPotential(bAtom, neighborElements)
			if !ok {
				w.addMissing("improper", fmt.Sprintf("%d-%d-%d-%d: no UFF improper term for %s", imp.A, imp.B, imp.C, imp.D, bAtom.ForceFieldLabel))
				continue
			}
			imp.Potential = pot
		}
	}
	return nil
}

func applyDREIDING(pg *lattice.Graph, cfg Config, w *Warnings) error {
	if err := dreiding.AssignLabels(pg, cfg.HydrogenBonding); err != nil {
		return err
	}
	for _, id := range pg.AtomIDs() {
		pg.Atom(id).Aux["forcefield"] = string(DREIDING)
	}

	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		u, v := pg.Atom(b.U), pg.Atom(b.V)
		pot, err := dreiding.BondPotential(u, v, b.Order, cfg.UseMorseBonds)
		if err != nil {
			w.addMissing("bond", fmt.Sprintf("%d-%d: %v", b.U, b.V, err))
			continue
		}
		b.Potential = pot
	}

	for _, ang := range distinctAngles(pg) {
		bAtom := pg.Atom(ang.B)
		pot, err := dreiding.AnglePotential(bAtom)
		if err != nil {
			w.addMissing("angle", fmt.Sprintf("%d-%d-%d: %v", ang.A, ang.B, ang.C, err))
			continue
		}
		ang.Potential = pot
	}

	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		bAtom, cAtom := pg.Atom(b.CanonU), pg.Atom(b.CanonV)
		degB, degC := pg.Degree(b.CanonU), pg.Degree(b.CanonV)
		sameRing := sharesRing(bAtom, cAtom)
		for _, dih := range sortedDihedralsOf(b) {
			dih.Potential = dreiding.DihedralPotential(bAtom, cAtom, b.Order, degB, degC, sameRing)
		}
	}

	for _, id := range pg.AtomIDs() {
		bAtom := pg.Atom(id)
		for _, imp := range sortedImpropersOf(bAtom) {
			pot, ok := dreiding.ImproperPotential(bAtom)
			if !ok {
				continue // DREIDING deliberately has no improper for sp3 pnictogen centers
			}
			imp.Potential = pot
		}
	}
	return nil
}

// sharesRing reports whether a and c are both members of some common
// ring, from their public Rings index lists.
func sharesRing(a, c *lattice.Atom) bool {
	if len(a.Rings) == 0 || len(c.Rings) == 0 {
		return false
	}
	set := make(map[int]bool, len(c.Rings))
	for _, r := range c.Rings {
		set[r] = true
	}
	for _, r := range a.Rings {
		if set[r] {
			return true
		}
	}
	return false
}

// distinctAngles collects every *lattice.Angle in pg exactly once:
// EnumerateAngles stores each angle under both (a,c) and (c,a) keys on
// the same object, so a naive walk of every AngleTable would compute
// (and warn about) each angle's potential twice.
func distinctAngles(pg *lattice.Graph) []*lattice.Angle {
	seen := make(map[*lattice.Angle]bool)
	var out []*lattice.Angle
	for _, id := range pg.AtomIDs() {
		for _, ang := range pg.Atom(id).AngleTable {
			if seen[ang] {
				continue
			}
			seen[ang] = true
			out = append(out, ang)
		}
	}
	// AngleTable is a Go map; two angles centred on the same atom are
	// visited in an order that varies run to run. Re-sort by (A,B,C) so
	// type-index assignment stays a deterministic function of the input.
	sortByQuad(out, func(a *lattice.Angle) (int, int, int, int) { return a.A, a.B, a.C, 0 })
	return out
}

// angleBondLengths returns the rest lengths (the R0 of the UFF harmonic
// bond terms already assigned) of the two bonds flanking an angle's
// center, or ok=false if either bond or its harmonic term is missing
// (shouldn't happen for a consistently-enumerated graph, but guards
// against a partially built fixture).
func angleBondLengths(pg *lattice.Graph, ang *lattice.Angle) (rAB, rBC float64, ok bool) {
	ab, ok1 := pg.BondBetween(ang.A, ang.B)
	bc, ok2 := pg.BondBetween(ang.B, ang.C)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	hab, ok1 := ab.Potential.(ffparams.Harmonic)
	hbc, ok2 := bc.Potential.(ffparams.Harmonic)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return hab.R0, hbc.R0, true
}
