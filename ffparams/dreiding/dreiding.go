package dreiding

import (
	"fmt"
	"math"

	"github.com/corrinlane/latticeff/elements"
	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/lattice"
)

// UnassignedLabelError mirrors uff.UnassignedLabelError for DREIDING's
// own labeling pass.
type UnassignedLabelError struct {
	AtomID  int
	Element string
}

func (e *UnassignedLabelError) Error() string {
	return fmt.Sprintf("dreiding: no label for atom %d (element %q)", e.AtomID, e.Element)
}

const deg2rad = math.Pi / 180.0

// hbondAcceptorElements are the elements DREIDING treats as hydrogen
// bond donor/acceptor sites.
var hbondAcceptorElements = map[string]bool{"N": true, "O": true, "F": true}

// AssignLabels sets every atom's ForceFieldLabel using the same
// organic-by-hybridization convention UFF uses, then retypes hydrogens
// attached to N/O/F as "H__HB" when hbondEnabled, flagging the heavy
// neighbour as an h-bond donor site.
func AssignLabels(pg *lattice.Graph, hbondEnabled bool) error {
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		label, ok := labelFor(a)
		if !ok {
			return &UnassignedLabelError{AtomID: id, Element: a.Element}
		}
		a.ForceFieldLabel = label
	}

	if !hbondEnabled {
		return nil
	}
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		if a.ForceFieldLabel != "H_" {
			continue
		}
		for _, nid := range pg.Neighbors(id) {
			n := pg.Atom(nid)
			if hbondAcceptorElements[n.Element] {
				a.ForceFieldLabel = "H__HB"
				n.HBondDonor = true
				break
			}
		}
	}
	return nil
}

func labelFor(a *lattice.Atom) (string, bool) {
	if a.Element == "H" {
		return "H_", true
	}
	if elements.Organics[a.Element] {
		suffix := byte('3')
		switch a.Hybridization {
		case lattice.SP:
			suffix = '1'
		case lattice.SP2:
			suffix = '2'
		case lattice.Aromatic:
			suffix = 'R'
		case lattice.SP3:
			suffix = '3'
		}
		label := fmt.Sprintf("%s_%c", a.Element, suffix)
		if _, ok := Table[label]; ok {
			return label, true
		}
	}
	p, ok := ElementFallback(a.Element)
	if !ok {
		return "", false
	}
	return p.Label, true
}

func baseLabel(label string) string {
	if label == "H__HB" {
		return "H_"
	}
	return label
}

// BondPotential computes the DREIDING bond term: a harmonic form by
// default, or the Morse variant when useMorse is set.
func BondPotential(u, v *lattice.Atom, order float64, useMorse bool) (ffparams.Potential, error) {
	pu, ok1 := Table[baseLabel(u.ForceFieldLabel)]
	pv, ok2 := Table[baseLabel(v.ForceFieldLabel)]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("dreiding: unlabeled bond endpoint")
	}
	r0 := pu.R0 + pv.R0 - 0.01

	if !useMorse {
		return ffparams.Harmonic{K: 700.0 * order, R0: r0}, nil
	}
	d := 70.0 * order
	alpha := order * math.Sqrt(700.0*order/(2*d))
	return ffparams.Morse{D: d, Alpha: alpha, R0: r0}, nil
}

// AnglePotential computes the DREIDING angle term for (a,b,c) centred
// on b.
func AnglePotential(bAtom *lattice.Atom) (ffparams.Potential, error) {
	p, ok := Table[baseLabel(bAtom.ForceFieldLabel)]
	if !ok {
		return nil, fmt.Errorf("dreiding: unlabeled angle center")
	}
	if math.Abs(p.Theta0-180.0) < 1e-6 {
		return ffparams.Cosine{K: 100.0}, nil
	}
	sinT0 := math.Sin(p.Theta0 * deg2rad)
	k := 0.5 * 100.0 / (sinT0 * sinT0)
	return ffparams.CosineSquared{K: k, Theta0: p.Theta0}, nil
}

// DihedralPotential computes the DREIDING torsion term for the (b,c)
// bond, given hybridizations, bond order, the degrees of b and c, and
// whether b and c share a ring (for the aromatic doubling rule).
func DihedralPotential(b, c *lattice.Atom, order float64, degB, degC int, sameRing bool) ffparams.Potential {
	var v, phi0 float64
	n := 2

	bSP3, cSP3 := b.Hybridization == lattice.SP3, c.Hybridization == lattice.SP3
	bAro, cAro := b.Hybridization == lattice.Aromatic, c.Hybridization == lattice.Aromatic
	bSP2, cSP2 := b.Hybridization == lattice.SP2, c.Hybridization == lattice.SP2
	bSP2ish, cSP2ish := bSP2 || bAro, cSP2 || cAro

	znB, znC := elements.AtomicNumberOf(b.Element), elements.AtomicNumberOf(c.Element)

	switch {
	case bSP3 && cSP3 && (groupVIA(znB) || groupVIA(znC)):
		v, n, phi0 = 2.0, 2, 90.0
	case bSP3 && cSP3:
		v, n, phi0 = 2.0, 3, 180.0
	case (bSP3 && cSP2ish) || (bSP2ish && cSP3):
		if groupVIA(znB) || groupVIA(znC) {
			v, n, phi0 = 2.0, 2, 90.0
		} else {
			v, n, phi0 = 2.0, 3, 180.0
		}
	case bSP2 && cSP2 && order == 2.0:
		v, n, phi0 = 45.0, 2, 180.0
	case bSP2ish && cSP2ish && order == 1.5:
		v, n, phi0 = 25.0, 2, 180.0
	case bAro && cAro && order == 1.0:
		v, n, phi0 = 5.0, 2, 180.0
		if !sameRing {
			v *= 2
		}
	default:
		v, n, phi0 = 0, 2, 180.0
	}

	denom := (degB - 1) * (degC - 1)
	if denom > 0 {
		v /= float64(denom)
	}
	k := v / 2.0
	d := n*int(phi0) + 180
	return ffparams.Harmonic1D{K: k, D: d, N: n}
}

func groupVIA(atomicNumber int) bool {
	switch atomicNumber {
	case 8, 16, 34, 52, 84:
		return true
	}
	return false
}

// ImproperPotential computes DREIDING's umbrella improper term for
// center atom b; ok is false when b is a pnictogen with sp3
// hybridization (DREIDING skips those centers entirely).
func ImproperPotential(b *lattice.Atom) (ffparams.Potential, bool) {
	if isPnictogen(b.Element) && b.Hybridization == lattice.SP3 {
		return nil, false
	}
	k := 40.0
	if b.Hybridization == lattice.SP2 || b.Hybridization == lattice.Aromatic {
		k = 40.0 / 3.0
	}
	return ffparams.Umbrella{K: k, Omega0: 0.0}, true
}

func isPnictogen(element string) bool {
	switch element {
	case "N", "P", "As", "Sb", "Bi":
		return true
	}
	return false
}

// PairPotential returns the diagonal DREIDING Lennard-Jones pair term,
// per-element: epsilon = VdwD0, sigma = VdwR0 * 2^(-1/6) (R0 in the
// table is the LJ r_min, same convention as UFF's X1).
func PairPotential(label string) (ffparams.LennardJones, bool) {
	p, ok := Table[baseLabel(label)]
	if !ok {
		return ffparams.LennardJones{}, false
	}
	return ffparams.LennardJones{Epsilon: p.VdwD0, Sigma: p.VdwR0 * math.Pow(2, -1.0/6.0)}, true
}

// HBondPotential returns DREIDING's explicit donor-acceptor hydrogen
// bond Morse pair term. donorType is the LAMMPS atom-type index of the
// donor hydrogen. D0 is always 9.5 kcal/mol and R0 always 2.75 A (Alpha
// 10, angle exponent 4): there is no per-label parameter table, so the
// term does not depend on the donor or acceptor labels.
func HBondPotential(donorType int) ffparams.HBondMorse {
	return ffparams.HBondMorse{DonorType: donorType, D0: 9.5, Alpha: 10.0, R0: 2.75, AngleExp: 4}
}

// IsDonorHydrogen reports whether a is a DREIDING hydrogen-bond donor
// hydrogen (retyped by AssignLabels).
func IsDonorHydrogen(a *lattice.Atom) bool {
	return a.ForceFieldLabel == "H__HB"
}

// IsAcceptor reports whether a is a candidate hydrogen-bond acceptor:
// an N/O/F heavy atom that is not itself flagged as hosting a donor
// hydrogen.
func IsAcceptor(a *lattice.Atom) bool {
	return hbondAcceptorElements[a.Element] && !a.HBondDonor
}
