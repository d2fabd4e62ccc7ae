package uff

import (
	"fmt"
	"math"

	"github.com/corrinlane/latticeff/elements"
	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/lattice"
)

// UnassignedLabelError reports spec.md's UnknownForceFieldType: the
// typer could not find any UFF label for an atom's element/hybridization
// combination.
type UnassignedLabelError struct {
	AtomID  int
	Element string
}

func (e *UnassignedLabelError) Error() string {
	return fmt.Sprintf("uff: no label for atom %d (element %q)", e.AtomID, e.Element)
}

const deg2rad = math.Pi / 180.0

// groupVIA holds the atomic numbers of the chalcogen-group elements
// that trigger UFF's special-cased dihedral branches.
var groupVIA = map[int]bool{8: true, 16: true, 34: true, 52: true, 84: true}

// AssignLabels walks every atom and sets ForceFieldLabel, organics by
// hybridization, hydrogen to "H_", and everything else to the first
// matching element-prefixed table entry.
func AssignLabels(pg *lattice.Graph) error {
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		label, ok := labelFor(a)
		if !ok {
			return &UnassignedLabelError{AtomID: id, Element: a.Element}
		}
		a.ForceFieldLabel = label
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

// BondPotential computes the UFF harmonic bond term for b, whose
// endpoints are u and v (already labeled).
func BondPotential(u, v *lattice.Atom, order float64) (ffparams.Harmonic, error) {
	pu, ok1 := Table[u.ForceFieldLabel]
	pv, ok2 := Table[v.ForceFieldLabel]
	if !ok1 || !ok2 {
		return ffparams.Harmonic{}, fmt.Errorf("uff: unlabeled bond endpoint")
	}
	r1, r2 := pu.R1, pv.R1
	chi1, chi2 := pu.GMPXi, pv.GMPXi

	rbo := -0.1332 * (r1 + r2) * math.Log(order)
	sqrtDiff := math.Sqrt(chi1) - math.Sqrt(chi2)
	ren := r1 * r2 * (sqrtDiff * sqrtDiff) / (chi1*r1 + chi2*r2)
	r0 := r1 + r2 + rbo - ren

	k := 664.12 * pu.Zstar * pv.Zstar / (r0 * r0 * r0) / 2.0
	return ffparams.Harmonic{K: k, R0: r0}, nil
}

// AnglePotential computes the UFF angle term for the triple (a,b,c)
// centred on b, dispatching on b's coordination code.
func AnglePotential(aAtom, bAtom, cAtom *lattice.Atom, rAB, rBC float64) (ffparams.Potential, error) {
	pb, ok := Table[bAtom.ForceFieldLabel]
	if !ok {
		return nil, fmt.Errorf("uff: unlabeled angle center")
	}
	pa, okA := Table[aAtom.ForceFieldLabel]
	pc, okC := Table[cAtom.ForceFieldLabel]
	if !okA || !okC {
		return nil, fmt.Errorf("uff: unlabeled angle substituent")
	}

	theta0 := pb.Theta0
	cosT0 := math.Cos(theta0 * deg2rad)
	sinT0 := math.Sin(theta0 * deg2rad)

	rAC := math.Sqrt(rAB*rAB + rBC*rBC - 2*rAB*rBC*cosT0)
	kBase := 664.12 / (rAB * rBC) * pa.Zstar * pc.Zstar / math.Pow(rAC, 5) *
		(3*rAB*rBC*(1-cosT0*cosT0) - rAC*rAC*cosT0)

	switch Coordination(bAtom.ForceFieldLabel) {
	case '1':
		return ffparams.FourierSimple{K: kBase, C: -1, N: 1}, nil
	case '2', 'R':
		return ffparams.FourierSimple{K: kBase / 9.0, C: -1, N: 3}, nil
	case '4', '6':
		return ffparams.FourierSimple{K: kBase / 16.0, C: -1, N: 4}, nil
	case '3':
		if math.Abs(theta0-90.0) < 1e-6 {
			return ffparams.FourierSimple{K: kBase / 4.0, C: 1, N: 2}, nil
		}
		c2 := 1.0 / (4.0 * sinT0 * sinT0)
		c1 := -4.0 * c2 * cosT0
		c0 := c2 * (2*cosT0*cosT0 + 1)
		return ffparams.Fourier{K: kBase, C0: c0, C1: c1, C2: c2}, nil
	default:
		c2 := 1.0 / (4.0 * sinT0 * sinT0)
		c1 := -4.0 * c2 * cosT0
		c0 := c2 * (2*cosT0*cosT0 + 1)
		return ffparams.Fourier{K: kBase, C0: c0, C1: c1, C2: c2}, nil
	}
}

// DihedralPotential computes the UFF torsion term for the (b,c) bond
// given b and c's hybridizations, degrees, and the bond order between
// them.
func DihedralPotential(b, c *lattice.Atom, order float64, degB, degC int) ffparams.Potential {
	var phi0, v float64
	var n int

	bSP3, cSP3 := b.Hybridization == lattice.SP3, c.Hybridization == lattice.SP3
	bSP2ish := b.Hybridization == lattice.SP2 || b.Hybridization == lattice.Aromatic
	cSP2ish := c.Hybridization == lattice.SP2 || c.Hybridization == lattice.Aromatic

	switch {
	case bSP3 && cSP3:
		phi0, n = 60.0, 3
		pb, pc := Table[b.ForceFieldLabel], Table[c.ForceFieldLabel]
		v = math.Sqrt(pb.Vi * pc.Vi)
		if znB, znC := elements.AtomicNumberOf(b.Element), elements.AtomicNumberOf(c.Element); groupVIA[znB] && groupVIA[znC] {
			n, phi0 = 2, 90.0
			v = constantVIA(b.Element) * constantVIA(c.Element)
			v = math.Sqrt(v)
		}
	case bSP2ish && cSP2ish:
		phi0, n = 180.0, 2
		pb, pc := Table[b.ForceFieldLabel], Table[c.ForceFieldLabel]
		ub := uValue(pb)
		uc := uValue(pc)
		v = 5.0 * math.Sqrt(ub*uc) * (1 + 4.18*math.Log(order))
	case (bSP3 && cSP2ish) || (bSP2ish && cSP3):
		phi0, n = 180.0, 3
		v = 2.0
		znB, znC := elements.AtomicNumberOf(b.Element), elements.AtomicNumberOf(c.Element)
		if groupVIA[znB] || groupVIA[znC] {
			n, phi0 = 2, 90.0
		}
	default:
		v = 0
		n = 2
		phi0 = 180.0
	}

	if degB > 0 && degC > 0 {
		v /= float64(degB * degC)
	}
	k := v / 2.0
	d := -math.Cos(float64(n) * phi0 * deg2rad)
	return ffparams.Harmonic1D{K: k, D: int(math.Round(d)), N: n}
}

// constantVIA is the group-VIA sp3-sp3 override constant: 2.0 for
// oxygen, 6.8 for the heavier chalcogens.
func constantVIA(element string) float64 {
	if element == "O" {
		return 2.0
	}
	return 6.8
}

// uValue is the aromatic/sp2 torsion barrier constant for an element's
// row in the periodic table (UFF_DATA column 7 in ForceFields.py).
func uValue(p AtomParams) float64 {
	return p.Ui
}

// ImproperPotential computes the UFF improper term for center atom b
// with substituents a, c, d. Returns (potential, ok) — ok is false when
// b's element doesn't take a UFF improper (most elements don't). koop
// is the base force constant before the TOWHEE /3 normalization; the
// returned K is koop/3, with c0/c1/c2 left un-divided, matching
// ForceFields.py's improper_term.
func ImproperPotential(b *lattice.Atom, neighborElements []string) (ffparams.Potential, bool) {
	label := b.ForceFieldLabel
	var c0, c1, c2, koop float64
	switch label {
	case "N_3", "N_2", "N_R", "O_2", "O_R":
		c0, c1, c2, koop = 1.0, -1.0, 0.0, 6.0
	case "P_3+3", "As3+3", "Sb3+3", "Bi3+3":
		phi := improperPhiDeg[label] * deg2rad
		c2 = 1.0
		c1 = -4.0 * math.Cos(phi)
		c0 = -c1*math.Cos(phi) + c2*math.Cos(2.0*phi)
		koop = 22.0
	case "C_2", "C_R":
		c0, c1, c2, koop = 1.0, -1.0, 0.0, 6.0
		if containsO2(neighborElements) {
			koop = 50.0
		}
	default:
		return nil, false
	}
	return ffparams.Cosine3{K: koop / 3.0, C0: c0, C1: c1, C2: c2}, true
}

func containsO2(neighborElements []string) bool {
	for _, e := range neighborElements {
		if e == "O" {
			return true
		}
	}
	return false
}

// improperPhiDeg holds the reference pyramidalization angle (degrees)
// for UFF's phi-derived pnictogen improper centers.
var improperPhiDeg = map[string]float64{
	"P_3+3": 84.4339,
	"As3+3": 86.9735,
	"Sb3+3": 87.7047,
	"Bi3+3": 90.0,
}

// PairPotential returns the diagonal UFF Lennard-Jones pair term for an
// atom's label: epsilon = D1, sigma = x1 * 2^(-1/6).
func PairPotential(label string) (ffparams.LennardJones, bool) {
	p, ok := Table[label]
	if !ok {
		return ffparams.LennardJones{}, false
	}
	return ffparams.LennardJones{Epsilon: p.D1, Sigma: p.X1 * math.Pow(2, -1.0/6.0)}, true
}

// MixPair combines two diagonal LJ pairs via Lorentz-Berthelot mixing.
func MixPair(a, b ffparams.LennardJones) ffparams.LennardJones {
	return ffparams.LennardJones{
		Epsilon: math.Sqrt(a.Epsilon * b.Epsilon),
		Sigma:   (a.Sigma + b.Sigma) / 2.0,
	}
}
