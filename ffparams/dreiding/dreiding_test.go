package dreiding

import (
	"math"
	"testing"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/lattice"
)

func TestAssignLabelsHBondRetyping(t *testing.T) {
	pg := lattice.New()
	n := pg.AddAtom("N", cell.Vec3{0, 0, 0})
	h := pg.AddAtom("H", cell.Vec3{1, 0, 0})
	if _, err := pg.AddBond(n.ID, h.ID, 1.0); err != nil {
		t.Fatalf("AddBond: %v", err)
	}

	if err := AssignLabels(pg, true); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if h.ForceFieldLabel != "H__HB" {
		t.Fatalf("expected H__HB retyping, got %q", h.ForceFieldLabel)
	}
	if !n.HBondDonor {
		t.Fatalf("expected nitrogen to be flagged as an h-bond donor site")
	}
}

func TestAssignLabelsHBondDisabled(t *testing.T) {
	pg := lattice.New()
	n := pg.AddAtom("N", cell.Vec3{0, 0, 0})
	h := pg.AddAtom("H", cell.Vec3{1, 0, 0})
	if _, err := pg.AddBond(n.ID, h.ID, 1.0); err != nil {
		t.Fatalf("AddBond: %v", err)
	}

	if err := AssignLabels(pg, false); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if h.ForceFieldLabel != "H_" {
		t.Fatalf("expected plain H_ label when hbonding disabled, got %q", h.ForceFieldLabel)
	}
	if n.HBondDonor {
		t.Fatalf("should not flag a donor when hbonding disabled")
	}
}

func TestAngleLinearCenterUsesCosine(t *testing.T) {
	pg := lattice.New()
	linear := pg.AddAtom("C", cell.Vec3{0, 0, 0})
	linear.Hybridization = lattice.SP
	if err := AssignLabels(pg, false); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	pot, err := AnglePotential(linear)
	if err != nil {
		t.Fatalf("AnglePotential: %v", err)
	}
	if _, ok := pot.(interface{ Style() string }); !ok {
		t.Fatalf("expected a Potential")
	}
	if pot.Style() != "cosine" {
		t.Fatalf("expected cosine style for a linear (180deg) center, got %s", pot.Style())
	}
}

func TestBondPotentialHarmonicDefault(t *testing.T) {
	pg := lattice.New()
	c1 := pg.AddAtom("C", cell.Vec3{0, 0, 0})
	c2 := pg.AddAtom("C", cell.Vec3{1.5, 0, 0})
	c1.Hybridization, c2.Hybridization = lattice.SP3, lattice.SP3
	if err := AssignLabels(pg, false); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	pot, err := BondPotential(c1, c2, 1.0, false)
	if err != nil {
		t.Fatalf("BondPotential: %v", err)
	}
	h, ok := pot.(interface{ Style() string })
	if !ok || h.Style() != "harmonic" {
		t.Fatalf("expected harmonic style, got %+v", pot)
	}
}

func TestImproperSkipsSP3Pnictogen(t *testing.T) {
	pg := lattice.New()
	n := pg.AddAtom("N", cell.Vec3{0, 0, 0})
	n.Hybridization = lattice.SP3
	if err := AssignLabels(pg, false); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if _, ok := ImproperPotential(n); ok {
		t.Fatalf("expected no improper for an sp3 nitrogen center")
	}
}

func TestPairPotentialPerElement(t *testing.T) {
	cPair, ok := PairPotential("C_R")
	if !ok {
		t.Fatalf("expected a pair potential for C_R")
	}
	oPair, ok := PairPotential("O_3")
	if !ok {
		t.Fatalf("expected a pair potential for O_3")
	}
	if cPair.Epsilon == oPair.Epsilon {
		t.Fatalf("expected element-specific epsilon, got the same value (%v) for C_R and O_3", cPair.Epsilon)
	}
	wantEps := Table["C_R"].VdwD0
	wantSigma := Table["C_R"].VdwR0 * math.Pow(2, -1.0/6.0)
	if math.Abs(cPair.Epsilon-wantEps) > 1e-12 {
		t.Fatalf("expected epsilon = VdwD0 (%v), got %v", wantEps, cPair.Epsilon)
	}
	if math.Abs(cPair.Sigma-wantSigma) > 1e-12 {
		t.Fatalf("expected sigma = VdwR0*2^(-1/6) (%v), got %v", wantSigma, cPair.Sigma)
	}
}

func TestPairPotentialHBondLabelFallsBackToBase(t *testing.T) {
	hb, ok := PairPotential("H__HB")
	if !ok {
		t.Fatalf("expected a pair potential for H__HB")
	}
	h, ok := PairPotential("H_")
	if !ok {
		t.Fatalf("expected a pair potential for H_")
	}
	if hb != h {
		t.Fatalf("H__HB should reuse H_'s vdW parameters via baseLabel, got %+v vs %+v", hb, h)
	}
}

func TestIsAcceptorExcludesDonorSites(t *testing.T) {
	n := &lattice.Atom{Element: "N", HBondDonor: true}
	if IsAcceptor(n) {
		t.Fatalf("a nitrogen already hosting a donor hydrogen should not also be an acceptor")
	}
	o := &lattice.Atom{Element: "O", HBondDonor: false}
	if !IsAcceptor(o) {
		t.Fatalf("expected a bare oxygen to be a candidate acceptor")
	}
}
