package uff

import (
	"math"
	"testing"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/lattice"
)

func TestAssignLabelsHydrogenAndOrganic(t *testing.T) {
	pg := lattice.New()
	h := pg.AddAtom("H", cell.Vec3{0, 0, 0})
	c := pg.AddAtom("C", cell.Vec3{1, 0, 0})
	c.Hybridization = lattice.Aromatic

	if err := AssignLabels(pg); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if h.ForceFieldLabel != "H_" {
		t.Fatalf("expected H_ label, got %q", h.ForceFieldLabel)
	}
	if c.ForceFieldLabel != "C_R" {
		t.Fatalf("expected C_R label for aromatic carbon, got %q", c.ForceFieldLabel)
	}
}

func TestAssignLabelsMetalFallback(t *testing.T) {
	pg := lattice.New()
	cu := pg.AddAtom("Cu", cell.Vec3{0, 0, 0})
	if err := AssignLabels(pg); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if cu.ForceFieldLabel != "Cu3+1" {
		t.Fatalf("expected Cu3+1 fallback label, got %q", cu.ForceFieldLabel)
	}
}

func TestBondPotentialDiatomicHydrogen(t *testing.T) {
	pg := lattice.New()
	h1 := pg.AddAtom("H", cell.Vec3{0, 0, 0})
	h2 := pg.AddAtom("H", cell.Vec3{0.74, 0, 0})
	if err := AssignLabels(pg); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}

	pot, err := BondPotential(h1, h2, 1.0)
	if err != nil {
		t.Fatalf("BondPotential: %v", err)
	}
	if math.Abs(pot.R0-0.708) > 1e-6 {
		t.Fatalf("expected r0 ~= 0.708, got %v", pot.R0)
	}
	if pot.K <= 0 {
		t.Fatalf("expected a positive force constant, got %v", pot.K)
	}
}

func TestMixPairLorentzBerthelot(t *testing.T) {
	a := mustPair(t, "H_")
	b := mustPair(t, "C_R")
	mixed := MixPair(a, b)
	if math.Abs(mixed.Epsilon-math.Sqrt(a.Epsilon*b.Epsilon)) > 1e-12 {
		t.Fatalf("epsilon should be the geometric mean")
	}
	if math.Abs(mixed.Sigma-(a.Sigma+b.Sigma)/2) > 1e-12 {
		t.Fatalf("sigma should be the arithmetic mean")
	}
}

func TestImproperPotentialAromaticCarbon(t *testing.T) {
	pg := lattice.New()
	b := pg.AddAtom("C", cell.Vec3{0, 0, 0})
	b.Hybridization = lattice.Aromatic
	if err := AssignLabels(pg); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if b.ForceFieldLabel != "C_R" {
		t.Fatalf("expected C_R, got %q", b.ForceFieldLabel)
	}

	pot, ok := ImproperPotential(b, []string{"C", "C", "H"})
	if !ok {
		t.Fatalf("expected an improper potential for C_R")
	}
	c3, ok := pot.(ffparams.Cosine3)
	if !ok {
		t.Fatalf("expected Cosine3, got %T", pot)
	}
	// koop=6 for C_2/C_R with no O_2 neighbour; K = koop/3 = 2, and
	// c0/c1/c2 are NOT divided a second time (ForceFields.py:291-305).
	if math.Abs(c3.K-2.0) > 1e-9 {
		t.Fatalf("expected K = 2.0, got %v", c3.K)
	}
	if c3.C0 != 1.0 || c3.C1 != -1.0 || c3.C2 != 0.0 {
		t.Fatalf("expected (c0,c1,c2) = (1,-1,0), got (%v,%v,%v)", c3.C0, c3.C1, c3.C2)
	}
}

func TestImproperPotentialCarbonylOverride(t *testing.T) {
	pg := lattice.New()
	b := pg.AddAtom("C", cell.Vec3{0, 0, 0})
	b.Hybridization = lattice.SP2
	if err := AssignLabels(pg); err != nil {
		t.Fatalf("AssignLabels: %v", err)
	}
	if b.ForceFieldLabel != "C_2" {
		t.Fatalf("expected C_2, got %q", b.ForceFieldLabel)
	}

	pot, ok := ImproperPotential(b, []string{"O", "O", "N"})
	if !ok {
		t.Fatalf("expected an improper potential for C_2")
	}
	c3 := pot.(ffparams.Cosine3)
	// koop=50 when an O_2 neighbour is present; K = 50/3.
	if math.Abs(c3.K-50.0/3.0) > 1e-9 {
		t.Fatalf("expected K = 50/3, got %v", c3.K)
	}
}

func TestImproperPotentialPhosphorusPhiDerived(t *testing.T) {
	pg := lattice.New()
	p := pg.AddAtom("P", cell.Vec3{0, 0, 0})
	p.ForceFieldLabel = "P_3+3"

	pot, ok := ImproperPotential(p, nil)
	if !ok {
		t.Fatalf("expected an improper potential for P_3+3")
	}
	c3 := pot.(ffparams.Cosine3)
	phi := 84.4339 * deg2rad
	wantC2 := 1.0
	wantC1 := -4.0 * math.Cos(phi)
	wantC0 := -wantC1*math.Cos(phi) + wantC2*math.Cos(2.0*phi)
	if math.Abs(c3.K-22.0/3.0) > 1e-9 {
		t.Fatalf("expected K = 22/3, got %v", c3.K)
	}
	if math.Abs(c3.C0-wantC0) > 1e-9 || math.Abs(c3.C1-wantC1) > 1e-9 || math.Abs(c3.C2-wantC2) > 1e-9 {
		t.Fatalf("phi-derived coefficients mismatch: got (%v,%v,%v) want (%v,%v,%v)",
			c3.C0, c3.C1, c3.C2, wantC0, wantC1, wantC2)
	}
}

func mustPair(t *testing.T, label string) ffparams.LennardJones {
	t.Helper()
	p, ok := PairPotential(label)
	if !ok {
		t.Fatalf("no pair potential for label %q", label)
	}
	return p
}
