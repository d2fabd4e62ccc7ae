package lattice

import (
	"math"
	"testing"

	"github.com/corrinlane/latticeff/cell"
)

func buildCrossBoundaryPair(t *testing.T) *Graph {
	t.Helper()
	c, err := cell.NewFromParams(4, 4, 4, 90, 90, 90)
	if err != nil {
		t.Fatalf("NewFromParams: %v", err)
	}
	pg := New()
	pg.SetCell(c)
	na := pg.AddAtom("Na", cell.Vec3{0, 0, 0})
	cl := pg.AddAtom("Cl", cell.Vec3{3.9, 0, 0})
	if _, err := pg.AddBond(na.ID, cl.ID, 1.0); err != nil {
		t.Fatalf("AddBond: %v", err)
	}
	if err := pg.ComputeBonding(0.9); err != nil {
		t.Fatalf("ComputeBonding: %v", err)
	}
	pg.MarkPopulated()
	return pg
}

func TestCrossBoundaryBondSymFlagAndLength(t *testing.T) {
	pg := buildCrossBoundaryPair(t)
	bond, ok := pg.BondBetween(1, 2)
	if !ok {
		t.Fatalf("expected a bond between atoms 1 and 2")
	}
	if bond.SymFlag == NoShift {
		t.Fatalf("expected a non-'.' symmetry flag for a cross-boundary bond")
	}
	if math.Abs(bond.Length-0.1) > 1e-9 {
		t.Fatalf("expected minimum-image length 0.1, got %v", bond.Length)
	}
}

func TestExpandAtomAndBondCounts(t *testing.T) {
	pg := buildCrossBoundaryPair(t)
	pg.EnumerateAngles()

	out, err := pg.Expand(2, 1, 1)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if out.NumAtoms() != 4 {
		t.Fatalf("expected 4 atoms after (2,1,1) expansion of a 2-atom cell, got %d", out.NumAtoms())
	}
	if out.NumBonds() != 2 {
		t.Fatalf("expected 2 bonds after (2,1,1) expansion of a 1-bond cell, got %d", out.NumBonds())
	}
}

func TestExpandIdentityPreservesTopology(t *testing.T) {
	pg := buildCrossBoundaryPair(t)
	out, err := pg.Expand(1, 1, 1)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if out.NumAtoms() != pg.NumAtoms() || out.NumBonds() != pg.NumBonds() {
		t.Fatalf("identity expansion changed atom/bond counts: atoms %d->%d bonds %d->%d",
			pg.NumAtoms(), out.NumAtoms(), pg.NumBonds(), out.NumBonds())
	}
}

func TestUnwrapClearsSymFlagAndMovesAtom(t *testing.T) {
	pg := buildCrossBoundaryPair(t)
	cl := pg.Atom(2)
	before := cl.Cartesian

	pg.Unwrap()

	bond, _ := pg.BondBetween(1, 2)
	if bond.SymFlag != NoShift {
		t.Fatalf("expected unwrap to clear the symmetry flag, got %q", bond.SymFlag)
	}
	after := pg.Atom(2).Cartesian
	if after == before {
		t.Fatalf("expected unwrap to move the wrapped atom to an unwrapped image")
	}
	got := math.Abs(after[0] - pg.Atom(1).Cartesian[0])
	if math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("expected unwrapped Cl to sit 0.1 from Na along x, got delta %v", got)
	}
}
