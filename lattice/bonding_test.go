package lattice

import (
	"testing"

	"github.com/corrinlane/latticeff/cell"
)

func newBondingTestCell(t *testing.T) *cell.Cell {
	t.Helper()
	c, err := cell.NewFromParams(20, 20, 20, 90, 90, 90)
	if err != nil {
		t.Fatalf("NewFromParams: %v", err)
	}
	return c
}

func TestComputeBondingDiatomicHydrogen(t *testing.T) {
	pg := New()
	pg.SetCell(newBondingTestCell(t))
	h1 := pg.AddAtom("H", cell.Vec3{0, 0, 0})
	h2 := pg.AddAtom("H", cell.Vec3{0.74, 0, 0})

	if err := pg.ComputeBonding(0.9); err != nil {
		t.Fatalf("ComputeBonding: %v", err)
	}
	if pg.NumBonds() != 1 {
		t.Fatalf("expected exactly one H-H bond, got %d", pg.NumBonds())
	}
	if _, ok := pg.BondBetween(h1.ID, h2.ID); !ok {
		t.Fatalf("expected a bond between the two hydrogens")
	}
}

// TestComputeBondingRetractsHHWhenBothGainAThirdNeighbour builds two
// hydrogens close enough to tentatively bond to each other, each also
// within bonding distance of a carbon. The final degree of both
// hydrogens is 2 once the carbon bonds form, so the second pass must
// retract the tentative H-H bond even though it qualified (both
// hydrogens were degree 0) when first considered.
func TestComputeBondingRetractsHHWhenBothGainAThirdNeighbour(t *testing.T) {
	pg := New()
	pg.SetCell(newBondingTestCell(t))
	h1 := pg.AddAtom("H", cell.Vec3{0, 0, 0})
	h2 := pg.AddAtom("H", cell.Vec3{0.7, 0, 0})
	c := pg.AddAtom("C", cell.Vec3{0.35, 0.9, 0})

	if err := pg.ComputeBonding(0.9); err != nil {
		t.Fatalf("ComputeBonding: %v", err)
	}

	if _, ok := pg.BondBetween(h1.ID, h2.ID); ok {
		t.Fatalf("H-H bond should have been retracted once both hydrogens also bond to carbon")
	}
	if _, ok := pg.BondBetween(h1.ID, c.ID); !ok {
		t.Fatalf("expected H1-C bond")
	}
	if _, ok := pg.BondBetween(h2.ID, c.ID); !ok {
		t.Fatalf("expected H2-C bond")
	}
	if pg.NumBonds() != 2 {
		t.Fatalf("expected exactly 2 surviving bonds, got %d", pg.NumBonds())
	}
	if pg.Degree(h1.ID) != 1 || pg.Degree(h2.ID) != 1 {
		t.Fatalf("expected both hydrogens at degree 1 after retraction, got %d and %d",
			pg.Degree(h1.ID), pg.Degree(h2.ID))
	}
}

func TestComputeBondingExcludesHydrogenFromMetal(t *testing.T) {
	pg := New()
	pg.SetCell(newBondingTestCell(t))
	pg.AddAtom("H", cell.Vec3{0, 0, 0})
	pg.AddAtom("Cu", cell.Vec3{1.0, 0, 0})

	if err := pg.ComputeBonding(0.9); err != nil {
		t.Fatalf("ComputeBonding: %v", err)
	}
	if pg.NumBonds() != 0 {
		t.Fatalf("hydrogen should never bond to a non-organic element, got %d bonds", pg.NumBonds())
	}
}
