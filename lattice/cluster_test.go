package lattice

import (
	"testing"

	"github.com/corrinlane/latticeff/cell"
)

// buildCuPaddlewheel constructs a geometrically exact match for
// CuPaddlewheel: two Cu atoms on the z-axis 2.64 apart, four oxygens in
// a square of circumradius 1.449 in the z=0 plane (so each is 1.96 from
// both coppers).
func buildCuPaddlewheel(t *testing.T) *Graph {
	t.Helper()
	pg := New()
	const r = 1.449
	cu1 := pg.AddAtom("Cu", cell.Vec3{0, 0, 1.32})
	cu2 := pg.AddAtom("Cu", cell.Vec3{0, 0, -1.32})
	o0 := pg.AddAtom("O", cell.Vec3{r, 0, 0})
	o1 := pg.AddAtom("O", cell.Vec3{0, r, 0})
	o2 := pg.AddAtom("O", cell.Vec3{-r, 0, 0})
	o3 := pg.AddAtom("O", cell.Vec3{0, -r, 0})

	must := func(_ *Bond, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("AddBond: %v", err)
		}
	}
	must(pg.AddBond(cu1.ID, cu2.ID, 1.0))
	for _, o := range []*Atom{o0, o1, o2, o3} {
		must(pg.AddBond(cu1.ID, o.ID, 1.0))
		must(pg.AddBond(cu2.ID, o.ID, 1.0))
	}
	return pg
}

func TestDetectClustersCuPaddlewheel(t *testing.T) {
	pg := buildCuPaddlewheel(t)
	pg.DetectClusters()

	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		if a.SpecialFlag != "Cu paddlewheel" {
			t.Fatalf("atom %d (%s) expected SpecialFlag=Cu paddlewheel, got %q", id, a.Element, a.SpecialFlag)
		}
	}
}

func TestDetectClustersNoFalsePositive(t *testing.T) {
	pg := New()
	cu := pg.AddAtom("Cu", cell.Vec3{0, 0, 0})
	o := pg.AddAtom("O", cell.Vec3{1.96, 0, 0})
	if _, err := pg.AddBond(cu.ID, o.ID, 1.0); err != nil {
		t.Fatalf("AddBond: %v", err)
	}

	pg.DetectClusters()

	if cu.SpecialFlag != "" || o.SpecialFlag != "" {
		t.Fatalf("an isolated Cu-O pair should not match the 6-atom paddlewheel reference")
	}
}
