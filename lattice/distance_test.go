package lattice

import (
	"math"
	"testing"

	"github.com/corrinlane/latticeff/cell"
)

func TestDistanceMatrixSymmetricAndZeroDiagonal(t *testing.T) {
	pg := New()
	pg.AddAtom("C", cell.Vec3{0, 0, 0})
	pg.AddAtom("C", cell.Vec3{1, 0, 0})
	pg.AddAtom("C", cell.Vec3{0, 2, 0})

	dm := pg.DistanceMatrix()
	n := len(dm.IDs())
	for i := 0; i < n; i++ {
		if dm.At(i, i) != 0 {
			t.Fatalf("diagonal should be zero, got %v at %d", dm.At(i, i), i)
		}
		for j := 0; j < n; j++ {
			if math.Abs(dm.At(i, j)-dm.At(j, i)) > 1e-12 {
				t.Fatalf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if math.Abs(dm.At(0, 1)-1.0) > 1e-9 {
		t.Fatalf("expected distance 1.0 between atoms 0 and 1, got %v", dm.At(0, 1))
	}
	if math.Abs(dm.At(0, 2)-2.0) > 1e-9 {
		t.Fatalf("expected distance 2.0 between atoms 0 and 2, got %v", dm.At(0, 2))
	}
}

func TestDistanceMatrixUsesMinimumImage(t *testing.T) {
	c, err := cell.NewFromParams(10, 10, 10, 90, 90, 90)
	if err != nil {
		t.Fatalf("NewFromParams: %v", err)
	}
	pg := New()
	pg.SetCell(c)
	pg.AddAtom("Na", cell.Vec3{0.5, 5, 5})
	pg.AddAtom("Cl", cell.Vec3{9.5, 5, 5})

	dm := pg.DistanceMatrix()
	if math.Abs(dm.At(0, 1)-1.0) > 1e-9 {
		t.Fatalf("expected minimum-image distance 1.0 across the boundary, got %v", dm.At(0, 1))
	}
}
