package cell

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewFromParamsCubic(t *testing.T) {
	c, err := NewFromParams(10, 10, 10, 90, 90, 90)
	if err != nil {
		t.Fatal(err)
	}
	a, b, cc, alpha, beta, gamma := c.Params()
	if !almostEqual(a, 10, 1e-9) || !almostEqual(b, 10, 1e-9) || !almostEqual(cc, 10, 1e-9) {
		t.Fatalf("lengths not round-tripped: %g %g %g", a, b, cc)
	}
	if !almostEqual(alpha, 90, 1e-9) || !almostEqual(beta, 90, 1e-9) || !almostEqual(gamma, 90, 1e-9) {
		t.Fatalf("angles not round-tripped: %g %g %g", alpha, beta, gamma)
	}
}

func TestParamRoundTripTriclinic(t *testing.T) {
	c, err := NewFromParams(8.5, 9.2, 11.1, 81.0, 95.3, 102.7)
	if err != nil {
		t.Fatal(err)
	}
	a, b, cc, alpha, beta, gamma := c.Params()
	want := []float64{8.5, 9.2, 11.1, 81.0, 95.3, 102.7}
	got := []float64{a, b, cc, alpha, beta, gamma}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-8) {
			t.Fatalf("param %d: got %g want %g", i, got[i], want[i])
		}
	}
}

func TestFractionalCartesianInvolution(t *testing.T) {
	c, err := NewFromParams(8.5, 9.2, 11.1, 81.0, 95.3, 102.7)
	if err != nil {
		t.Fatal(err)
	}
	p := Vec3{3.3, -1.2, 7.8}
	f := c.Fractional(p)
	back := c.Cartesian(f)
	for i := 0; i < 3; i++ {
		if !almostEqual(p[i], back[i], 1e-8) {
			t.Fatalf("involution failed at %d: %g != %g", i, p[i], back[i])
		}
	}
}

func TestInvalidCellPathological(t *testing.T) {
	// Angles summing well past the physical limit for a unit cell.
	_, err := NewFromParams(5, 5, 5, 10, 10, 170)
	if err == nil {
		t.Fatal("expected InvalidCellError for pathological angles")
	}
	var invalid *InvalidCellError
	if !isInvalidCell(err, &invalid) {
		t.Fatalf("expected *InvalidCellError, got %T: %v", err, err)
	}
}

func isInvalidCell(err error, target **InvalidCellError) bool {
	if ic, ok := err.(*InvalidCellError); ok {
		*target = ic
		return true
	}
	return false
}

func TestMinimumSupercellCube(t *testing.T) {
	c, err := NewFromParams(10, 10, 10, 90, 90, 90)
	if err != nil {
		t.Fatal(err)
	}
	nx, ny, nz := c.MinimumSupercell(12.5)
	if nx != 3 || ny != 3 || nz != 3 {
		t.Fatalf("expected (3,3,3) for cutoff 12.5 on a 10A cube, got (%d,%d,%d)", nx, ny, nz)
	}
}

func TestUpdateSupercellTriclinicProjection(t *testing.T) {
	c, err := NewFromParams(10, 10, 10, 90, 90, 90)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(c.Lx, 10, 1e-9) || !almostEqual(c.Ly, 10, 1e-9) || !almostEqual(c.Lz, 10, 1e-9) {
		t.Fatalf("orthogonal cube should have Lx=Ly=Lz=10, got %g %g %g", c.Lx, c.Ly, c.Lz)
	}
	if !almostEqual(c.Xy, 0, 1e-9) || !almostEqual(c.Xz, 0, 1e-9) || !almostEqual(c.Yz, 0, 1e-9) {
		t.Fatal("orthogonal cube should have zero tilt factors")
	}
	if err := c.UpdateSupercell(2, 1, 1); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(c.Lx, 20, 1e-9) {
		t.Fatalf("expected Lx doubled to 20, got %g", c.Lx)
	}
}
