/*
Package cell represents a triclinic crystallographic lattice: the 3x3
basis matrix, its cached inverse, the six conventional cell parameters
(a, b, c, alpha, beta, gamma), and the LAMMPS-style triclinic box
projection (lx, ly, lz, xy, xz, yz) that the rest of latticeff needs when
emitting box bounds.
*/
package cell

import (
	"fmt"
	"math"

	"gonum.org/v2/gonum/mat"
)

// Vec3 is a Cartesian or fractional 3-vector.
type Vec3 [3]float64

// Cell holds a lattice basis and its derived quantities. All fields
// besides the basis are cached and recomputed together whenever the
// basis changes (NewFromParams, NewFromBasis, UpdateSupercell).
type Cell struct {
	basis   *mat.Dense // 3x3, rows are lattice vectors a, b, c
	inverse *mat.Dense // cached inverse of basis

	a, b, c          float64
	alpha, beta, gamma float64 // degrees

	// Triclinic box projection, LAMMPS convention.
	Lx, Ly, Lz float64
	Xy, Xz, Yz float64
}

// InvalidCellError is returned when cell parameters are non-physical:
// the triclinic projection formulas require taking square roots of
// quantities that go negative for pathological angle combinations.
type InvalidCellError struct {
	Reason string
}

func (e *InvalidCellError) Error() string {
	return fmt.Sprintf("invalid cell: %s", e.Reason)
}

const degToRad = math.Pi / 180.0

// NewFromParams builds a Cell from the six conventional parameters.
// Angles are in degrees.
func NewFromParams(a, b, c, alpha, beta, gamma float64) (*Cell, error) {
	al := alpha * degToRad
	be := beta * degToRad
	ga := gamma * degToRad

	// Standard crystallographic convention: a along x, b in the xy
	// plane. This is the same convention the triclinic projection below
	// assumes, so the two stay consistent.
	ax := a
	bx := b * math.Cos(ga)
	by := b * math.Sin(ga)
	cx := c * math.Cos(be)
	cy := (c*math.Cos(al) - cx*math.Cos(ga)) / math.Sin(ga)
	cz2 := c*c - cx*cx - cy*cy
	if cz2 < 0 {
		return nil, &InvalidCellError{Reason: fmt.Sprintf("non-physical angles a=%g b=%g c=%g alpha=%g beta=%g gamma=%g", a, b, c, alpha, beta, gamma)}
	}
	cz := math.Sqrt(cz2)

	basis := mat.NewDense(3, 3, []float64{
		ax, 0, 0,
		bx, by, 0,
		cx, cy, cz,
	})
	return newFromBasisMatrix(basis)
}

// NewFromBasis builds a Cell from an explicit 3x3 basis, rows being the
// lattice vectors a, b, c in Cartesian coordinates.
func NewFromBasis(rows [3]Vec3) (*Cell, error) {
	data := make([]float64, 0, 9)
	for _, r := range rows {
		data = append(data, r[0], r[1], r[2])
	}
	return newFromBasisMatrix(mat.NewDense(3, 3, data))
}

func newFromBasisMatrix(basis *mat.Dense) (*Cell, error) {
	var inv mat.Dense
	if err := inv.Inverse(basis); err != nil {
		return nil, &InvalidCellError{Reason: "singular basis: " + err.Error()}
	}

	c := &Cell{basis: basis, inverse: &inv}
	c.computeParamsFromBasis()
	if err := c.computeTriclinicProjection(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cell) computeParamsFromBasis() {
	av := rowVec(c.basis, 0)
	bv := rowVec(c.basis, 1)
	cv := rowVec(c.basis, 2)

	c.a = norm(av)
	c.b = norm(bv)
	c.c = norm(cv)
	c.alpha = angleDeg(bv, cv)
	c.beta = angleDeg(av, cv)
	c.gamma = angleDeg(av, bv)
}

// computeTriclinicProjection derives lx, ly, lz, xy, xz, yz per spec:
//
//	lx = a; xy = b*cos(gamma); xz = c*cos(beta)
//	ly = sqrt(b^2 - xy^2)
//	yz = (b*c*cos(alpha) - xy*xz) / ly
//	lz = sqrt(c^2 - xz^2 - yz^2)
func (c *Cell) computeTriclinicProjection() error {
	al := c.alpha * degToRad
	be := c.beta * degToRad
	ga := c.gamma * degToRad

	c.Lx = c.a
	c.Xy = c.b * math.Cos(ga)
	c.Xz = c.c * math.Cos(be)

	lySq := c.b*c.b - c.Xy*c.Xy
	if lySq < 0 {
		return &InvalidCellError{Reason: fmt.Sprintf("ly^2 negative (%g) for angles given", lySq)}
	}
	c.Ly = math.Sqrt(lySq)

	if c.Ly == 0 {
		return &InvalidCellError{Reason: "degenerate cell: ly is zero"}
	}
	c.Yz = (c.b*c.c*math.Cos(al) - c.Xy*c.Xz) / c.Ly

	lzSq := c.c*c.c - c.Xz*c.Xz - c.Yz*c.Yz
	if lzSq < 0 {
		return &InvalidCellError{Reason: fmt.Sprintf("lz^2 negative (%g) for angles given", lzSq)}
	}
	c.Lz = math.Sqrt(lzSq)
	return nil
}

// Params returns the six conventional cell parameters (a, b, c in the
// same length unit as the basis; alpha, beta, gamma in degrees).
func (c *Cell) Params() (a, b, cc, alpha, beta, gamma float64) {
	return c.a, c.b, c.c, c.alpha, c.beta, c.gamma
}

// Fractional converts a Cartesian point to fractional coordinates.
func (c *Cell) Fractional(p Vec3) Vec3 {
	pv := mat.NewVecDense(3, []float64{p[0], p[1], p[2]})
	var out mat.VecDense
	out.MulVec(c.inverse.T(), pv)
	return Vec3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// Cartesian converts a fractional point to Cartesian coordinates.
func (c *Cell) Cartesian(f Vec3) Vec3 {
	fv := mat.NewVecDense(3, []float64{f[0], f[1], f[2]})
	var out mat.VecDense
	out.MulVec(c.basis.T(), fv)
	return Vec3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// LatticeVector returns the Cartesian lattice vector for axis 0 (a),
// 1 (b), or 2 (c).
func (c *Cell) LatticeVector(axis int) Vec3 {
	return rowVec(c.basis, axis)
}

// MinimumSupercell returns the smallest integer triple (nx, ny, nz) such
// that every perpendicular width of the resulting supercell is at least
// 2*cutoff. Perpendicular width along an axis is volume / area of the
// opposite face.
func (c *Cell) MinimumSupercell(cutoff float64) (nx, ny, nz int) {
	av := rowVec(c.basis, 0)
	bv := rowVec(c.basis, 1)
	cv := rowVec(c.basis, 2)
	volume := math.Abs(dot(av, cross(bv, cv)))

	widthA := volume / norm(cross(bv, cv))
	widthB := volume / norm(cross(av, cv))
	widthC := volume / norm(cross(av, bv))

	nx = minFactor(widthA, cutoff)
	ny = minFactor(widthB, cutoff)
	nz = minFactor(widthC, cutoff)
	return
}

func minFactor(width, cutoff float64) int {
	if width <= 0 {
		return 1
	}
	n := int(math.Ceil(2 * cutoff / width))
	if n < 1 {
		n = 1
	}
	return n
}

// UpdateSupercell multiplies each basis row by its corresponding integer
// factor and recomputes every cached derived quantity.
func (c *Cell) UpdateSupercell(nx, ny, nz int) error {
	factors := [3]float64{float64(nx), float64(ny), float64(nz)}
	data := make([]float64, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			data[row*3+col] = c.basis.At(row, col) * factors[row]
		}
	}
	basis := mat.NewDense(3, 3, data)
	var inv mat.Dense
	if err := inv.Inverse(basis); err != nil {
		return &InvalidCellError{Reason: "singular supercell basis: " + err.Error()}
	}
	c.basis = basis
	c.inverse = &inv
	c.computeParamsFromBasis()
	return c.computeTriclinicProjection()
}

func rowVec(m *mat.Dense, row int) Vec3 {
	return Vec3{m.At(row, 0), m.At(row, 1), m.At(row, 2)}
}

func norm(v Vec3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func angleDeg(a, b Vec3) float64 {
	cosTheta := dot(a, b) / (norm(a) * norm(b))
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta) / degToRad
}
