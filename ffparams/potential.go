/*
Package ffparams defines the tagged-union "Potential" values attached to
every topological term (bond, angle, dihedral, improper, pair) and the
machinery to render them to LAMMPS coefficient syntax and to derive a
de-duplication signature from that rendering.

Each functional form is its own Go type implementing Potential; there is
deliberately no single "Potential struct with a Kind enum and a float
array" — that loses the ability for gofmt/govet and callers to tell forms
apart at compile time, and was the shape create_cluster.py / ForceFields.py
worked around with stringly-typed dispatch.
*/
package ffparams

import "fmt"

// Potential is satisfied by every bond/angle/dihedral/improper/pair
// functional form. Style returns the LAMMPS style keyword (e.g.
// "harmonic", "class2", "lj/cut/coul/long") used to pick a single-style
// vs hybrid coefficient section; Render returns the coefficient line's
// numeric body (no leading index, no trailing comment).
type Potential interface {
	Style() string
	Render() string
}

// -- Bond potentials ---------------------------------------------------

// Harmonic is the UFF/DREIDING harmonic bond form: E = K*(r-r0)^2.
type Harmonic struct {
	K, R0 float64
}

func (h Harmonic) Style() string  { return "harmonic" }
func (h Harmonic) Render() string { return fmt.Sprintf("%.6f %.6f", h.K, h.R0) }

// Morse is the DREIDING Morse-variant bond form: E = D*[(1-e^-a(r-r0))^2 - 1].
type Morse struct {
	D, Alpha, R0 float64
}

func (m Morse) Style() string  { return "morse" }
func (m Morse) Render() string { return fmt.Sprintf("%.6f %.6f %.6f", m.D, m.Alpha, m.R0) }

// Class2 is a class-2 bond/angle/dihedral/improper form carrying a
// primary term plus the cross-coupling coefficients spec.md's Data File
// section lists (BondBond, BondAngle, ...). Only the primary
// coefficients live here; cross-term coefficients are rendered from the
// same struct by the writer, keyed by CrossTerms.
type Class2 struct {
	Primary    []float64
	CrossTerms map[string][]float64
}

func (c Class2) Style() string { return "class2" }
func (c Class2) Render() string {
	return renderFloats(c.Primary)
}

// -- Angle potentials ---------------------------------------------------

// CosineSquared is DREIDING's non-linear angle form:
// E = K*(cos(theta) - cos(theta0))^2. The DREIDING typer folds the
// 1/(2*sin^2(theta0)) factor into K.
type CosineSquared struct {
	K, Theta0 float64
}

func (c CosineSquared) Style() string  { return "cosine/squared" }
func (c CosineSquared) Render() string { return fmt.Sprintf("%.6f %.6f", c.K, c.Theta0) }

// Cosine is DREIDING's linear-angle special case: E = K*(1+cos(theta)).
type Cosine struct {
	K float64
}

func (c Cosine) Style() string  { return "cosine" }
func (c Cosine) Render() string { return fmt.Sprintf("%.6f", c.K) }

// Fourier is UFF's general angle Fourier form:
// E = K*(C0 + C1*cos(theta) + C2*cos(2*theta)).
type Fourier struct {
	K, C0, C1, C2 float64
}

func (f Fourier) Style() string { return "fourier" }
func (f Fourier) Render() string {
	return fmt.Sprintf("%.6f %.6f %.6f %.6f", f.K, f.C0, f.C1, f.C2)
}

// FourierSimple is UFF's two-term Fourier form used for linear, trigonal
// planar, square-planar and octahedral centers:
// E = K*(1 + C*cos(N*theta)). The UFF typer folds the 1/n^2 factor into
// K, and C is -1 except for the 90-degree n=2 case (C = +1).
type FourierSimple struct {
	K     float64
	C     float64 // +1 or -1 per UFF's c coefficient
	N     int
}

func (f FourierSimple) Style() string { return "fourier/simple" }
func (f FourierSimple) Render() string {
	return fmt.Sprintf("%.6f %.6f %d", f.K, f.C, f.N)
}

// -- Dihedral / improper potentials -------------------------------------

// Harmonic1D is the LAMMPS-style dihedral harmonic form used by both the
// UFF and the DREIDING dihedral terms. UFF stores d = -cos(n*phi0), which
// is +1 or -1, for E = K*(1 + d*cos(n*phi)); DREIDING stores
// d = n*phi0 + 180, a phase in degrees (540 for n=2, phi0=180).
type Harmonic1D struct {
	K    float64
	D    int // +1 or -1 (UFF); n*phi0 + 180 (DREIDING)
	N    int
}

func (h Harmonic1D) Style() string  { return "harmonic" }
func (h Harmonic1D) Render() string { return fmt.Sprintf("%.6f %d %d", h.K, h.D, h.N) }

// Cosine3 is UFF's three-term improper form:
// E = K*(C0 + C1*cos(omega) + C2*cos(2*omega)).
type Cosine3 struct {
	K, C0, C1, C2 float64
}

func (c Cosine3) Style() string { return "cosine/periodic" }
func (c Cosine3) Render() string {
	return fmt.Sprintf("%.6f %.6f %.6f %.6f", c.K, c.C0, c.C1, c.C2)
}

// Umbrella is DREIDING's improper form: E = K*(1 - cos(omega)) with
// Omega0 = 0. The typer always builds this one form and only varies K
// with the central atom's hybridization (40, or 40/3 for sp2/aromatic).
type Umbrella struct {
	K, Omega0 float64
}

func (u Umbrella) Style() string  { return "umbrella" }
func (u Umbrella) Render() string { return fmt.Sprintf("%.6f %.6f", u.K, u.Omega0) }

// -- Pair potentials ------------------------------------------------------

// LennardJones is the default UFF/DREIDING 12-6 pair form.
type LennardJones struct {
	Epsilon, Sigma float64
}

func (l LennardJones) Style() string  { return "lj/cut/coul/long" }
func (l LennardJones) Render() string { return fmt.Sprintf("%.6f %.6f", l.Epsilon, l.Sigma) }

// Buckingham is the exp-6 pair form some DREIDING variants use:
// E = A*exp(-r/rho) - C/r^6.
type Buckingham struct {
	A, Rho, C float64
}

func (b Buckingham) Style() string  { return "buck/coul/long" }
func (b Buckingham) Render() string { return fmt.Sprintf("%.6f %.6f %.6f", b.A, b.Rho, b.C) }

// HBondMorse is DREIDING's explicit hydrogen-bond pair term: a Morse
// potential restricted to donor-acceptor pairs, carrying the donor atom
// type as LAMMPS's hbond/dreiding/morse style requires.
type HBondMorse struct {
	DonorType int
	D0, Alpha, R0 float64
	AngleExp  int // LAMMPS hbond styles take an angle-dependence exponent, conventionally 4
}

func (h HBondMorse) Style() string { return "hbond/dreiding/morse" }
func (h HBondMorse) Render() string {
	return fmt.Sprintf("%d i %.6f %.6f %.6f %d", h.DonorType, h.D0, h.Alpha, h.R0, h.AngleExp)
}

func renderFloats(vals []float64) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.6f", v)
	}
	return out
}
