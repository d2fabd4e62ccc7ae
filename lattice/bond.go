package lattice

import (
	"fmt"

	"github.com/corrinlane/latticeff/ffparams"
)

// SymFlag is a bond's periodic-image tag: "." for an intra-cell bond, or
// "1_ijk" where i, j, k are decimal digits offset by 5 (5 = no shift, 4 =
// -1, 6 = +1), naming which of the 27 neighbouring image cells the
// second endpoint's minimum-image partner lives in.
type SymFlag string

// NoShift is the symmetry flag for a bond that does not cross a
// periodic boundary.
const NoShift SymFlag = "."

// NewSymFlag renders an (dx, dy, dz) integer shift, each in {-1,0,1}, as
// a SymFlag. A zero shift renders as NoShift rather than "1_555", since
// "." is the canonical form spec.md reserves for that case.
func NewSymFlag(dx, dy, dz int) SymFlag {
	if dx == 0 && dy == 0 && dz == 0 {
		return NoShift
	}
	return SymFlag(fmt.Sprintf("1_%d%d%d", 5+dx, 5+dy, 5+dz))
}

// Shift decodes a SymFlag back into its integer (dx, dy, dz), or
// (0,0,0) for NoShift.
func (f SymFlag) Shift() (dx, dy, dz int, err error) {
	if f == NoShift || f == "" {
		return 0, 0, 0, nil
	}
	var a, b, c int
	n, scanErr := fmt.Sscanf(string(f), "1_%1d%1d%1d", &a, &b, &c)
	if scanErr != nil || n != 3 {
		return 0, 0, 0, fmt.Errorf("lattice: malformed symmetry flag %q", f)
	}
	return a - 5, b - 5, c - 5, nil
}

// Bond is an edge of a Graph.
type Bond struct {
	EdgeID int // mgraph edge id

	// U, V are the endpoint atom ids in the order the caller supplied
	// them; CanonU, CanonV are the stable canonical ordering (from the
	// mgraph.Edge cache) used consistently by every derived term.
	U, V           int
	CanonU, CanonV int

	Order     float64 // one of 1.0, 1.5, 2.0, 3.0
	Length    float64 // minimum-image distance between endpoints
	SymFlag   SymFlag

	Potential ffparams.Potential
	TypeIndex int

	// DihedralTable is keyed by (a,d): the dihedral (a,b,c,d) lives on
	// the (b,c) edge keyed by its outer two atoms.
	DihedralTable map[[2]int]*Dihedral
}

func newBond(edgeID, u, v, canonU, canonV int) *Bond {
	return &Bond{
		EdgeID:        edgeID,
		U:             u,
		V:             v,
		CanonU:        canonU,
		CanonV:        canonV,
		Order:         1.0,
		SymFlag:       NoShift,
		DihedralTable: make(map[[2]int]*Dihedral),
	}
}

// Other returns the endpoint of the bond that isn't atom.
func (b *Bond) Other(atom int) int {
	if b.U == atom {
		return b.V
	}
	return b.U
}
