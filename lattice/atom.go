package lattice

import "github.com/corrinlane/latticeff/cell"

// Hybridization is the perceived electronic geometry of an atom.
type Hybridization string

const (
	SP       Hybridization = "sp"
	SP2      Hybridization = "sp2"
	SP3      Hybridization = "sp3"
	Aromatic Hybridization = "aromatic"
)

// Atom is a node of a Graph: one crystallographic site.
type Atom struct {
	ID int // graph-assigned id, 1-based, in insertion order; ids of removed atoms are not reused

	Element      string
	AtomicNumber int
	Mass         float64
	Cartesian    cell.Vec3
	Charge       float64

	Hybridization Hybridization
	ForceFieldLabel string
	TypeIndex       int // assigned once, at the end of topology inference

	Rings         []int // ring membership, by index into Graph.rings (back-reference by index, not deep copy)
	SpecialFlag   string  // set by inorganic-cluster detection
	HBondDonor    bool

	// AngleTable and ImproperTable are keyed by the *other* participants
	// of the term, per spec.md §3: an angle (a,b,c) lives in b's angle
	// table keyed by (a,c); an improper (a,b,c,d) lives in b's improper
	// table keyed by (a,c,d).
	AngleTable    map[[2]int]*Angle
	ImproperTable map[[3]int]*Improper

	// Aux holds reader-supplied metadata with no first-class slot (e.g.
	// a crystallographic site label), per SPEC_FULL.md §3.
	Aux map[string]any
}

func newAtom(id int) *Atom {
	return &Atom{
		ID:            id,
		Hybridization: SP3,
		AngleTable:    make(map[[2]int]*Angle),
		ImproperTable: make(map[[3]int]*Improper),
		Aux:           make(map[string]any),
	}
}

// Fractional returns the atom's fractional coordinates under the given
// cell. Fractional coordinates are always derived, never stored, so
// they can never drift out of sync with Cartesian + Cell.
func (a *Atom) Fractional(c *cell.Cell) cell.Vec3 {
	return c.Fractional(a.Cartesian)
}
