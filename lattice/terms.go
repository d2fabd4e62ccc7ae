package lattice

import "github.com/corrinlane/latticeff/ffparams"

// Angle is the ordered triple (A, B, C) centred on B.
type Angle struct {
	A, B, C   int
	Potential ffparams.Potential
	TypeIndex int
}

// Dihedral is the ordered quadruple (A, B, C, D) where (B, C) is a bond.
type Dihedral struct {
	A, B, C, D int
	Potential  ffparams.Potential
	TypeIndex  int
}

// Improper is the ordered quadruple (A, B, C, D) with central atom B and
// three substituents {A, C, D}.
type Improper struct {
	A, B, C, D int
	Potential  ffparams.Potential
	TypeIndex  int
}

// Pair is an unordered pair of atom *type* indices (not atom ids): one
// PairTerm exists per distinct pair of types once typing has completed,
// per spec.md §3 and §4.4 step 8.
type Pair struct {
	TypeA, TypeB int
	Potential    ffparams.Potential
	TypeIndex    int
}
