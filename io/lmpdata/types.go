/*
Package lmpdata renders a topogen.Result to the pair of text files a
LAMMPS run needs: the data file (box, masses, coefficient tables, the
Atoms/Bonds/Angles/Dihedrals/Impropers sections) and the control file
(styles, kspace, special commands, a minimization preamble), per
spec.md §6.

Section names are grounded on kpotier/lmpsdat's Key/Name table
(other_examples) — that package models each LAMMPS data-file section as
a Name constant shared by its decode and encode paths; this package only
ever encodes, so the Name table is kept as a plain set of section-header
string constants rather than carrying over the full Key interface (no
Decode/Keyword/SetKeys machinery this writer never needs).
*/
package lmpdata

// Section is a LAMMPS data-file section header, written verbatim as its
// own line before that section's body.
type Section string

const (
	SectionMasses            Section = "Masses"
	SectionPairCoeffs        Section = "Pair Coeffs"
	SectionBondCoeffs        Section = "Bond Coeffs"
	SectionAngleCoeffs       Section = "Angle Coeffs"
	SectionDihedralCoeffs    Section = "Dihedral Coeffs"
	SectionImproperCoeffs    Section = "Improper Coeffs"
	SectionBondBond          Section = "BondBond Coeffs"
	SectionBondAngle         Section = "BondAngle Coeffs"
	SectionMiddleBondTorsion Section = "MiddleBondTorsion Coeffs"
	SectionEndBondTorsion    Section = "EndBondTorsion Coeffs"
	SectionAngleTorsion      Section = "AngleTorsion Coeffs"
	SectionAngleAngleTorsion Section = "AngleAngleTorsion Coeffs"
	SectionBondBond13        Section = "BondBond13 Coeffs"
	SectionAngleAngle        Section = "AngleAngle Coeffs"
	SectionAtoms             Section = "Atoms"
	SectionBonds             Section = "Bonds"
	SectionAngles            Section = "Angles"
	SectionDihedrals         Section = "Dihedrals"
	SectionImpropers         Section = "Impropers"
)

// crossTermSections maps a Class2 potential's CrossTerms key (spec.md
// §6's cross-term names) to the data-file section it's written under.
// Angle-level cross terms (BondBond, BondAngle) live on angle-typed
// Class2 potentials; the torsion/BondBond13 family on dihedral-typed
// ones; AngleAngle on improper-typed ones.
var crossTermSections = map[string]Section{
	"BondBond":          SectionBondBond,
	"BondAngle":         SectionBondAngle,
	"MiddleBondTorsion": SectionMiddleBondTorsion,
	"EndBondTorsion":    SectionEndBondTorsion,
	"AngleTorsion":      SectionAngleTorsion,
	"AngleAngleTorsion": SectionAngleAngleTorsion,
	"BondBond13":        SectionBondBond13,
	"AngleAngle":        SectionAngleAngle,
}
