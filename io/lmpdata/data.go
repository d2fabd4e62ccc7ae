package lmpdata

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/lattice"
	"github.com/corrinlane/latticeff/topogen"
)

// WriteData renders result as a LAMMPS data file (atom_style full),
// grounded on lammps_main.py's construct_data_file (original_source):
// header counts, box bounds, one Coeffs section per non-empty term
// kind (skipped rather than emitted empty, per spec.md §6), then the
// Atoms/Bonds/Angles/Dihedrals/Impropers body sections.
func WriteData(w io.Writer, result *topogen.Result) error {
	pg := result.Framework
	var b strings.Builder

	b.WriteString("LAMMPS data file generated by latticeff\n\n")
	writeHeaderCounts(&b, result)
	b.WriteString("\n")
	writeBoxBounds(&b, result)

	atomMasses := firstAtomPerType(pg)
	writeMasses(&b, result, atomMasses)

	pairStyle, _ := result.PairStyleKeyword()
	if pairStyle != "none" && pairStyle != "hybrid" {
		writePairCoeffs(&b, result)
	}

	writeBondCoeffs(&b, result)
	writeAngleCoeffs(&b, result)
	writeDihedralCoeffs(&b, result)
	writeImproperCoeffs(&b, result)

	writeAtoms(&b, pg)
	writeBonds(&b, pg)
	writeAngles(&b, result)
	writeDihedrals(&b, result)
	writeImpropers(&b, result)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeaderCounts(b *strings.Builder, result *topogen.Result) {
	pg := result.Framework
	fmt.Fprintf(b, "%d atoms\n", pg.NumAtoms())
	fmt.Fprintf(b, "%d bonds\n", pg.NumBonds())
	fmt.Fprintf(b, "%d angles\n", len(result.Angles()))
	fmt.Fprintf(b, "%d dihedrals\n", len(result.Dihedrals()))
	fmt.Fprintf(b, "%d impropers\n", len(result.Impropers()))
	fmt.Fprintf(b, "\n")
	fmt.Fprintf(b, "%d atom types\n", result.AtomTypes.Count())
	fmt.Fprintf(b, "%d bond types\n", result.BondTypes.Count())
	fmt.Fprintf(b, "%d angle types\n", result.AngleTypes.Count())
	fmt.Fprintf(b, "%d dihedral types\n", result.DihedralTypes.Count())
	fmt.Fprintf(b, "%d improper types\n", result.ImproperTypes.Count())
}

// writeBoxBounds emits the box bounds, with a tilt line only when the
// cell is actually triclinic. lammps_main.py always emits the "xy xz
// yz" line (its xy/xz/yz come out 0.0 for an orthogonal cell, which
// LAMMPS accepts but is noise); spec.md §6 asks for the tilt line only
// "if any of xy, xz, yz are non-zero", and that's the rule followed
// here — see DESIGN.md.
func writeBoxBounds(b *strings.Builder, result *topogen.Result) {
	c := result.Framework.Cell()
	fmt.Fprintf(b, "%.6f %.6f xlo xhi\n", 0.0, c.Lx)
	fmt.Fprintf(b, "%.6f %.6f ylo yhi\n", 0.0, c.Ly)
	fmt.Fprintf(b, "%.6f %.6f zlo zhi\n", 0.0, c.Lz)
	if c.Xy != 0 || c.Xz != 0 || c.Yz != 0 {
		fmt.Fprintf(b, "%.6f %.6f %.6f xy xz yz\n", c.Xy, c.Xz, c.Yz)
	}
}

func writeMasses(b *strings.Builder, result *topogen.Result, byType map[int]*lattice.Atom) {
	fmt.Fprintf(b, "\nMasses\n\n")
	for t := 1; t <= result.AtomTypes.Count(); t++ {
		a := byType[t]
		label, mass := "", 0.0
		if a != nil {
			label, mass = a.ForceFieldLabel, a.Mass
		}
		fmt.Fprintf(b, "%d %.4f # %s\n", t, mass, label)
	}
}

func writePairCoeffs(b *strings.Builder, result *topogen.Result) {
	if len(result.Pairs) == 0 {
		return
	}
	fmt.Fprintf(b, "\nPair Coeffs\n\n")
	for t := 1; t <= result.AtomTypes.Count(); t++ {
		for _, p := range result.Pairs {
			if p.TypeA == t && p.TypeB == t {
				fmt.Fprintf(b, "%d %s\n", t, p.Potential.Render())
				break
			}
		}
	}
}

func writeBondCoeffs(b *strings.Builder, result *topogen.Result) {
	if result.BondTypes.Count() == 0 {
		return
	}
	example := make(map[int]ffparams.Potential)
	for _, eid := range result.Framework.BondIDs() {
		bond := result.Framework.Bond(eid)
		if bond.Potential == nil {
			continue
		}
		if _, ok := example[bond.TypeIndex]; !ok {
			example[bond.TypeIndex] = bond.Potential
		}
	}
	writeCoeffSection(b, "Bond Coeffs", example, result.BondTypes.Count())
}

func writeAngleCoeffs(b *strings.Builder, result *topogen.Result) {
	if result.AngleTypes.Count() == 0 {
		return
	}
	example := make(map[int]ffparams.Potential)
	for _, ang := range result.Angles() {
		if ang.Potential == nil {
			continue
		}
		if _, ok := example[ang.TypeIndex]; !ok {
			example[ang.TypeIndex] = ang.Potential
		}
	}
	writeCoeffSection(b, "Angle Coeffs", example, result.AngleTypes.Count())
}

func writeDihedralCoeffs(b *strings.Builder, result *topogen.Result) {
	if result.DihedralTypes.Count() == 0 {
		return
	}
	example := make(map[int]ffparams.Potential)
	for _, dih := range result.Dihedrals() {
		if dih.Potential == nil {
			continue
		}
		if _, ok := example[dih.TypeIndex]; !ok {
			example[dih.TypeIndex] = dih.Potential
		}
	}
	writeCoeffSection(b, "Dihedral Coeffs", example, result.DihedralTypes.Count())
}

func writeImproperCoeffs(b *strings.Builder, result *topogen.Result) {
	if result.ImproperTypes.Count() == 0 {
		return
	}
	example := make(map[int]ffparams.Potential)
	for _, imp := range result.Impropers() {
		if imp.Potential == nil {
			continue
		}
		if _, ok := example[imp.TypeIndex]; !ok {
			example[imp.TypeIndex] = imp.Potential
		}
	}
	writeCoeffSection(b, "Improper Coeffs", example, result.ImproperTypes.Count())
}

// writeCoeffSection writes a term kind's primary Coeffs section plus,
// when any representative potential is a Class2 variant, its
// cross-coupling sections (spec.md §6's BondBond/BondAngle/... tables).
// UFF and DREIDING never produce Class2 potentials, so the cross-term
// path only fires for a hand-built or future class-2 typing engine; it
// is kept because spec.md names those sections unconditionally.
func writeCoeffSection(b *strings.Builder, section string, byType map[int]ffparams.Potential, count int) {
	fmt.Fprintf(b, "\n%s\n\n", section)
	for t := 1; t <= count; t++ {
		if p, ok := byType[t]; ok {
			fmt.Fprintf(b, "%d %s\n", t, p.Render())
		}
	}

	names := make(map[string]bool)
	for _, p := range byType {
		if c2, ok := p.(ffparams.Class2); ok {
			for name := range c2.CrossTerms {
				names[name] = true
			}
		}
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		crossSection, ok := crossTermSections[name]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "\n%s\n\n", crossSection)
		for t := 1; t <= count; t++ {
			c2, ok := byType[t].(ffparams.Class2)
			if !ok {
				continue
			}
			fmt.Fprintf(b, "%d %s\n", t, renderFloats(c2.CrossTerms[name]))
		}
	}
}

func renderFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return strings.Join(parts, " ")
}

func writeAtoms(b *strings.Builder, pg *lattice.Graph) {
	fmt.Fprintf(b, "\nAtoms\n\n")
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		molid, _ := a.Aux["molid"].(int)
		fmt.Fprintf(b, "%d %d %d %.6f %.6f %.6f %.6f\n",
			a.ID, molid, a.TypeIndex, a.Charge,
			a.Cartesian[0], a.Cartesian[1], a.Cartesian[2])
	}
}

func writeBonds(b *strings.Builder, pg *lattice.Graph) {
	if pg.NumBonds() == 0 {
		return
	}
	fmt.Fprintf(b, "\nBonds\n\n")
	for i, eid := range pg.BondIDs() {
		bond := pg.Bond(eid)
		fmt.Fprintf(b, "%d %d %d %d\n", i+1, bond.TypeIndex, bond.U, bond.V)
	}
}

func writeAngles(b *strings.Builder, result *topogen.Result) {
	angles := result.Angles()
	if len(angles) == 0 {
		return
	}
	fmt.Fprintf(b, "\nAngles\n\n")
	for i, ang := range angles {
		fmt.Fprintf(b, "%d %d %d %d %d\n", i+1, ang.TypeIndex, ang.A, ang.B, ang.C)
	}
}

func writeDihedrals(b *strings.Builder, result *topogen.Result) {
	dihedrals := result.Dihedrals()
	if len(dihedrals) == 0 {
		return
	}
	fmt.Fprintf(b, "\nDihedrals\n\n")
	for i, dih := range dihedrals {
		fmt.Fprintf(b, "%d %d %d %d %d %d\n", i+1, dih.TypeIndex, dih.A, dih.B, dih.C, dih.D)
	}
}

func writeImpropers(b *strings.Builder, result *topogen.Result) {
	impropers := result.Impropers()
	if len(impropers) == 0 {
		return
	}
	fmt.Fprintf(b, "\nImpropers\n\n")
	for i, imp := range impropers {
		fmt.Fprintf(b, "%d %d %d %d %d %d\n", i+1, imp.TypeIndex, imp.A, imp.B, imp.C, imp.D)
	}
}

// firstAtomPerType returns one representative atom per atom type index,
// the first encountered in AtomIDs order (deterministic, since AtomIDs
// is insertion order).
func firstAtomPerType(pg *lattice.Graph) map[int]*lattice.Atom {
	out := make(map[int]*lattice.Atom)
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		if _, ok := out[a.TypeIndex]; !ok {
			out[a.TypeIndex] = a
		}
	}
	return out
}
