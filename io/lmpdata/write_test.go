package lmpdata

import (
	"strings"
	"testing"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/elements"
	"github.com/corrinlane/latticeff/lattice"
	"github.com/corrinlane/latticeff/topogen"
)

func diatomicHydrogen(t *testing.T) *lattice.Graph {
	t.Helper()
	pg := lattice.New()
	c, err := cell.NewFromParams(20, 20, 20, 90, 90, 90)
	if err != nil {
		t.Fatalf("NewFromParams: %v", err)
	}
	pg.SetCell(c)

	a1 := pg.AddAtom("H", cell.Vec3{10, 10, 10})
	a1.AtomicNumber = elements.AtomicNumberOf("H")
	a1.Mass, _ = elements.Mass("H")
	a2 := pg.AddAtom("H", cell.Vec3{10.74, 10, 10})
	a2.AtomicNumber = elements.AtomicNumberOf("H")
	a2.Mass, _ = elements.Mass("H")
	return pg
}

func assembleHydrogen(t *testing.T) *topogen.Result {
	t.Helper()
	pg := diatomicHydrogen(t)
	result, err := topogen.Assemble(pg, topogen.Config{Framework: topogen.UFF})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return result
}

func TestWriteDataHeaderCounts(t *testing.T) {
	result := assembleHydrogen(t)

	var buf strings.Builder
	if err := WriteData(&buf, result); err != nil {
		t.Fatalf("WriteData: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2 atoms",
		"1 bonds",
		"0 angles",
		"0 dihedrals",
		"0 impropers",
		"1 atom types",
		"1 bond types",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("data file missing header line %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Masses") {
		t.Errorf("data file missing Masses section:\n%s", out)
	}
	if !strings.Contains(out, "Atoms") {
		t.Errorf("data file missing Atoms section:\n%s", out)
	}
	if !strings.Contains(out, "Bonds") {
		t.Errorf("data file missing Bonds section:\n%s", out)
	}
}

func TestWriteDataOmitsEmptySections(t *testing.T) {
	result := assembleHydrogen(t)

	var buf strings.Builder
	if err := WriteData(&buf, result); err != nil {
		t.Fatalf("WriteData: %v", err)
	}
	out := buf.String()

	for _, absent := range []string{"Angles\n", "Dihedrals\n", "Impropers\n", "Angle Coeffs", "Dihedral Coeffs", "Improper Coeffs"} {
		if strings.Contains(out, absent) {
			t.Errorf("data file should omit empty section %q:\n%s", absent, out)
		}
	}
}

func TestWriteControlStyles(t *testing.T) {
	result := assembleHydrogen(t)

	var buf strings.Builder
	opts := ControlOptions{Name: "h2", DataFile: "data.h2", PairCutoff: 8.5, KspaceTol: 0.001, Minimize: true}
	if err := WriteControl(&buf, result, opts); err != nil {
		t.Fatalf("WriteControl: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"units           real",
		"atom_style      full",
		"bond_style",
		"read_data       data.h2",
		"minimize        1.0e-4 1.0e-6 10000 100000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("control file missing line %q:\n%s", want, out)
		}
	}
}

func TestWriteControlNoMinimizeOmitsMinStyle(t *testing.T) {
	result := assembleHydrogen(t)

	var buf strings.Builder
	opts := ControlOptions{Name: "h2", DataFile: "data.h2", PairCutoff: 8.5}
	if err := WriteControl(&buf, result, opts); err != nil {
		t.Fatalf("WriteControl: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "min_style") {
		t.Errorf("control file should omit minimize block when Minimize is false:\n%s", out)
	}
}
