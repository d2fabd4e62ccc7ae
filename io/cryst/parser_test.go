package cryst

import (
	"bytes"
	"strings"
	"testing"
)

const diatomicHydrogenCIF = `
data_h2
_cell_length_a 20.0
_cell_length_b 20.0
_cell_length_c 20.0
_cell_angle_alpha 90.0
_cell_angle_beta 90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_cartn_x
_atom_site_cartn_y
_atom_site_cartn_z
H1 H 0.0 0.0 0.0
H2 H 0.74 0.0 0.0
`

func TestReadDiatomicHydrogen(t *testing.T) {
	pg, err := Read(strings.NewReader(diatomicHydrogenCIF))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pg.NumAtoms() != 2 {
		t.Fatalf("NumAtoms() = %d, want 2", pg.NumAtoms())
	}
	for _, id := range pg.AtomIDs() {
		if pg.Atom(id).Element != "H" {
			t.Errorf("atom %d element = %q, want H", id, pg.Atom(id).Element)
		}
	}
	if pg.Cell() == nil {
		t.Fatal("Cell() is nil")
	}
}

const benzeneCIFWithBonds = `
data_benzene
_cell_length_a 40.0
_cell_length_b 40.0
_cell_length_c 40.0
_cell_angle_alpha 90.0
_cell_angle_beta 90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_cartn_x
_atom_site_cartn_y
_atom_site_cartn_z
C1 C 1.204 0.695 0.0
C2 C 1.204 -0.695 0.0
loop_
_geom_bond_atom_site_label_1
_geom_bond_atom_site_label_2
_geom_bond_distance
_geom_bond_site_symmetry_2
_ccdc_geom_bond_type
C1 C2 1.390 . A
`

func TestReadBondLoopOrderAndSymmetry(t *testing.T) {
	pg, err := Read(strings.NewReader(benzeneCIFWithBonds))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pg.NumBonds() != 1 {
		t.Fatalf("NumBonds() = %d, want 1", pg.NumBonds())
	}
	b := pg.Bond(pg.BondIDs()[0])
	if b.Order != 1.5 {
		t.Errorf("Order = %v, want 1.5 (aromatic)", b.Order)
	}
	if b.Length != 1.390 {
		t.Errorf("Length = %v, want 1.390", b.Length)
	}
	if b.SymFlag != "." {
		t.Errorf("SymFlag = %q, want NoShift", b.SymFlag)
	}
}

func TestReadUnknownElementAborts(t *testing.T) {
	bad := strings.Replace(diatomicHydrogenCIF, "H1 H", "H1 Xx", 1)
	if _, err := Read(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an UnknownElement error, got nil")
	}
}

func TestReadMissingCellTagIsSyntaxError(t *testing.T) {
	missing := strings.Replace(diatomicHydrogenCIF, "_cell_length_a 20.0\n", "", 1)
	_, err := Read(strings.NewReader(missing))
	if err == nil {
		t.Fatal("expected a syntax error, got nil")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("err = %T, want *SyntaxError", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	pg, err := Read(strings.NewReader(benzeneCIFWithBonds))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, pg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	pg2, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read(round trip): %v", err)
	}
	if pg2.NumAtoms() != pg.NumAtoms() {
		t.Errorf("round-tripped NumAtoms() = %d, want %d", pg2.NumAtoms(), pg.NumAtoms())
	}
	if pg2.NumBonds() != pg.NumBonds() {
		t.Errorf("round-tripped NumBonds() = %d, want %d", pg2.NumBonds(), pg.NumBonds())
	}
}
