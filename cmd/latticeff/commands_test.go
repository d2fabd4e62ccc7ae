package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Testing the CLI follows the teacher's poly/commands_test.go approach:
// spoof app.Writer/app.Reader, drive application() through app.Run with
// an explicit args slice, rather than exec-ing the built binary.

const diatomicHydrogenCIF = `data_h2
_cell_length_a    20.000
_cell_length_b    20.000
_cell_length_c    20.000
_cell_angle_alpha 90.000
_cell_angle_beta  90.000
_cell_angle_gamma 90.000
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_cartn_x
_atom_site_cartn_y
_atom_site_cartn_z
H1 H 10.000 10.000 10.000
H2 H 10.740 10.000 10.000
`

func TestAssembleCommandWritesDataAndControlFiles(t *testing.T) {
	dir := t.TempDir()
	cifPath := filepath.Join(dir, "h2.cif")
	if err := os.WriteFile(cifPath, []byte(diatomicHydrogenCIF), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outBase := filepath.Join(dir, "h2")

	var writeBuffer bytes.Buffer
	app := application()
	app.Writer = &writeBuffer

	args := []string{"latticeff", "--out", outBase, cifPath}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for _, ext := range []string{".data", ".in"} {
		path := outBase + ext
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	data, err := os.ReadFile(outBase + ".data")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Contains(data, []byte("2 atoms")) {
		t.Errorf("data file missing atom count:\n%s", data)
	}
}

func TestAssembleCommandRejectsUnknownForceField(t *testing.T) {
	dir := t.TempDir()
	cifPath := filepath.Join(dir, "h2.cif")
	if err := os.WriteFile(cifPath, []byte(diatomicHydrogenCIF), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var writeBuffer bytes.Buffer
	app := application()
	app.Writer = &writeBuffer

	args := []string{"latticeff", "--forcefield", "bogus", cifPath}
	if err := app.Run(args); err == nil {
		t.Fatal("expected an error for an unknown --forcefield value")
	}
}
