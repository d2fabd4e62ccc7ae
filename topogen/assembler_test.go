package topogen

import (
	"strings"
	"testing"

	"github.com/corrinlane/latticeff/io/cryst"
)

// Fixtures are built through io/cryst.Read, the same path cmd/latticeff
// drives, so these exercise the real reader -> assembler boundary rather
// than hand-built lattice.Graph values.

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
H1 H 10.0 10.0 10.0
H2 H 10.74 10.0 10.0
`

func TestAssembleDiatomicHydrogen(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(diatomicHydrogenCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	result, err := Assemble(pg, Config{Framework: UFF})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.Framework.NumAtoms() != 2 {
		t.Fatalf("NumAtoms() = %d, want 2", result.Framework.NumAtoms())
	}
	if result.Framework.NumBonds() != 1 {
		t.Fatalf("NumBonds() = %d, want 1", result.Framework.NumBonds())
	}
	if result.AtomTypes.Count() != 1 {
		t.Errorf("AtomTypes.Count() = %d, want 1 (both hydrogens equivalent)", result.AtomTypes.Count())
	}
	if result.BondTypes.Count() != 1 {
		t.Errorf("BondTypes.Count() = %d, want 1", result.BondTypes.Count())
	}
	if len(result.Angles()) != 0 || len(result.Dihedrals()) != 0 || len(result.Impropers()) != 0 {
		t.Errorf("a diatomic has no angles/dihedrals/impropers")
	}
}

// benzeneCIF is a single planar ring: six carbons on a 1.39 A circumradius
// hexagon, six hydrogens radially outward at a 1.09 A C-H bond length.
const benzeneCIF = `
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
C1 C 21.390 20.000 20.000
C2 C 20.695 21.204 20.000
C3 C 19.305 21.204 20.000
C4 C 18.610 20.000 20.000
C5 C 19.305 18.796 20.000
C6 C 20.695 18.796 20.000
H1 H 22.480 20.000 20.000
H2 H 21.240 22.150 20.000
H3 H 18.760 22.150 20.000
H4 H 17.520 20.000 20.000
H5 H 18.760 17.850 20.000
H6 H 21.240 17.850 20.000
`

func TestAssembleBenzeneTypeDeduplication(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(benzeneCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	result, err := Assemble(pg, Config{Framework: UFF})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.Framework.NumAtoms() != 12 {
		t.Fatalf("NumAtoms() = %d, want 12", result.Framework.NumAtoms())
	}
	if result.Framework.NumBonds() != 12 {
		t.Fatalf("NumBonds() = %d, want 12 (6 C-C ring + 6 C-H)", result.Framework.NumBonds())
	}
	// Every carbon and every hydrogen is symmetry-equivalent in a bare
	// ring, so typing should collapse to one atom type per element and
	// one bond type per bond kind.
	if got := result.AtomTypes.Count(); got != 2 {
		t.Errorf("AtomTypes.Count() = %d, want 2", got)
	}
	if got := result.BondTypes.Count(); got != 2 {
		t.Errorf("BondTypes.Count() = %d, want 2", got)
	}
	if got := result.AngleTypes.Count(); got != 2 {
		t.Errorf("AngleTypes.Count() = %d, want 2", got)
	}
}

// rockSaltCIF is a single NaCl formula unit in a primitive cubic cell
// small enough that each ion's nearest neighbours of the opposite
// species sit across a periodic boundary.
const rockSaltCIF = `
data_nacl
_cell_length_a 2.82
_cell_length_b 2.82
_cell_length_c 2.82
_cell_angle_alpha 90.0
_cell_angle_beta 90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_cartn_x
_atom_site_cartn_y
_atom_site_cartn_z
Na1 Na 0.0 0.0 0.0
Cl1 Cl 1.41 1.41 1.41
`

func TestAssembleRockSaltCrossBoundaryBonding(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(rockSaltCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	result, err := Assemble(pg, Config{Framework: UFF})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// In this body-centred arrangement each ion has eight nearest
	// neighbours of the opposite species, all at 2.82/2*sqrt(3) ~ 2.44 A.
	// In this reduced two-atom cell the bonding pass only ever sees the
	// single Na-Cl pair once, under the minimum-image convention, so
	// exactly one bond is formed between the two atoms in the
	// asymmetric unit.
	if result.Framework.NumAtoms() != 2 {
		t.Fatalf("NumAtoms() = %d, want 2", result.Framework.NumAtoms())
	}
	if result.Framework.NumBonds() == 0 {
		t.Fatalf("expected at least one Na-Cl bond across the periodic boundary")
	}
	if got := result.AtomTypes.Count(); got != 2 {
		t.Errorf("AtomTypes.Count() = %d, want 2 (Na, Cl)", got)
	}
}

// frameworkWithGuestWaterCIF places an isolated, non-bonded-to-framework
// water molecule (O-H 0.96 A, the standard value) next to a small
// covalent framework fragment far enough away that it forms its own
// connected component.
const frameworkWithGuestWaterCIF = `
data_framework_guest
_cell_length_a 30.0
_cell_length_b 30.0
_cell_length_c 30.0
_cell_angle_alpha 90.0
_cell_angle_beta 90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_type_symbol
_atom_site_cartn_x
_atom_site_cartn_y
_atom_site_cartn_z
C1 C 5.000 5.000 5.000
C2 C 6.390 5.000 5.000
C3 C 7.080 6.204 5.000
C4 C 6.390 7.408 5.000
C5 C 5.000 7.408 5.000
C6 C 4.310 6.204 5.000
H1 H 4.455 4.056 5.000
H2 H 6.935 4.056 5.000
H3 H 8.170 6.204 5.000
H4 H 6.935 8.352 5.000
H5 H 4.455 8.352 5.000
H6 H 3.220 6.204 5.000
O1 O 20.000 20.000 20.000
H7 H 20.760 20.586 20.000
H8 H 19.240 20.586 20.000
`

func TestAssembleCarvesGuestWater(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(frameworkWithGuestWaterCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	result, err := Assemble(pg, Config{Framework: UFF, Default: UFF, GuestMinAtoms: 4})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(result.MoleculeTypes) != 1 {
		t.Fatalf("MoleculeTypes count = %d, want 1 (the carved water)", len(result.MoleculeTypes))
	}
	mt := result.MoleculeTypes[0]
	if mt.Size() != 3 {
		t.Errorf("carved molecule size = %d, want 3 (water)", mt.Size())
	}
	if len(mt.Members) != 1 {
		t.Errorf("expected exactly one water instance, got %d", len(mt.Members))
	}
	// The benzene ring (12 atoms) stays behind as the framework, plus
	// the merged-back water (3 atoms).
	if result.Framework.NumAtoms() != 15 {
		t.Errorf("merged Framework.NumAtoms() = %d, want 15", result.Framework.NumAtoms())
	}
}

func TestAssembleSupercellExpansion(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(benzeneCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	// A cutoff comfortably larger than the 40 A cell forces at least a
	// doubling along every axis that the minimum-image convention alone
	// wouldn't satisfy.
	result, err := Assemble(pg, Config{Framework: UFF, Cutoff: 45})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.Framework.NumAtoms() <= 12 {
		t.Fatalf("expected supercell expansion to multiply the 12-atom cell, got %d atoms", result.Framework.NumAtoms())
	}
	if result.Framework.NumAtoms()%12 != 0 {
		t.Errorf("expanded atom count %d is not a whole multiple of the 12-atom unit cell", result.Framework.NumAtoms())
	}
}

func TestResultWarningsEmptyOnCleanAssembly(t *testing.T) {
	pg, err := cryst.Read(strings.NewReader(diatomicHydrogenCIF))
	if err != nil {
		t.Fatalf("cryst.Read: %v", err)
	}
	result, err := Assemble(pg, Config{Framework: UFF})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !result.Warnings.Empty() {
		t.Errorf("expected no warnings for a fully parameterized diatomic, got %v", result.Warnings.Strings())
	}
}
