/*
Package topogen implements the simulation assembler: the orchestration
pass that turns a populated lattice.Graph into a fully typed topology
ready for text emission, per spec.md §4.4.

Grounded on lammps_main.py's driver function and structure_data.py's
Structure.compute_topology_information (original_source), generalized
away from interactive stdin prompts onto the Config record below.
*/
package topogen

// ForceFieldName selects which typing engine a fragment is run through.
type ForceFieldName string

const (
	UFF      ForceFieldName = "uff"
	DREIDING ForceFieldName = "dreiding"
)

// Config replaces the original's interactive per-molecule-type prompts
// (which force field to use for a guest molecule, whether to enable
// DREIDING hydrogen bonding) with an explicit, pre-decided record, per
// spec.md §9.
type Config struct {
	// Framework is the force field applied to the non-guest framework.
	Framework ForceFieldName
	// Default is the force field applied to any molecule type with no
	// entry in MoleculeOverrides.
	Default ForceFieldName
	// MoleculeOverrides maps a molecule-type label (assigned during
	// classification) to the force field that type should use.
	MoleculeOverrides map[string]ForceFieldName

	// HydrogenBonding enables DREIDING's H__HB retyping pass and the
	// explicit hydrogen-bond pair term.
	HydrogenBonding bool

	// BondScale is compute_bonding's covalent-radius-sum scale factor;
	// zero defaults to 0.9.
	BondScale float64

	// Cutoff is the non-bonded interaction cutoff (angstrom) used to
	// size the minimum supercell.
	Cutoff float64

	// GuestMinAtoms and GuestFraction are the connected-component
	// classification thresholds: a component smaller than GuestMinAtoms
	// atoms, or smaller than GuestFraction of the graph's original atom
	// count, is carved out as a guest molecule. Zero values default to
	// spec.md's 15 atoms / one-half.
	GuestMinAtoms int
	GuestFraction float64

	// UseMorseBonds selects DREIDING's Morse bond variant over the
	// default harmonic form.
	UseMorseBonds bool

	// ExpandGuests also runs supercell expansion on carved-out guest
	// subgraphs (spec.md §4.4 step 5's "optionally the subgraphs"). Off
	// by default: guest molecules are usually small enough that one copy
	// per framework supercell already satisfies the non-bonded cutoff.
	ExpandGuests bool
}

func (c Config) guestMinAtoms() int {
	if c.GuestMinAtoms > 0 {
		return c.GuestMinAtoms
	}
	return 15
}

func (c Config) guestFraction() float64 {
	if c.GuestFraction > 0 {
		return c.GuestFraction
	}
	return 0.5
}

func (c Config) bondScale() float64 {
	if c.BondScale > 0 {
		return c.BondScale
	}
	return 0.9
}

func (c Config) forceFieldFor(moleculeType string) ForceFieldName {
	if ff, ok := c.MoleculeOverrides[moleculeType]; ok {
		return ff
	}
	if c.Default != "" {
		return c.Default
	}
	return c.Framework
}
