/*
Package elements is the shared periodic-table reference latticeff's
bonding inference and force-field typers both draw on: atomic number,
mass, covalent radii (single/double/triple bond radii where they
differ), and Pauling electronegativity. It is the one static lookup
table in the repo that both lattice and ffparams/{uff,dreiding} need, so
it lives beneath both rather than inside either.

Coverage is the practical subset this project's scenarios exercise
(organics, common halides, alkali/alkaline-earth and first-row
transition metals used in MOF nodes) rather than all 118 elements.
*/
package elements

// Element is one periodic-table entry.
type Element struct {
	Symbol          string
	AtomicNumber    int
	Mass            float64 // atomic mass units
	CovalentRadius  float64 // single-bond radius, angstrom
	RadiusSP2       float64 // 0 if not tabulated separately
	RadiusSP        float64 // 0 if not tabulated separately
	Electronegativity float64 // Pauling scale
}

// Table maps element symbols to their reference entry.
var Table = map[string]Element{
	"H":  {"H", 1, 1.00794, 0.354, 0, 0, 2.20},
	"B":  {"B", 5, 10.811, 0.838, 0.828, 0.716, 2.04},
	"C":  {"C", 6, 12.0107, 0.757, 0.732, 0.706, 2.55},
	"N":  {"N", 7, 14.0067, 0.700, 0.685, 0.656, 3.04},
	"O":  {"O", 8, 15.9994, 0.658, 0.634, 0.639, 3.44},
	"F":  {"F", 9, 18.9984, 0.668, 0, 0, 3.98},
	"Na": {"Na", 11, 22.9898, 1.539, 0, 0, 0.93},
	"Mg": {"Mg", 12, 24.3050, 1.421, 0, 0, 1.31},
	"Al": {"Al", 13, 26.9815, 1.244, 0, 0, 1.61},
	"Si": {"Si", 14, 28.0855, 1.117, 0, 0, 1.90},
	"P":  {"P", 15, 30.9738, 1.101, 0, 0, 2.19},
	"S":  {"S", 16, 32.065, 1.064, 1.049, 0, 2.58},
	"Cl": {"Cl", 17, 35.453, 1.044, 0, 0, 3.16},
	"K":  {"K", 19, 39.0983, 1.953, 0, 0, 0.82},
	"Ca": {"Ca", 20, 40.078, 1.761, 0, 0, 1.00},
	"Mn": {"Mn", 25, 54.9380, 1.390, 0, 0, 1.55},
	"Fe": {"Fe", 26, 55.845, 1.335, 0, 0, 1.83},
	"Co": {"Co", 27, 58.9332, 1.406, 0, 0, 1.88},
	"Ni": {"Ni", 28, 58.6934, 1.241, 0, 0, 1.91},
	"Cu": {"Cu", 29, 63.546, 1.311, 0, 0, 1.90},
	"Zn": {"Zn", 30, 65.39, 1.187, 0, 0, 1.65},
	"Br": {"Br", 35, 79.904, 1.192, 0, 0, 2.96},
	"Zr": {"Zr", 40, 91.224, 1.564, 0, 0, 1.33},
	"Mo": {"Mo", 42, 95.94, 1.467, 0, 0, 2.16},
	"Cd": {"Cd", 48, 112.411, 1.382, 0, 0, 1.69},
	"I":  {"I", 53, 126.9045, 1.382, 0, 0, 2.66},
}

// Organics is the set of elements the bonding/aromaticity rules treat as
// organic, per spec.md's compute_bonding and aromaticity perception
// (organics = {H, C, N, O, F, Cl, S, B}).
var Organics = map[string]bool{
	"H": true, "C": true, "N": true, "O": true,
	"F": true, "Cl": true, "S": true, "B": true,
}

// Metals is the set of elements cluster detection scans for. This
// mirrors the original's METALS constant: everything that is not a
// nonmetal/metalloid/halogen/noble gas in the tabulated subset above.
var Metals = map[string]bool{
	"Na": true, "Mg": true, "Al": true, "K": true, "Ca": true,
	"Mn": true, "Fe": true, "Co": true, "Ni": true, "Cu": true,
	"Zn": true, "Zr": true, "Mo": true, "Cd": true,
}

// CovalentRadius returns the single-bond covalent radius for a bare
// element symbol (compute_bonding's default case).
func CovalentRadius(symbol string) (float64, bool) {
	e, ok := Table[symbol]
	if !ok {
		return 0, false
	}
	return e.CovalentRadius, true
}

// RadiusForHybridization returns the covalent radius used for bond-order
// refinement's sp/sp2 length checks, falling back to the single-bond
// radius when a hybridization-specific radius isn't tabulated (mirrors
// the original's try/except KeyError fallback to COVALENT_RADII[elem]).
func RadiusForHybridization(symbol, hybridization string) (float64, bool) {
	e, ok := Table[symbol]
	if !ok {
		return 0, false
	}
	switch hybridization {
	case "sp2", "aromatic":
		if e.RadiusSP2 != 0 {
			return e.RadiusSP2, true
		}
	case "sp":
		if e.RadiusSP != 0 {
			return e.RadiusSP, true
		}
	}
	return e.CovalentRadius, true
}

// Mass returns the atomic mass for symbol, or 0, false if unknown.
func Mass(symbol string) (float64, bool) {
	e, ok := Table[symbol]
	if !ok {
		return 0, false
	}
	return e.Mass, true
}

// AtomicNumber returns the atomic number for symbol, or 0, false if unknown.
func AtomicNumber(symbol string) (int, bool) {
	e, ok := Table[symbol]
	if !ok {
		return 0, false
	}
	return e.AtomicNumber, true
}

// AtomicNumberOf returns the atomic number for symbol, or 0 if unknown.
// Convenience wrapper for callers (dihedral group-VIA checks) that need a
// bare value to pair up in a single multi-assignment statement.
func AtomicNumberOf(symbol string) int {
	n, _ := AtomicNumber(symbol)
	return n
}

// Electronegativity returns the Pauling electronegativity for symbol.
func Electronegativity(symbol string) (float64, bool) {
	e, ok := Table[symbol]
	if !ok {
		return 0, false
	}
	return e.Electronegativity, true
}
