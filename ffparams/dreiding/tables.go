/*
Package dreiding implements the DREIDING typing engine: atom-label
detection (sharing UFF's organic label convention plus an H-bond-donor
retyping pass), and bond/angle/dihedral/improper/pair parameterization
against a static per-label table.

Grounded on ForceFields.py's DREIDING class (original_source).
*/
package dreiding

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

//go:embed param_files/*
var paramFiles embed.FS

// AtomParams holds the per-label row of the DREIDING parameter table.
type AtomParams struct {
	Label  string
	R0     float64 // equilibrium bond radius contribution, angstrom
	Theta0 float64 // degrees
	VdwR0  float64 // van der Waals radius, angstrom (LJ r_min)
	VdwD0  float64 // van der Waals well depth, kcal/mol
}

// Table is keyed by DREIDING label.
var Table map[string]AtomParams

func init() {
	Table = make(map[string]AtomParams)
	f, err := paramFiles.Open("param_files/dreiding_atoms.csv")
	if err != nil {
		panic("dreiding: " + err.Error())
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		panic("dreiding: " + err.Error())
	}
	for _, row := range rows[1:] {
		p, err := parseRow(row)
		if err != nil {
			panic("dreiding: " + err.Error())
		}
		Table[p.Label] = p
	}
}

func parseRow(row []string) (AtomParams, error) {
	if len(row) != 5 {
		return AtomParams{}, fmt.Errorf("malformed dreiding_atoms.csv row: %v", row)
	}
	r0, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return AtomParams{}, err
	}
	theta0, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return AtomParams{}, err
	}
	vdwR0, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return AtomParams{}, err
	}
	vdwD0, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return AtomParams{}, err
	}
	return AtomParams{Label: row[0], R0: r0, Theta0: theta0, VdwR0: vdwR0, VdwD0: vdwD0}, nil
}

// ElementFallback returns the first table entry whose label names the
// given element symbol.
func ElementFallback(element string) (AtomParams, bool) {
	if p, ok := Table[element]; ok {
		return p, true
	}
	labels := make([]string, 0, len(Table))
	for l := range Table {
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j-1] > labels[j]; j-- {
			labels[j-1], labels[j] = labels[j], labels[j-1]
		}
	}
	for _, label := range labels {
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
