package lmpdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/corrinlane/latticeff/topogen"
)

// ControlOptions parameterizes WriteControl where lammps_main.py's
// construct_input_file (original_source) hardcoded a value: the cutoff
// distances baked into its "lj/cut/coul/long 8.50000 11.5" pair_style
// line, the kspace accuracy, and the structure name used to build the
// read_data/dump file names.
type ControlOptions struct {
	Name       string
	DataFile   string
	PairCutoff float64 // lj/coul real-space cutoff, angstrom
	CoulCutoff float64 // coul/long cutoff, angstrom (defaults to PairCutoff if zero)
	KspaceTol  float64
	Minimize   bool
}

func (o ControlOptions) coulCutoff() float64 {
	if o.CoulCutoff > 0 {
		return o.CoulCutoff
	}
	return o.PairCutoff
}

func (o ControlOptions) kspaceTol() float64 {
	if o.KspaceTol > 0 {
		return o.KspaceTol
	}
	return 0.001
}

// WriteControl renders result as a LAMMPS control (input) script,
// grounded on lammps_main.py's construct_input_file: fixed preamble,
// style lines (hybrid across whichever distinct forms the typing
// engines actually produced, via Result's StyleKeyword methods),
// kspace, read_data, explicit pair_coeff lines when the pair style
// isn't uniform, molecule-type atom groupings (spec.md §6; the
// original has no equivalent, since it never tracked per-instance
// molecule membership — see DESIGN.md), and a box-relax minimization.
func WriteControl(w io.Writer, result *topogen.Result, opts ControlOptions) error {
	var b strings.Builder

	writeSetting(&b, "units", "real")
	writeSetting(&b, "atom_style", "full")
	writeSetting(&b, "boundary", "p p p")
	writeSetting(&b, "dielectric", "1")
	b.WriteString("\n")

	pairStyle, pairForms := result.PairStyleKeyword()
	writeSetting(&b, "pair_style", pairStyleLine(pairStyle, pairForms, opts))

	bondStyle, bondForms := result.BondStyleKeyword()
	writeSetting(&b, "bond_style", styleLine(bondStyle, bondForms))

	angleStyle, angleForms := result.AngleStyleKeyword()
	writeSetting(&b, "angle_style", styleLine(angleStyle, angleForms))

	dihedralStyle, dihedralForms := result.DihedralStyleKeyword()
	writeSetting(&b, "dihedral_style", styleLine(dihedralStyle, dihedralForms))

	improperStyle, improperForms := result.ImproperStyleKeyword()
	writeSetting(&b, "improper_style", styleLine(improperStyle, improperForms))

	if pairNeedsKspace(pairForms) {
		writeSetting(&b, "kspace_style", fmt.Sprintf("ewald %g", opts.kspaceTol()))
	}
	b.WriteString("\n")

	writeSetting(&b, "box tilt", "large")
	writeSetting(&b, "read_data", opts.DataFile)

	if pairStyle == "hybrid" {
		writePairCoeffLines(&b, result, opts)
	}
	b.WriteString("\n")

	writeSetting(&b, "dump", fmt.Sprintf("%s_mov all xyz 1000 %s_mov.xyz", opts.Name, opts.Name))
	writeSetting(&b, "pair_modify", "tail yes mix arithmetic")
	writeMoleculeGroups(&b, result)

	if opts.Minimize {
		writeSetting(&b, "fix", "1 all box/relax tri 0.0 vmax 0.01")
		writeSetting(&b, "min_style", "cg")
		writeSetting(&b, "minimize", "1.0e-4 1.0e-6 10000 100000")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSetting(b *strings.Builder, keyword, value string) {
	fmt.Fprintf(b, "%-15s %s\n", keyword, value)
}

// styleLine renders a StyleKeyword result as a control-file style
// argument: the bare style name, or "hybrid" followed by every distinct
// form in use.
func styleLine(keyword string, forms []string) string {
	if keyword != "hybrid" {
		return keyword
	}
	return "hybrid " + strings.Join(forms, " ")
}

// pairStyleLine appends the coulomb/long-range tail lj/cut/coul/long
// needs to whichever pair forms are in play (grounded on the original's
// "lj/cut/coul/long 8.50000 11.5" line).
func pairStyleLine(keyword string, forms []string, opts ControlOptions) string {
	tag := func(style string) string {
		if style == "lj/cut/coul/long" || style == "buck/coul/long" {
			return fmt.Sprintf("%s %.5f %.5f", style, opts.PairCutoff, opts.coulCutoff())
		}
		return fmt.Sprintf("%s %.5f", style, opts.PairCutoff)
	}
	if keyword != "hybrid" {
		return tag(keyword)
	}
	parts := make([]string, len(forms))
	for i, f := range forms {
		parts[i] = tag(f)
	}
	return "hybrid " + strings.Join(parts, " ")
}

func pairNeedsKspace(forms []string) bool {
	for _, f := range forms {
		if strings.Contains(f, "coul/long") {
			return true
		}
	}
	return false
}

// writePairCoeffLines emits one pair_coeff line per diagonal (same-type)
// pair term, the form the original uses when the pair_style is uniform
// lj/cut/coul/long; under a hybrid pair_style the per-pair style name
// must additionally be named on each line, which is why this only runs
// for the hybrid branch — a uniform style's coefficients live in the
// data file's Pair Coeffs section instead (see data.go).
func writePairCoeffLines(b *strings.Builder, result *topogen.Result, opts ControlOptions) {
	for _, p := range result.Pairs {
		if p.TypeA != p.TypeB {
			continue
		}
		fmt.Fprintf(b, "%-15s %d %d %s %s\n", "pair_coeff", p.TypeA, p.TypeB, p.Potential.Style(), p.Potential.Render())
	}
	for _, p := range result.HBondPairs {
		fmt.Fprintf(b, "%-15s %d %d %s %s\n", "pair_coeff", p.TypeA, p.TypeB, p.Potential.Style(), p.Potential.Render())
	}
}

// writeMoleculeGroups emits one LAMMPS "group" command per distinct
// molecule_type label (spec.md §6's "atom groupings per molecule
// type"), listing member atom ids. The original never tracked
// per-instance molecule membership (it stamped every atom's molid as
// the placeholder 444), so this section has no direct original-source
// equivalent; it's built from Atom.Aux["molecule_type"], which
// topogen.Assemble now stamps during merging.
func writeMoleculeGroups(b *strings.Builder, result *topogen.Result) {
	groups := make(map[string][]int)
	var order []string
	for _, id := range result.Framework.AtomIDs() {
		a := result.Framework.Atom(id)
		label, _ := a.Aux["molecule_type"].(string)
		if label == "" {
			continue
		}
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], a.ID)
	}
	if len(order) == 0 {
		return
	}
	b.WriteString("\n")
	for _, label := range order {
		ids := groups[label]
		var idList strings.Builder
		for i, id := range ids {
			if i > 0 {
				idList.WriteString(" ")
			}
			fmt.Fprintf(&idList, "%d", id)
		}
		writeSetting(b, "group", fmt.Sprintf("%s id %s", label, idList.String()))
	}
}
