/*
Package topogen implements the simulation assembler's 10-step pipeline
(spec.md §4.4): given a populated lattice.Graph (cell set, atoms and any
reader-supplied bonds already loaded), it infers the full topology,
separates guest molecules from the framework, expands the minimum
supercell, runs the UFF/DREIDING typing engines, merges everything back
together, and de-duplicates every term kind into 1-based type indices
ready for io/lmpdata to render.

Grounded on lammps_main.py's driver function (original_source), which
runs this same sequence directly rather than behind an interactive
prompt loop.
*/
package topogen

import (
	"fmt"
	"sort"

	"github.com/corrinlane/latticeff/ffparams"
	"github.com/corrinlane/latticeff/ffparams/dreiding"
	"github.com/corrinlane/latticeff/ffparams/uff"
	"github.com/corrinlane/latticeff/lattice"
)

// Result is everything io/lmpdata needs to render the data and control
// files: the fully typed, merged framework graph, the de-duplicated
// type indices for every term kind, the derived pair terms, and any
// accumulated non-aborting warnings.
type Result struct {
	Framework     *lattice.Graph
	MoleculeTypes []*MoleculeType

	AtomTypes     *TypeIndex
	BondTypes     *TypeIndex
	AngleTypes    *TypeIndex
	DihedralTypes *TypeIndex
	ImproperTypes *TypeIndex
	PairTypes     *TypeIndex

	Pairs      []lattice.Pair
	HBondPairs []lattice.Pair // DREIDING hbond/dreiding/morse donor-acceptor terms

	Warnings Warnings
}

// Assemble runs spec.md §4.4 steps 2-10 against pg (step 1, reading the
// crystallographic input and setting the cell, is io/cryst's job; by the
// time Assemble is called pg already has its atoms, any reader-supplied
// bonds, and its cell).
func Assemble(pg *lattice.Graph, cfg Config) (*Result, error) {
	if pg.OriginalSize() == 0 {
		pg.MarkPopulated()
	}
	if err := computeTopology(pg, cfg); err != nil {
		return nil, err
	}

	var warnings Warnings
	fragments := carveGuests(pg, cfg)
	moleculeTypes := classifyFragments(fragments, cfg)

	if nx, ny, nz, ok := minimumSupercell(pg, cfg); ok {
		expanded, err := pg.Expand(nx, ny, nz)
		if err != nil {
			return nil, err
		}
		pg = expanded
	}

	if err := applyForceField(pg, cfg.Framework, cfg, &warnings); err != nil {
		return nil, err
	}
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		a.Aux["molecule_type"] = "framework"
		a.Aux["molid"] = 1
	}

	for _, mt := range moleculeTypes {
		for i, member := range mt.Members {
			frag := member
			if cfg.ExpandGuests {
				if nx, ny, nz, ok := minimumSupercell(frag, cfg); ok {
					expanded, err := frag.Expand(nx, ny, nz)
					if err != nil {
						return nil, err
					}
					frag = expanded
				}
			}
			if err := applyForceField(frag, mt.Fragment, cfg, &warnings); err != nil {
				return nil, err
			}
			mt.Members[i] = frag
		}
	}

	molid := 1
	for _, mt := range moleculeTypes {
		for _, member := range mt.Members {
			molid++
			mergeFragment(pg, member, mt.Label, molid)
		}
	}

	result := &Result{
		Framework:     pg,
		MoleculeTypes: moleculeTypes,
		AtomTypes:     newTypeIndex(),
		BondTypes:     newTypeIndex(),
		AngleTypes:    newTypeIndex(),
		DihedralTypes: newTypeIndex(),
		ImproperTypes: newTypeIndex(),
		PairTypes:     newTypeIndex(),
		Warnings:      warnings,
	}
	assignTypeIndices(pg, result)
	buildPairTerms(pg, result, cfg)
	return result, nil
}

func minimumSupercell(pg *lattice.Graph, cfg Config) (nx, ny, nz int, ok bool) {
	if pg.Cell() == nil || cfg.Cutoff <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz = pg.Cell().MinimumSupercell(cfg.Cutoff)
	if nx <= 1 && ny <= 1 && nz <= 1 {
		return 0, 0, 0, false
	}
	return nx, ny, nz, true
}

// computeTopology runs spec.md §4.4 step 2, "request the graph to
// compute all topological information": minimum-image bonding,
// hybridization/aromaticity perception, bond-order refinement, term
// enumeration, and inorganic-cluster detection, in that order.
func computeTopology(pg *lattice.Graph, cfg Config) error {
	if err := pg.ComputeBonding(cfg.bondScale()); err != nil {
		return err
	}
	pg.AssignInitialHybridization()
	pg.RefineBondOrders()
	pg.EnumerateAngles()
	pg.EnumerateDihedrals()
	pg.EnumerateImpropers()
	pg.DetectClusters()
	return nil
}

// carveGuests implements spec.md §4.4 step 3. The graph's single
// largest connected component is always kept as the framework,
// regardless of its size against the 15-atom/half-count thresholds —
// otherwise a structure smaller than those thresholds (a bare diatomic
// test fixture, say) would have its only component carved away,
// leaving nothing behind to expand or type. See DESIGN.md.
func carveGuests(pg *lattice.Graph, cfg Config) []*lattice.Graph {
	components := pg.ConnectedComponents()
	if len(components) == 0 {
		return nil
	}
	largest := 0
	for i, comp := range components {
		if len(comp) > len(components[largest]) {
			largest = i
		}
	}

	minAtoms := cfg.guestMinAtoms()
	fraction := cfg.guestFraction()
	original := pg.OriginalSize()

	var fragments []*lattice.Graph
	for i, comp := range components {
		if i == largest {
			continue
		}
		isGuest := len(comp) < minAtoms || float64(len(comp)) < fraction*float64(original)
		if !isGuest {
			continue
		}
		frag := pg.Subgraph(comp)
		frag.EnumerateAngles()
		frag.EnumerateDihedrals()
		frag.EnumerateImpropers()
		frag.Unwrap()
		fragments = append(fragments, frag)
		pg.RemoveAtoms(comp)
	}
	return fragments
}

// assignTypeIndices runs spec.md §4.4 step 8 over every term kind
// except pairs (built separately once atom types are known).
func assignTypeIndices(pg *lattice.Graph, result *Result) {
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		a.TypeIndex = result.AtomTypes.IndexFor(atomSignature(a.ForceFieldLabel, a.HBondDonor))
	}
	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		b.TypeIndex = result.BondTypes.IndexFor(potentialSignature(b.Potential))
	}
	for _, ang := range distinctAngles(pg) {
		ang.TypeIndex = result.AngleTypes.IndexFor(potentialSignature(ang.Potential))
	}
	for _, eid := range pg.BondIDs() {
		b := pg.Bond(eid)
		for _, dih := range sortedDihedralsOf(b) {
			dih.TypeIndex = result.DihedralTypes.IndexFor(potentialSignature(dih.Potential))
		}
	}
	for _, id := range pg.AtomIDs() {
		for _, imp := range sortedImpropersOf(pg.Atom(id)) {
			imp.TypeIndex = result.ImproperTypes.IndexFor(potentialSignature(imp.Potential))
		}
	}
}

// buildPairTerms derives one diagonal Lennard-Jones term per distinct
// atom type (from whichever typing engine produced that type, recorded
// in Atom.Aux["forcefield"] by applyForceField) and mixes every
// off-diagonal pair via Lorentz-Berthelot combining, plus DREIDING's
// explicit hydrogen-bond pair terms when enabled.
func buildPairTerms(pg *lattice.Graph, result *Result, cfg Config) {
	diag := make(map[int]ffparams.LennardJones)
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		if _, ok := diag[a.TypeIndex]; ok {
			continue
		}
		lj, ok := pairPotentialFor(a)
		if !ok {
			result.Warnings.addMissing("pair", fmt.Sprintf("type %d (%s): no pair parameters", a.TypeIndex, a.ForceFieldLabel))
			continue
		}
		diag[a.TypeIndex] = lj
	}

	types := make([]int, 0, len(diag))
	for t := range diag {
		types = append(types, t)
	}
	sort.Ints(types)

	for i, ta := range types {
		for _, tb := range types[i:] {
			pot := diag[ta]
			if ta != tb {
				pot = uff.MixPair(diag[ta], diag[tb])
			}
			idx := result.PairTypes.IndexFor(potentialSignature(pot))
			result.Pairs = append(result.Pairs, lattice.Pair{TypeA: ta, TypeB: tb, Potential: pot, TypeIndex: idx})
		}
	}

	if cfg.HydrogenBonding {
		buildHBondPairs(pg, result)
	}
}

func pairPotentialFor(a *lattice.Atom) (ffparams.LennardJones, bool) {
	if ff, _ := a.Aux["forcefield"].(string); ff == string(DREIDING) {
		return dreiding.PairPotential(a.ForceFieldLabel)
	}
	return uff.PairPotential(a.ForceFieldLabel)
}

// buildHBondPairs adds one hbond/dreiding/morse term per (donor type,
// acceptor type) combination found in the merged graph.
func buildHBondPairs(pg *lattice.Graph, result *Result) {
	donorTypes := make(map[int]bool)
	acceptorTypes := make(map[int]bool)
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		if dreiding.IsDonorHydrogen(a) {
			donorTypes[a.TypeIndex] = true
		}
		if dreiding.IsAcceptor(a) {
			acceptorTypes[a.TypeIndex] = true
		}
	}
	donors := sortedKeys(donorTypes)
	acceptors := sortedKeys(acceptorTypes)

	for _, d := range donors {
		for _, acc := range acceptors {
			pot := dreiding.HBondPotential(d)
			idx := result.PairTypes.IndexFor(potentialSignature(pot))
			result.HBondPairs = append(result.HBondPairs, lattice.Pair{TypeA: d, TypeB: acc, Potential: pot, TypeIndex: idx})
		}
	}
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// StyleKeyword implements spec.md §4.4 step 9: "none" for an empty term
// kind, the shared style if every entry renders through the same
// functional form, or "hybrid" plus the sorted distinct forms otherwise.
func StyleKeyword(styles []string) (keyword string, distinct []string) {
	if len(styles) == 0 {
		return "none", nil
	}
	set := make(map[string]bool, len(styles))
	for _, s := range styles {
		set[s] = true
	}
	if len(set) == 1 {
		return styles[0], styles[:1]
	}
	distinct = make([]string, 0, len(set))
	for s := range set {
		distinct = append(distinct, s)
	}
	sort.Strings(distinct)
	return "hybrid", distinct
}

// BondStyleKeyword, AngleStyleKeyword, DihedralStyleKeyword,
// ImproperStyleKeyword and PairStyleKeyword collect the rendered style
// keyword of every live term of that kind in the merged framework and
// resolve it via StyleKeyword, for the control-file writer.

// Angles, Dihedrals and Impropers return every live term of that kind in
// the merged framework, each exactly once and in a deterministic order,
// for io/lmpdata to render without having to re-derive the dedup/sort
// rules term-table storage requires.
func (r *Result) Angles() []*lattice.Angle {
	return distinctAngles(r.Framework)
}

func (r *Result) Dihedrals() []*lattice.Dihedral {
	var out []*lattice.Dihedral
	for _, eid := range r.Framework.BondIDs() {
		out = append(out, sortedDihedralsOf(r.Framework.Bond(eid))...)
	}
	return out
}

func (r *Result) Impropers() []*lattice.Improper {
	var out []*lattice.Improper
	for _, id := range r.Framework.AtomIDs() {
		out = append(out, sortedImpropersOf(r.Framework.Atom(id))...)
	}
	return out
}

func (r *Result) BondStyleKeyword() (string, []string) {
	var styles []string
	for _, eid := range r.Framework.BondIDs() {
		if p := r.Framework.Bond(eid).Potential; p != nil {
			styles = append(styles, p.Style())
		}
	}
	return StyleKeyword(styles)
}

func (r *Result) AngleStyleKeyword() (string, []string) {
	var styles []string
	for _, ang := range distinctAngles(r.Framework) {
		if ang.Potential != nil {
			styles = append(styles, ang.Potential.Style())
		}
	}
	return StyleKeyword(styles)
}

func (r *Result) DihedralStyleKeyword() (string, []string) {
	var styles []string
	for _, eid := range r.Framework.BondIDs() {
		for _, dih := range sortedDihedralsOf(r.Framework.Bond(eid)) {
			if dih.Potential != nil {
				styles = append(styles, dih.Potential.Style())
			}
		}
	}
	return StyleKeyword(styles)
}

func (r *Result) ImproperStyleKeyword() (string, []string) {
	var styles []string
	for _, id := range r.Framework.AtomIDs() {
		for _, imp := range sortedImpropersOf(r.Framework.Atom(id)) {
			if imp.Potential != nil {
				styles = append(styles, imp.Potential.Style())
			}
		}
	}
	return StyleKeyword(styles)
}

func (r *Result) PairStyleKeyword() (string, []string) {
	var styles []string
	for _, p := range r.Pairs {
		if p.Potential != nil {
			styles = append(styles, p.Potential.Style())
		}
	}
	for _, p := range r.HBondPairs {
		if p.Potential != nil {
			styles = append(styles, p.Potential.Style())
		}
	}
	return StyleKeyword(styles)
}
