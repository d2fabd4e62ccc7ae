/*
Package lattice implements the periodic molecular graph: atoms as nodes,
bonds as edges carrying a periodic-image symmetry flag, and the
topology-inference passes (minimum-image bonding, hybridization and
bond-order perception, angle/dihedral/improper enumeration, inorganic
cluster recognition, supercell expansion) spec.md §4.2 describes.

It is grounded on structure_data.py's MolecularGraph/Structure classes
(original_source), generalized onto the mgraph substrate and cell.Cell
rather than a networkx graph and an ad hoc Cell object.
*/
package lattice

import (
	"fmt"
	"sort"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/mgraph"
)

// Graph is a periodic molecular graph: one Cell, and a set of atoms and
// bonds layered over an *mgraph.Graph substrate.
type Graph struct {
	g    *mgraph.Graph
	cell *cell.Cell

	atoms map[int]*Atom
	bonds map[int]*Bond // keyed by mgraph edge id

	rings [][]int // every detected ring, referenced by index from Atom.Rings

	// sizeAtCreation is the atom count right after the reader populated
	// the graph, before any guest-molecule carving. The assembler uses
	// it to decide which connected components count as "the framework"
	// vs "a guest", per spec.md §4.4 step 3.
	sizeAtCreation int
}

// New returns an empty periodic graph with no cell set yet.
func New() *Graph {
	return &Graph{
		g:     mgraph.New(),
		atoms: make(map[int]*Atom),
		bonds: make(map[int]*Bond),
	}
}

// SetCell attaches (or replaces) the lattice this graph's coordinates
// are interpreted under.
func (pg *Graph) SetCell(c *cell.Cell) {
	pg.cell = c
}

// Cell returns the graph's current cell, or nil if none has been set.
func (pg *Graph) Cell() *cell.Cell {
	return pg.cell
}

// AddAtom allocates a new atom with the given element and Cartesian
// coordinates and returns it.
func (pg *Graph) AddAtom(element string, coords cell.Vec3) *Atom {
	id := pg.g.AddNode()
	a := newAtom(id)
	a.Element = element
	a.Cartesian = coords
	pg.atoms[id] = a
	return a
}

// Atom returns the atom with the given id, or nil if it doesn't exist.
func (pg *Graph) Atom(id int) *Atom {
	return pg.atoms[id]
}

// AtomIDs returns every live atom id in insertion order.
func (pg *Graph) AtomIDs() []int {
	return pg.g.NodeIDs()
}

// NumAtoms is the live atom count.
func (pg *Graph) NumAtoms() int {
	return pg.g.NumNodes()
}

// MarkPopulated records the current atom count as the graph's original
// size, for later guest/framework classification.
func (pg *Graph) MarkPopulated() {
	pg.sizeAtCreation = pg.g.NumNodes()
}

// OriginalSize returns the atom count recorded by MarkPopulated.
func (pg *Graph) OriginalSize() int {
	return pg.sizeAtCreation
}

// AddBond connects atoms u and v with the given initial bond order and
// returns the new Bond. The bond's length and symmetry flag are left
// zero/NoShift; callers populate them via ComputeBonding or directly
// when bonds come from an explicit reader-supplied bond loop.
func (pg *Graph) AddBond(u, v int, order float64) (*Bond, error) {
	eid, err := pg.g.AddEdge(u, v)
	if err != nil {
		return nil, err
	}
	e, _ := pg.g.Edge(eid)
	lo, hi := e.Canon()
	b := newBond(eid, u, v, lo, hi)
	b.Order = order
	pg.bonds[eid] = b
	return b, nil
}

// RemoveBond deletes the bond with the given edge id from the graph and
// its adjacency lists. Used by ComputeBonding's second pass to retract
// a tentative H-H bond once both endpoints' final degrees are known.
func (pg *Graph) RemoveBond(edgeID int) {
	pg.g.RemoveEdge(edgeID)
	delete(pg.bonds, edgeID)
}

// Bond returns the bond with the given edge id.
func (pg *Graph) Bond(edgeID int) *Bond {
	return pg.bonds[edgeID]
}

// BondIDs returns every live bond (edge) id in insertion order.
func (pg *Graph) BondIDs() []int {
	return pg.g.EdgeIDs()
}

// NumBonds is the live bond count.
func (pg *Graph) NumBonds() int {
	return pg.g.NumEdges()
}

// BondBetween returns the bond connecting u and v, if one exists.
func (pg *Graph) BondBetween(u, v int) (*Bond, bool) {
	eid, ok := pg.g.EdgeBetween(u, v)
	if !ok {
		return nil, false
	}
	return pg.bonds[eid], true
}

// Neighbors returns the atom ids adjacent to id, in adjacency order.
func (pg *Graph) Neighbors(id int) []int {
	return pg.g.Neighbors(id)
}

// IncidentEdges returns the bond (edge) ids touching atom id, in
// adjacency order.
func (pg *Graph) IncidentEdges(id int) []int {
	return pg.g.Incident(id)
}

// Degree is the number of bonds touching atom id.
func (pg *Graph) Degree(id int) int {
	return pg.g.Degree(id)
}

// Rings returns every detected ring (as ordered atom id lists).
func (pg *Graph) Rings() [][]int {
	return pg.rings
}

// addRing appends a new ring and returns its index.
func (pg *Graph) addRing(atoms []int) int {
	idx := len(pg.rings)
	pg.rings = append(pg.rings, atoms)
	return idx
}

// RemoveAtoms deletes every atom in ids (and every bond touching them)
// from the graph. Used by the simulation assembler to carve guest
// molecules out of the framework graph.
func (pg *Graph) RemoveAtoms(ids []int) {
	idSet := make(map[int]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for _, eid := range pg.BondIDs() {
		b := pg.bonds[eid]
		if idSet[b.U] || idSet[b.V] {
			delete(pg.bonds, eid)
		}
	}
	for _, id := range ids {
		pg.g.RemoveNode(id)
		delete(pg.atoms, id)
	}
}

// Subgraph returns a deep copy containing only the given atom ids and
// the bonds between them, renumbered starting at 1 in the order ids was
// given. It shares no storage with pg, per spec.md's ownership rule that
// fragment graphs are deep copies.
func (pg *Graph) Subgraph(ids []int) *Graph {
	out := New()
	if pg.cell != nil {
		c := *pg.cell
		out.cell = &c
	}
	remap := make(map[int]int, len(ids))
	for _, id := range ids {
		src := pg.atoms[id]
		dst := out.AddAtom(src.Element, src.Cartesian)
		dst.AtomicNumber = src.AtomicNumber
		dst.Mass = src.Mass
		dst.Charge = src.Charge
		dst.Hybridization = src.Hybridization
		dst.ForceFieldLabel = src.ForceFieldLabel
		dst.SpecialFlag = src.SpecialFlag
		dst.HBondDonor = src.HBondDonor
		for k, v := range src.Aux {
			dst.Aux[k] = v
		}
		remap[id] = dst.ID
	}
	seen := make(map[int]bool)
	for _, id := range ids {
		for _, eid := range pg.g.Incident(id) {
			if seen[eid] {
				continue
			}
			b := pg.bonds[eid]
			other := b.Other(id)
			if _, ok := remap[other]; !ok {
				continue // bond leaves the subset; dropped, not rewired
			}
			seen[eid] = true
			nb, err := out.AddBond(remap[b.U], remap[b.V], b.Order)
			if err != nil {
				continue
			}
			nb.Length = b.Length
			nb.SymFlag = b.SymFlag
		}
	}
	out.MarkPopulated()
	return out
}

// ConnectedComponents returns the atom ids of every connected component,
// each sorted ascending, components themselves ordered by their minimum
// atom id (so the result is deterministic given insertion order).
func (pg *Graph) ConnectedComponents() [][]int {
	visited := make(map[int]bool)
	var components [][]int
	for _, start := range pg.AtomIDs() {
		if visited[start] {
			continue
		}
		var comp []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, n := range pg.Neighbors(cur) {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Ints(comp)
		components = append(components, comp)
	}
	return components
}

// String is a compact debug representation.
func (pg *Graph) String() string {
	return fmt.Sprintf("lattice.Graph{atoms=%d bonds=%d}", pg.NumAtoms(), pg.NumBonds())
}
