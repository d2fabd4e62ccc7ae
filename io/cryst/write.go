package cryst

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/lattice"
)

// bondOrderCodes is bondOrders inverted, for debug re-emission.
var bondOrderCodes = map[float64]string{
	1.0: "S",
	2.0: "D",
	1.5: "A",
	3.0: "T",
}

// Write emits pg in this package's debug crystallographic format: the
// same tags Read understands, so a file this function writes round
// trips back through Read. cmd/latticeff does not call it (its
// --debug-cif flag lists the input file's CIF tags instead); the MD
// output is io/lmpdata's job.
func Write(w io.Writer, pg *lattice.Graph) error {
	c := pg.Cell()
	if c == nil {
		return fmt.Errorf("cryst: cannot write a graph with no cell set")
	}
	a, b, cc, alpha, beta, gamma := c.Params()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "data_latticeff\n")
	fmt.Fprintf(bw, "%s %.10f\n", tagCellLengthA, a)
	fmt.Fprintf(bw, "%s %.10f\n", tagCellLengthB, b)
	fmt.Fprintf(bw, "%s %.10f\n", tagCellLengthC, cc)
	fmt.Fprintf(bw, "%s %.10f\n", tagCellAngleAlpha, alpha)
	fmt.Fprintf(bw, "%s %.10f\n", tagCellAngleBeta, beta)
	fmt.Fprintf(bw, "%s %.10f\n", tagCellAngleGamma, gamma)

	labels := writeAtomLoop(bw, pg, c)
	writeBondLoop(bw, pg, labels)

	return bw.Flush()
}

// writeAtomLoop writes the _atom_site loop and returns the label
// assigned to each atom id, for writeBondLoop to reference.
func writeAtomLoop(bw *bufio.Writer, pg *lattice.Graph, c *cell.Cell) map[int]string {
	fmt.Fprintf(bw, "loop_\n%s\n%s\n%s\n%s\n%s\n%s\n%s\n",
		tagAtomLabel, tagAtomSymbol, tagAtomFractX, tagAtomFractY, tagAtomFractZ, tagAtomCharge, tagAtomFFType)

	labels := make(map[int]string, pg.NumAtoms())
	elementCount := make(map[string]int)
	for _, id := range pg.AtomIDs() {
		a := pg.Atom(id)
		elementCount[a.Element]++
		label := fmt.Sprintf("%s%d", a.Element, elementCount[a.Element])
		labels[id] = label

		f := a.Fractional(c)
		ffType := a.ForceFieldLabel
		if ffType == "" {
			ffType = "."
		}
		fmt.Fprintf(bw, "%s %s %.10f %.10f %.10f %.6f %s\n",
			label, a.Element, f[0], f[1], f[2], a.Charge, ffType)
	}
	return labels
}

// writeBondLoop writes the optional _geom_bond loop. Skipped entirely
// (matching a CIF with no bond information) when pg has no bonds.
func writeBondLoop(bw *bufio.Writer, pg *lattice.Graph, labels map[int]string) {
	bondIDs := pg.BondIDs()
	if len(bondIDs) == 0 {
		return
	}
	sort.Ints(bondIDs)

	fmt.Fprintf(bw, "loop_\n%s\n%s\n%s\n%s\n%s\n",
		tagBondLabel1, tagBondLabel2, tagBondDistance, tagBondSymmetry2, tagBondType)

	for _, eid := range bondIDs {
		b := pg.Bond(eid)
		code, ok := bondOrderCodes[b.Order]
		if !ok {
			code = "S"
		}
		flag := string(b.SymFlag)
		if flag == "" {
			flag = string(lattice.NoShift)
		}
		fmt.Fprintf(bw, "%s %s %.10f %s %s\n", labels[b.U], labels[b.V], b.Length, flag, code)
	}
}
