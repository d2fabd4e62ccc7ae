/*
Package cryst reads the crystallographic text input spec.md §6
describes: cell parameters, an atom loop, and an optional bond loop
carrying endpoint labels, distance, symmetry flag and bond-type code.

Rather than writing a second line-oriented tokenizer, it is grounded on
io/pdbx/cif's parser: the file is first tokenized into a generic cif.CIF
document (data block, tags, loops) by cif.Parser, and this package's job
is purely semantic — walk the handful of tags it understands and
populate a lattice.Graph. Unrecognized tags are ignored, matching a real
bond-CIF's tolerance for vendor-specific extra tags it doesn't need.
*/
package cryst

import (
	"fmt"
	"io"
	"strings"

	"github.com/corrinlane/latticeff/cell"
	"github.com/corrinlane/latticeff/elements"
	"github.com/corrinlane/latticeff/io/pdbx/cif"
	"github.com/corrinlane/latticeff/lattice"
)

// Read parses r into a new lattice.Graph: its cell is set, its atoms
// added in file order, and any bond loop's bonds added with their
// recorded length and symmetry flag (ComputeBonding is not run here;
// that is topogen.Assemble's job, per spec.md §4.4 step 2).
func Read(r io.Reader) (*lattice.Graph, error) {
	doc, err := cif.NewParser(r).Parse()
	if err != nil {
		if se, ok := err.(cif.CIFSyntaxError); ok {
			return nil, &SyntaxError{Line: se.Line, Msg: se.Msg, Err: se}
		}
		return nil, &SyntaxError{Msg: err.Error(), Err: err}
	}

	block, err := soleDataBlock(doc)
	if err != nil {
		return nil, err
	}

	c, err := readCell(block)
	if err != nil {
		return nil, err
	}

	pg := lattice.New()
	pg.SetCell(c)

	labelToID, err := readAtoms(pg, block, c)
	if err != nil {
		return nil, err
	}
	pg.MarkPopulated()

	if err := readBonds(pg, block, labelToID); err != nil {
		return nil, err
	}

	return pg, nil
}

// soleDataBlock requires exactly one data block, since a crystallographic
// structure file describes a single structure.
func soleDataBlock(doc cif.CIF) (cif.DataBlock, error) {
	if len(doc.DataBlocks) != 1 {
		return cif.DataBlock{}, &SyntaxError{Msg: fmt.Sprintf("expected exactly one data block, found %d", len(doc.DataBlocks))}
	}
	for _, b := range doc.DataBlocks {
		return b, nil
	}
	panic("unreachable")
}

func readCell(block cif.DataBlock) (*cell.Cell, error) {
	a, err := requireFloat(block, tagCellLengthA)
	if err != nil {
		return nil, err
	}
	b, err := requireFloat(block, tagCellLengthB)
	if err != nil {
		return nil, err
	}
	cc, err := requireFloat(block, tagCellLengthC)
	if err != nil {
		return nil, err
	}
	alpha, err := requireFloat(block, tagCellAngleAlpha)
	if err != nil {
		return nil, err
	}
	beta, err := requireFloat(block, tagCellAngleBeta)
	if err != nil {
		return nil, err
	}
	gamma, err := requireFloat(block, tagCellAngleGamma)
	if err != nil {
		return nil, err
	}

	c, err := cell.NewFromParams(a, b, cc, alpha, beta, gamma)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// readAtoms populates pg from the _atom_site loop and returns a lookup
// from each site's label to the atom id it was assigned, for the bond
// loop to resolve against.
func readAtoms(pg *lattice.Graph, block cif.DataBlock, c *cell.Cell) (map[string]int, error) {
	labels, err := requireLoop(block, tagAtomLabel)
	if err != nil {
		return nil, err
	}
	symbols, err := requireLoop(block, tagAtomSymbol)
	if err != nil {
		return nil, err
	}
	if len(symbols) != len(labels) {
		return nil, &SyntaxError{Msg: fmt.Sprintf("%s and %s have different row counts", tagAtomLabel, tagAtomSymbol)}
	}

	fractX, hasFract := optionalLoop(block, tagAtomFractX)
	fractY, _ := optionalLoop(block, tagAtomFractY)
	fractZ, _ := optionalLoop(block, tagAtomFractZ)
	cartnX, hasCartn := optionalLoop(block, tagAtomCartnX)
	cartnY, _ := optionalLoop(block, tagAtomCartnY)
	cartnZ, _ := optionalLoop(block, tagAtomCartnZ)
	if !hasFract && !hasCartn {
		return nil, &SyntaxError{Msg: fmt.Sprintf("atom loop has neither %s/%s/%s nor %s/%s/%s", tagAtomFractX, tagAtomFractY, tagAtomFractZ, tagAtomCartnX, tagAtomCartnY, tagAtomCartnZ)}
	}

	charges, hasCharge := optionalLoop(block, tagAtomCharge)
	ffTypes, hasFFType := optionalLoop(block, tagAtomFFType)

	labelToID := make(map[string]int, len(labels))
	for i := range labels {
		label, ok := asString(labels[i])
		if !ok {
			return nil, &SyntaxError{Msg: fmt.Sprintf("%s row %d is not a string", tagAtomLabel, i)}
		}
		symbol, ok := asString(symbols[i])
		if !ok {
			return nil, &SyntaxError{Msg: fmt.Sprintf("%s row %d is not a string", tagAtomSymbol, i)}
		}
		symbol = elementSymbolFromLabel(symbol, label)

		var coords cell.Vec3
		if hasFract {
			fx, _ := toFloat(fractX[i])
			fy, _ := toFloat(fractY[i])
			fz, _ := toFloat(fractZ[i])
			coords = c.Cartesian(cell.Vec3{fx, fy, fz})
		} else {
			cx, _ := toFloat(cartnX[i])
			cy, _ := toFloat(cartnY[i])
			cz, _ := toFloat(cartnZ[i])
			coords = cell.Vec3{cx, cy, cz}
		}

		n, known := elements.AtomicNumber(symbol)
		if !known {
			return nil, &lattice.TopologyError{Kind: lattice.UnknownElement, Element: symbol, Detail: fmt.Sprintf("atom site %q", label)}
		}
		mass, _ := elements.Mass(symbol)

		atom := pg.AddAtom(symbol, coords)
		atom.AtomicNumber = n
		atom.Mass = mass
		atom.Aux["site_label"] = label

		if hasCharge {
			if q, ok := toFloat(charges[i]); ok {
				atom.Charge = q
			}
		}
		if hasFFType {
			if ff, ok := asString(ffTypes[i]); ok && ff != "." && ff != "?" {
				atom.ForceFieldLabel = ff
			}
		}

		labelToID[label] = atom.ID
	}
	return labelToID, nil
}

// readBonds populates pg's bond set from an optional _geom_bond loop.
// Absent entirely, the graph is left with no bonds and
// topogen.Assemble's ComputeBonding step will infer them.
func readBonds(pg *lattice.Graph, block cif.DataBlock, labelToID map[string]int) error {
	label1, ok := optionalLoop(block, tagBondLabel1)
	if !ok {
		return nil
	}
	label2, ok2 := optionalLoop(block, tagBondLabel2)
	if !ok2 || len(label2) != len(label1) {
		return &SyntaxError{Msg: fmt.Sprintf("%s and %s have different row counts", tagBondLabel1, tagBondLabel2)}
	}

	distances, hasDist := optionalLoop(block, tagBondDistance)
	symFlags, hasSym := optionalLoop(block, tagBondSymmetry2)
	typeCodes, hasType := optionalLoop(block, tagBondType)

	for i := range label1 {
		l1, _ := asString(label1[i])
		l2, _ := asString(label2[i])
		u, ok := labelToID[l1]
		if !ok {
			return &SyntaxError{Msg: fmt.Sprintf("%s row %d references unknown atom label %q", tagBondLabel1, i, l1)}
		}
		v, ok := labelToID[l2]
		if !ok {
			return &SyntaxError{Msg: fmt.Sprintf("%s row %d references unknown atom label %q", tagBondLabel2, i, l2)}
		}

		order := 1.0
		if hasType {
			code, _ := asString(typeCodes[i])
			if o, known := bondOrders[strings.ToUpper(code)]; known {
				order = o
			}
		}

		b, err := pg.AddBond(u, v, order)
		if err != nil {
			return &SyntaxError{Msg: fmt.Sprintf("bond %s-%s: %v", l1, l2, err)}
		}
		if hasDist {
			if d, ok := toFloat(distances[i]); ok {
				b.Length = d
			}
		}
		if hasSym {
			if f, ok := asString(symFlags[i]); ok && f != "" && f != "." {
				flag := lattice.SymFlag(f)
				if _, _, _, err := flag.Shift(); err != nil {
					return &SyntaxError{Msg: fmt.Sprintf("bond %s-%s: %v", l1, l2, err)}
				}
				b.SymFlag = flag
			}
		}
	}
	return nil
}

// elementSymbolFromLabel falls back to stripping trailing digits/tags
// off the site label when a row's type-symbol value is empty, "." or
// "?", a common shorthand in hand-written structure files ("Cu1" with
// an unknown type symbol). The _atom_site_type_symbol column itself is
// still required by readAtoms.
func elementSymbolFromLabel(symbol, label string) string {
	if symbol != "" && symbol != "." && symbol != "?" {
		return symbol
	}
	end := 0
	for end < len(label) && (label[end] < '0' || label[end] > '9') {
		end++
	}
	return label[:end]
}

func requireFloat(block cif.DataBlock, tag string) (float64, error) {
	v, ok := block.DataItems[tag]
	if !ok {
		return 0, &SyntaxError{Msg: fmt.Sprintf("missing required tag %s", tag)}
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &SyntaxError{Msg: fmt.Sprintf("tag %s is not numeric", tag)}
	}
	return f, nil
}

func requireLoop(block cif.DataBlock, tag string) ([]any, error) {
	v, ok := optionalLoop(block, tag)
	if !ok {
		return nil, &SyntaxError{Msg: fmt.Sprintf("missing required loop tag %s", tag)}
	}
	return v, nil
}

func optionalLoop(block cif.DataBlock, tag string) ([]any, bool) {
	v, ok := block.DataItems[tag]
	if !ok {
		return nil, false
	}
	rows, ok := v.([]any)
	if !ok {
		// A single-row loop or a scalar value given for what's usually a
		// loop tag; treat it as a one-element loop.
		return []any{v}, true
	}
	return rows, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case cif.SpecialValue:
		return string(s), true
	default:
		return "", false
	}
}
