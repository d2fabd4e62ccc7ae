package lattice

import (
	"sort"

	"github.com/corrinlane/latticeff/cell"
)

type imageCoord struct{ cx, cy, cz int }

type imageKey struct {
	atomID         int
	cx, cy, cz int
}

// Expand builds the (sx, sy, sz) supercell of pg: every image cell gets
// a deep copy of every atom translated by the image's lattice offset,
// every bond is re-targeted through its symmetry flag against the
// image offset (wrapping into an equivalent image and a fresh symmetry
// flag when the target falls outside the new supercell), rings are
// duplicated per image, and angle/dihedral/improper tables are rebuilt
// from scratch against the rewired connectivity. Fails with
// TopologyError{Kind: BrokenSupercell} if any post-expansion reference
// cannot be resolved.
func (pg *Graph) Expand(sx, sy, sz int) (*Graph, error) {
	if sx < 1 || sy < 1 || sz < 1 {
		return nil, &TopologyError{Kind: BrokenSupercell, Detail: "supercell factors must be >= 1"}
	}
	if pg.cell == nil {
		return nil, &TopologyError{Kind: BrokenSupercell, Detail: "graph has no cell to expand"}
	}

	av := pg.cell.LatticeVector(0)
	bv := pg.cell.LatticeVector(1)
	cv := pg.cell.LatticeVector(2)

	newCell, err := cell.NewFromBasis([3]cell.Vec3{av, bv, cv})
	if err != nil {
		return nil, err
	}
	if err := newCell.UpdateSupercell(sx, sy, sz); err != nil {
		return nil, err
	}

	out := New()
	out.SetCell(newCell)

	origIDs := append([]int(nil), pg.AtomIDs()...)
	sort.Ints(origIDs)

	var images []imageCoord
	for cx := 0; cx < sx; cx++ {
		for cy := 0; cy < sy; cy++ {
			for cz := 0; cz < sz; cz++ {
				images = append(images, imageCoord{cx, cy, cz})
			}
		}
	}

	newID := make(map[imageKey]int, len(origIDs)*len(images))
	ringIndex := make(map[imageCoord]map[int]int, len(images))

	for _, img := range images {
		translation := cell.Vec3{
			av[0]*float64(img.cx) + bv[0]*float64(img.cy) + cv[0]*float64(img.cz),
			av[1]*float64(img.cx) + bv[1]*float64(img.cy) + cv[1]*float64(img.cz),
			av[2]*float64(img.cx) + bv[2]*float64(img.cy) + cv[2]*float64(img.cz),
		}
		atomsThisImage := make(map[int]*Atom, len(origIDs))
		for _, oid := range origIDs {
			src := pg.atoms[oid]
			coords := cell.Vec3{
				src.Cartesian[0] + translation[0],
				src.Cartesian[1] + translation[1],
				src.Cartesian[2] + translation[2],
			}
			dst := out.AddAtom(src.Element, coords)
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
			newID[imageKey{oid, img.cx, img.cy, img.cz}] = dst.ID
			atomsThisImage[oid] = dst
		}

		// Duplicate rings for this image, remapping to the new ids.
		rix := make(map[int]int, len(pg.rings))
		for ri, ring := range pg.rings {
			remapped := make([]int, len(ring))
			for i, aid := range ring {
				remapped[i] = atomsThisImage[aid].ID
			}
			rix[ri] = out.addRing(remapped)
		}
		ringIndex[img] = rix
		for _, oid := range origIDs {
			src := pg.atoms[oid]
			dst := atomsThisImage[oid]
			for _, ri := range src.Rings {
				dst.Rings = append(dst.Rings, rix[ri])
			}
		}
	}

	for _, img := range images {
		for _, eid := range pg.BondIDs() {
			b := pg.bonds[eid]
			dx, dy, dz, err := b.SymFlag.Shift()
			if err != nil {
				return nil, &TopologyError{Kind: BrokenSupercell, Detail: "unreadable symmetry flag: " + err.Error()}
			}

			targetCx, shiftX := wrapImage(img.cx+dx, sx)
			targetCy, shiftY := wrapImage(img.cy+dy, sy)
			targetCz, shiftZ := wrapImage(img.cz+dz, sz)

			uID, ok := newID[imageKey{b.U, img.cx, img.cy, img.cz}]
			if !ok {
				return nil, &TopologyError{Kind: BrokenSupercell, Detail: "bond endpoint U missing from expanded graph"}
			}
			vID, ok := newID[imageKey{b.V, targetCx, targetCy, targetCz}]
			if !ok {
				return nil, &TopologyError{Kind: BrokenSupercell, Detail: "bond endpoint V missing from expanded graph"}
			}

			nb, err := out.AddBond(uID, vID, b.Order)
			if err != nil {
				return nil, &TopologyError{Kind: BrokenSupercell, Detail: err.Error()}
			}
			nb.Length = b.Length
			nb.SymFlag = NewSymFlag(shiftX, shiftY, shiftZ)
		}
	}

	out.MarkPopulated()
	out.EnumerateAngles()
	out.EnumerateDihedrals()
	out.EnumerateImpropers()

	for _, id := range out.AtomIDs() {
		for key := range out.atoms[id].AngleTable {
			if out.atoms[key[0]] == nil || out.atoms[key[1]] == nil {
				return nil, &TopologyError{Kind: BrokenSupercell, AtomID: id, Detail: "angle references a missing atom"}
			}
		}
	}

	return out, nil
}

// wrapImage brings an unwrapped image coordinate back into [0, s) and
// returns the full-supercell offset that must be recorded on the new
// symmetry flag to compensate.
func wrapImage(target, s int) (wrapped, shift int) {
	wrapped = ((target % s) + s) % s
	shift = (target - wrapped) / s
	return
}

// Unwrap walks the graph breadth-first from every unvisited seed and,
// for each newly reached neighbour, replaces its Cartesian coordinate
// with whichever of its 27 periodic images lies closest to the
// already-placed parent, clearing that bond's symmetry flag. Intended
// to run on a single connected fragment before supercell expansion, but
// handles multiple components by seeding a fresh walk for each.
func (pg *Graph) Unwrap() {
	if pg.cell == nil {
		return
	}
	ids := append([]int(nil), pg.AtomIDs()...)
	sort.Ints(ids)

	visited := make(map[int]bool, len(ids))
	for _, seed := range ids {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			parent := pg.atoms[cur]
			for _, eid := range pg.IncidentEdges(cur) {
				b := pg.bonds[eid]
				n := b.Other(cur)
				if visited[n] {
					continue
				}
				visited[n] = true
				child := pg.atoms[n]
				child.Cartesian = pg.closestImage(parent.Cartesian, child.Cartesian)
				b.SymFlag = NoShift
				queue = append(queue, n)
			}
		}
	}
}

// closestImage returns whichever of p's 27 periodic images is nearest
// to anchor.
func (pg *Graph) closestImage(anchor, p cell.Vec3) cell.Vec3 {
	frac := pg.cell.Fractional(p)
	best := p
	bestDist := dist(anchor, p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				shifted := cell.Vec3{frac[0] + float64(dx), frac[1] + float64(dy), frac[2] + float64(dz)}
				cart := pg.cell.Cartesian(shifted)
				if d := dist(anchor, cart); d < bestDist {
					bestDist = d
					best = cart
				}
			}
		}
	}
	return best
}
