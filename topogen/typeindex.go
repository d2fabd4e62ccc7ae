package topogen

import "github.com/corrinlane/latticeff/ffparams"

// TypeIndex assigns 1-based type indices to distinct signatures, in the
// order each signature is first seen. Re-running assembly against the
// same graph produces the same indices every time, since both iteration
// order (atom/bond/angle/... ids, which are assigned monotonically at
// read time) and this insertion-order assignment are deterministic —
// the idempotency property spec.md §8 tests for. Exported so io/lmpdata
// can walk Count/Signatures when rendering the Masses / *Coeffs sections.
type TypeIndex struct {
	order []string
	index map[string]int
}

func newTypeIndex() *TypeIndex {
	return &TypeIndex{index: make(map[string]int)}
}

// IndexFor returns the 1-based type index for signature, allocating a
// new one if this is the first time it's been seen.
func (t *TypeIndex) IndexFor(signature string) int {
	if idx, ok := t.index[signature]; ok {
		return idx
	}
	idx := len(t.order) + 1
	t.order = append(t.order, signature)
	t.index[signature] = idx
	return idx
}

// Count is the number of distinct types assigned so far.
func (t *TypeIndex) Count() int {
	return len(t.order)
}

// Signatures returns every distinct signature string in assignment
// order (index i holds the signature for 1-based type i+1).
func (t *TypeIndex) Signatures() []string {
	return t.order
}

// potentialSignature renders a term's potential into a de-duplication
// key: the style keyword plus its coefficient body, so two terms with
// numerically identical coefficients collapse to the same type
// regardless of which atoms produced them.
func potentialSignature(p ffparams.Potential) string {
	if p == nil {
		return ffparams.Signature("nil")
	}
	return ffparams.Signature(p.Style(), p.Render())
}

// atomSignature keys an atom's type on its force-field label plus
// whether it hosts a donor hydrogen (DREIDING's H__HB retyping pass
// changes a heavy atom's acceptor eligibility without changing its
// label), per spec.md §3's atom type-equality rule.
func atomSignature(label string, hbondDonor bool) string {
	donor := "0"
	if hbondDonor {
		donor = "1"
	}
	return ffparams.Signature("atom", label, donor)
}
