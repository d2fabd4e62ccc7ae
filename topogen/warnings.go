package topogen

import (
	"fmt"

	"github.com/corrinlane/latticeff/lattice"
)

// MissingPotentialWarning reports a term whose typing engine could not
// resolve parameters (an unlabeled or untabulated atom/pair combination):
// the term is still written, without coefficients, per spec.md §7 —
// "emit the term, warn, and continue" rather than aborting assembly.
type MissingPotentialWarning struct {
	Kind   string // "bond", "angle", "dihedral", "improper", "pair"
	Detail string
}

func (w MissingPotentialWarning) String() string {
	return fmt.Sprintf("missing potential for %s term: %s", w.Kind, w.Detail)
}

// Warnings accumulates every non-aborting condition surfaced while
// assembling one structure, for the caller to print (or not) before the
// writer runs.
type Warnings struct {
	Missing     []MissingPotentialWarning
	Bonding     []lattice.InconsistentBondingWarning
}

func (w *Warnings) addMissing(kind, detail string) {
	w.Missing = append(w.Missing, MissingPotentialWarning{Kind: kind, Detail: detail})
}

// Empty reports whether nothing was accumulated.
func (w *Warnings) Empty() bool {
	return len(w.Missing) == 0 && len(w.Bonding) == 0
}

// Strings renders every warning as one line each, in accumulation order.
func (w *Warnings) Strings() []string {
	out := make([]string, 0, len(w.Missing)+len(w.Bonding))
	for _, m := range w.Missing {
		out = append(out, m.String())
	}
	for _, b := range w.Bonding {
		out = append(out, b.String())
	}
	return out
}
