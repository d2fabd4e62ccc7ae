package ffparams

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Signature returns a short hex digest of a rendered potential (plus
// whatever atom-type signature the caller appends) suitable for use as a
// de-duplication map key. The teacher's hash.go registers a dozen
// interchangeable hash algorithms for general-purpose sequence hashing;
// the de-duplication keys here only ever need one fast, collision-safe
// hash, so the selection is collapsed to blake3 rather than carrying the
// whole menu forward unused.
func Signature(parts ...string) string {
	h := blake3.New(16, nil)
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0}) // separator, avoids "ab"+"c" colliding with "a"+"bc"
	}
	return hex.EncodeToString(h.Sum(nil))
}
