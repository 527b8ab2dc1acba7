package chordspace

// Hash is a deterministic, non-cryptographic 31-multiplier polynomial
// hash folded into the ring's identifier space. It is intentionally not
// collision-resistant: the core's correctness only depends on
// determinism and on Hash(nil) == 0 (spec Non-goals exclude
// cryptographic hashing).
func (sp Space) Hash(b []byte) Key {
	var h uint64
	for _, c := range b {
		h = h*31 + uint64(c)
	}
	return sp.Mask(h)
}
