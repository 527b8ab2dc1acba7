// Package chordspace implements the m-bit identifier ring arithmetic
// that the rest of the Chord engine is built on: hashing, half-open
// interval tests, and the per-node finger table.
package chordspace

import "fmt"

// Key is a point on the identifier ring, in [0, 2^Bits).
type Key uint64

// Space holds the ring parameters. Bits is the Chord parameter m; the
// reference deployment uses Bits = 8, but any value up to 62 is valid.
type Space struct {
	Bits uint
	mod  Key // 2^Bits
}

// NewSpace builds a Space for the given bit width.
func NewSpace(bits uint) (Space, error) {
	if bits == 0 || bits > 62 {
		return Space{}, fmt.Errorf("chordspace: invalid bit width %d (must be 1..62)", bits)
	}
	return Space{Bits: bits, mod: Key(1) << bits}, nil
}

// Size returns 2^Bits, the number of points on the ring.
func (sp Space) Size() Key { return sp.mod }

// Mask folds an arbitrary uint64 into [0, 2^Bits).
func (sp Space) Mask(x uint64) Key { return Key(x) & (sp.mod - 1) }

// AddMod computes (a + b) mod 2^Bits.
func (sp Space) AddMod(a, b Key) Key { return sp.Mask(uint64(a) + uint64(b)) }

// FingerStart computes start_i = (key + 2^i) mod 2^Bits for i in [0, Bits).
func (sp Space) FingerStart(key Key, i int) Key {
	return sp.AddMod(key, Key(1)<<uint(i))
}
