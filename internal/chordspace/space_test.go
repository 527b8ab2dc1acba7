package chordspace

import "testing"

func mustSpace(t *testing.T, bits uint) Space {
	sp, err := NewSpace(bits)
	if err != nil {
		t.Fatalf("NewSpace(%d): %v", bits, err)
	}
	return sp
}

func TestHashDeterministic(t *testing.T) {
	sp := mustSpace(t, 8)
	if got := sp.Hash(nil); got != 0 {
		t.Fatalf("Hash(nil) = %d, want 0", got)
	}
	if got := sp.Hash([]byte("")); got != 0 {
		t.Fatalf(`Hash("") = %d, want 0`, got)
	}
	for _, s := range []string{"a0", "doc1", "ff", "the quick brown fox"} {
		a := sp.Hash([]byte(s))
		b := sp.Hash([]byte(s))
		if a != b {
			t.Fatalf("Hash(%q) not deterministic: %d != %d", s, a, b)
		}
		if a >= sp.Size() {
			t.Fatalf("Hash(%q) = %d out of range [0, %d)", s, a, sp.Size())
		}
	}
}

func TestInIntervalBruteForce(t *testing.T) {
	sp := mustSpace(t, 5) // small space, exhaustive check is cheap
	n := int(sp.Size())
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for x := 0; x < n; x++ {
				for _, closed := range []bool{false, true} {
					got := InInterval(Key(x), Key(a), Key(b), closed)
					want := bruteForceInInterval(x, a, b, n, closed)
					if got != want {
						t.Fatalf("InInterval(%d,%d,%d,closed=%v) = %v, want %v", x, a, b, closed, got, want)
					}
				}
			}
		}
	}
}

// bruteForceInInterval walks the ring one step at a time from a,
// independent of the arithmetic InInterval uses, as a cross-check.
func bruteForceInInterval(x, a, b, n int, closed bool) bool {
	if a == b {
		return false
	}
	for i := (a + 1) % n; ; i = (i + 1) % n {
		if i == b {
			return closed && x == b
		}
		if i == x {
			return true
		}
		if i == a {
			// wrapped all the way around without hitting b or x
			return false
		}
	}
}

func TestInIntervalWraparound(t *testing.T) {
	cases := []struct {
		x, a, b Key
		closed  bool
		want    bool
	}{
		{5, 250, 10, true, true},
		{250, 250, 10, true, false},
		{10, 250, 10, true, true},
		{11, 250, 10, true, false},
	}
	for _, c := range cases {
		if got := InInterval(c.x, c.a, c.b, c.closed); got != c.want {
			t.Errorf("InInterval(%d,%d,%d,%v) = %v, want %v", c.x, c.a, c.b, c.closed, got, c.want)
		}
	}
}

func TestInIntervalEmptyWhenEqual(t *testing.T) {
	if InInterval(5, 5, 5, false) {
		t.Error("(a,a) open interval should always be empty")
	}
	if InInterval(5, 5, 5, true) {
		t.Error("(a,a] interval should be empty per spec, not the whole ring")
	}
}

func TestFingerStart(t *testing.T) {
	sp := mustSpace(t, 8)
	for i := 0; i < int(sp.Bits); i++ {
		got := sp.FingerStart(10, i)
		want := Key((10 + (1 << i)) % 256)
		if got != want {
			t.Errorf("FingerStart(10, %d) = %d, want %d", i, got, want)
		}
	}
}
