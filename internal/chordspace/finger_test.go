package chordspace

import "testing"

func TestNewFingerTableInitializedToSelf(t *testing.T) {
	sp := mustSpace(t, 8)
	self := NodeHandle{ID: "a0", Key: 10, Endpoint: "local://a0"}
	ft := NewFingerTable(sp, 10, self)
	if ft.Len() != int(sp.Bits) {
		t.Fatalf("Len() = %d, want %d", ft.Len(), sp.Bits)
	}
	for i := 0; i < ft.Len(); i++ {
		e := ft.At(i)
		if !e.Node.Equal(self) {
			t.Errorf("entry %d node = %v, want self", i, e.Node)
		}
		if e.Start != sp.FingerStart(10, i) {
			t.Errorf("entry %d start = %d, want %d", i, e.Start, sp.FingerStart(10, i))
		}
	}
}

func TestFingerTableUpdateCommitsAllAtOnce(t *testing.T) {
	sp := mustSpace(t, 4)
	self := NodeHandle{ID: "self", Key: 0}
	ft := NewFingerTable(sp, 0, self)
	other := NodeHandle{ID: "other", Key: 5}
	newNodes := make([]NodeHandle, ft.Len())
	for i := range newNodes {
		newNodes[i] = other
	}
	ft.Update(newNodes)
	for i := 0; i < ft.Len(); i++ {
		if !ft.At(i).Node.Equal(other) {
			t.Errorf("entry %d not updated", i)
		}
	}
}
