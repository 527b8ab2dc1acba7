package document

import (
	"testing"

	"chorddht/internal/chordspace"
)

func TestPutOverwritesExistingName(t *testing.T) {
	s := New()
	s.Put(Document{Key: 10, Name: "hello", Value: []byte("first")})
	s.Put(Document{Key: 10, Name: "hello", Value: []byte("second")})

	if got := s.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1 (duplicate insert must overwrite, not accumulate)", got)
	}
	doc, err := s.Get("hello")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(doc.Value) != "second" {
		t.Fatalf("Get().Value = %q, want %q", doc.Value, "second")
	}
}

func TestPutOverwriteIsIdempotent(t *testing.T) {
	s := New()
	doc := Document{Key: 42, Name: "stable", Value: []byte("v1")}
	for i := 0; i < 5; i++ {
		s.Put(doc)
	}
	if got := s.Len(); got != 1 {
		t.Fatalf("Len() after repeated identical Put = %d, want 1", got)
	}
	got, err := s.Get("stable")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key != doc.Key || got.Name != doc.Name || string(got.Value) != string(doc.Value) {
		t.Fatalf("Get() = %+v, want %+v", got, doc)
	}
}

func TestDocumentPlacementByKey(t *testing.T) {
	sp, err := chordspace.NewSpace(8)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	s := New()
	names := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for _, name := range names {
		key := sp.Hash([]byte(name))
		s.Put(Document{Key: key, Name: name, Value: []byte(name)})
	}

	for _, name := range names {
		want := sp.Hash([]byte(name))
		doc, err := s.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if doc.Key != want {
			t.Errorf("stored key for %q = %d, want %d (independently hashed)", name, doc.Key, want)
		}
	}

	// Between(from, to] must only return documents whose independently
	// computed key actually falls in that half-open range.
	for _, name := range names {
		key := sp.Hash([]byte(name))
		from := sp.Mask(uint64(key) - 1)
		inRange := s.Between(from, key)
		found := false
		for _, d := range inRange {
			if d.Name == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Between(%d,%d] missing %q, whose key is %d", key-1, key, name, key)
		}
	}
}
