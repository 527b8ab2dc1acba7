// Package document is the per-node key/value layer Chord replicates
// ownership of: the ring only decides which node is responsible for a
// name, this package is what that node actually holds.
package document

import (
	"errors"
	"sort"
	"sync"

	"chorddht/internal/chordspace"
)

// ErrNotFound is returned when a name has no stored document.
var ErrNotFound = errors.New("document: not found")

// Document is one stored name/value pair, keyed by its ring position.
type Document struct {
	Key   chordspace.Key
	Name  string
	Value []byte
}

// QueryResult is the outcome of a document_query: whether the name was
// found at its owner, the owner itself, and the ordered hop path the
// lookup walked to get there, for diagnostic output. TraceID threads
// the same per-lookup identifier FindSuccessorPath attaches, so a query
// result can be correlated back to the log lines its lookup produced.
type QueryResult struct {
	Found    bool
	Owner    chordspace.NodeHandle
	Path     []chordspace.NodeHandle
	Document Document
	TraceID  string
}

// Store is a thread-safe in-memory table of documents, grounded on the
// teacher's memory-backed resource store but keyed generically rather
// than by a fixed resource type.
type Store struct {
	mu    sync.RWMutex
	items map[string]Document
}

// New returns an empty store.
func New() *Store {
	return &Store{items: make(map[string]Document)}
}

// Put inserts or replaces a document.
func (s *Store) Put(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[doc.Name] = doc
}

// Get returns the document stored under name.
func (s *Store) Get(name string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.items[name]
	if !ok {
		return Document{}, ErrNotFound
	}
	return d, nil
}

// Delete removes the document stored under name, if any.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, name)
}

// Between returns every document whose key falls in the half-open ring
// interval (from, to], used to hand off the documents a node is no
// longer responsible for after a predecessor change.
func (s *Store) Between(from, to chordspace.Key) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for _, d := range s.items {
		if chordspace.InInterval(d.Key, from, to, true) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DeleteAll removes every document in names from the store, used after
// a successful handoff to a new owner.
func (s *Store) DeleteAll(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		delete(s.items, name)
	}
}

// All returns every document currently held, sorted by key. Used by
// diagnostics such as chordsim's print-node view.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(s.items))
	for _, d := range s.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len reports how many documents are currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
