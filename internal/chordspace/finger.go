package chordspace

// NodeHandle is the non-owning, transport-addressable reference the
// core uses for predecessor/successor/finger pointers. It is never a
// raw in-process pointer: validity is established by asking the RPC
// capability (ping, find_successor) or a directory, not by dereferencing
// it directly.
type NodeHandle struct {
	ID       string
	Key      Key
	Endpoint string
}

// Equal compares handles by identifier, the only field that uniquely
// names a ring participant.
func (h NodeHandle) Equal(other NodeHandle) bool { return h.ID == other.ID }

// IsZero reports whether h is the empty handle (absent reference).
func (h NodeHandle) IsZero() bool { return h.ID == "" }

// FingerEntry is one routing shortcut: a fixed start key and a mutable
// best-guess node for successor(start).
type FingerEntry struct {
	Start Key
	Node  NodeHandle
}

// FingerTable is the owning node's m-entry routing table. Start values
// are fixed at construction; Node values are replaced only by Update,
// which performs the compute-then-commit two-phase write spec.md §4.D
// and §9 require: fix_fingers computes every new entry against the old,
// consistent table before any entry is overwritten.
type FingerTable struct {
	entries []FingerEntry
}

// NewFingerTable builds an m-entry table for a node with the given key,
// with every entry initialized to self (the owning node's own handle).
func NewFingerTable(sp Space, key Key, self NodeHandle) *FingerTable {
	ft := &FingerTable{entries: make([]FingerEntry, sp.Bits)}
	for i := range ft.entries {
		ft.entries[i] = FingerEntry{Start: sp.FingerStart(key, i), Node: self}
	}
	return ft
}

// Len returns m, the number of finger entries.
func (ft *FingerTable) Len() int { return len(ft.entries) }

// At returns a copy of the i-th entry. The caller must not mutate the
// table through the returned value.
func (ft *FingerTable) At(i int) FingerEntry { return ft.entries[i] }

// Snapshot returns a copy of all entries, safe to read without holding
// the owning node's lock afterward.
func (ft *FingerTable) Snapshot() []FingerEntry {
	out := make([]FingerEntry, len(ft.entries))
	copy(out, ft.entries)
	return out
}

// Update commits a full, precomputed set of new finger nodes in one
// shot. The caller (fix_fingers) must compute every new[i] by calling
// find_successor against the table as it stood before this call — never
// interleave a read of the table being updated with a partial write to
// it, or a lookup running concurrently with fix_fingers could observe a
// half-updated table and route incorrectly.
func (ft *FingerTable) Update(newNodes []NodeHandle) {
	for i, n := range newNodes {
		if i >= len(ft.entries) {
			break
		}
		ft.entries[i].Node = n
	}
}
