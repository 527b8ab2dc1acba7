// Package directory is the ring facade of spec.md §4.F: an
// insertion-ordered registry of known nodes, responsible for
// allocating new nodes with unique ids, bootstrapping join through an
// existing member, driving stabilize_all/fix_fingers_all sweeps, and
// rendering diagnostic views of the ring. It also lets the local RPC
// adapter resolve a NodeHandle to a live *ring.Node without a network
// hop, mirroring the role the teacher's client pool plays for
// networked deployments.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"chorddht/internal/chordspace"
	"chorddht/internal/document"
	"chorddht/internal/logger"
	"chorddht/internal/ring"
	"chorddht/internal/rpc"
)

// ErrDuplicateID is returned by NewNode when id is already registered.
var ErrDuplicateID = errors.New("directory: duplicate node id")

// Registrant is the minimal surface a ring node exposes to be dialed
// in-process. internal/ring.Node implements it.
type Registrant interface {
	Handle() chordspace.NodeHandle
}

// Directory maps node IDs to registrants, preserving insertion order,
// and is safe for concurrent use.
type Directory struct {
	mu      sync.RWMutex
	sp      chordspace.Space
	order   []string // insertion order, for indexed access and rendering
	members map[string]Registrant
}

// New returns an empty directory over the given identifier space.
func New(sp chordspace.Space) *Directory {
	return &Directory{sp: sp, members: make(map[string]Registrant)}
}

// Register adds or replaces the registrant for its own handle's ID,
// appending to the insertion order on first registration.
func (d *Directory) Register(r Registrant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := r.Handle().ID
	if _, exists := d.members[id]; !exists {
		d.order = append(d.order, id)
	}
	d.members[id] = r
}

// Deregister removes a previously registered node by ID.
func (d *Directory) Deregister(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.members, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Lookup resolves an ID to its registrant, if still registered.
func (d *Directory) Lookup(id string) (Registrant, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.members[id]
	return r, ok
}

// All returns every currently registered registrant, in insertion
// order.
func (d *Directory) All() []Registrant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Registrant, 0, len(d.order))
	for _, id := range d.order {
		if r, ok := d.members[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// NewNode allocates a fresh *ring.Node for id and registers it,
// rejecting a duplicate id with ErrDuplicateID rather than silently
// replacing the existing registrant. The caller still must call
// CreateRing, Join, or Bootstrap to wire the node into a ring.
func (d *Directory) NewNode(id string, succListSize int, dialer rpc.Dialer, lgr logger.Logger) (*ring.Node, error) {
	d.mu.Lock()
	if _, exists := d.members[id]; exists {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	self := chordspace.NodeHandle{ID: id, Key: d.sp.Hash([]byte(id)), Endpoint: "local://" + id}
	n := ring.New(ring.Config{
		Space:             d.sp,
		Self:              self,
		SuccessorListSize: succListSize,
		Dialer:            dialer,
		Logger:            lgr,
	})
	d.order = append(d.order, id)
	d.members[id] = n
	d.mu.Unlock()
	return n, nil
}

// Bootstrap wires n into the ring: if any other registered node is
// still running, n joins through it; otherwise n creates a new ring of
// one. The introducer used is returned, or the zero handle if n became
// the sole member of a fresh ring.
func (d *Directory) Bootstrap(ctx context.Context, n *ring.Node) (chordspace.NodeHandle, error) {
	introducer, ok := d.liveIntroducer(n.Handle().ID)
	if !ok {
		n.CreateRing()
		return chordspace.NodeHandle{}, nil
	}
	if err := n.Join(ctx, introducer); err != nil {
		return chordspace.NodeHandle{}, err
	}
	return introducer, nil
}

// liveIntroducer returns the handle of any other registered node still
// in ring.StateRunning, so a join isn't stuck picking a node that has
// since left or failed.
func (d *Directory) liveIntroducer(exceptID string) (chordspace.NodeHandle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, id := range d.order {
		if id == exceptID {
			continue
		}
		if n, ok := d.members[id].(*ring.Node); ok && n.State() == ring.StateRunning {
			return n.Handle(), true
		}
	}
	return chordspace.NodeHandle{}, false
}

// StabilizeAll runs one stabilize + check_predecessor pass over every
// registered, running node — the stabilize_all pass of spec.md §4.F.
func (d *Directory) StabilizeAll(ctx context.Context) {
	for _, r := range d.All() {
		n, ok := r.(*ring.Node)
		if !ok || n.State() != ring.StateRunning {
			continue
		}
		n.Stabilize(ctx)
		n.CheckPredecessor(ctx)
	}
}

// FixFingersAll runs one fix_fingers pass over every registered,
// running node — the fix_fingers_all pass of spec.md §4.F.
func (d *Directory) FixFingersAll(ctx context.Context) {
	for _, r := range d.All() {
		n, ok := r.(*ring.Node)
		if !ok || n.State() != ring.StateRunning {
			continue
		}
		n.FixFingers(ctx)
	}
}

// sortedNodes returns every registered *ring.Node ordered by ring
// position, for the ring diagnostic view.
func (d *Directory) sortedNodes() []*ring.Node {
	d.mu.RLock()
	out := make([]*ring.Node, 0, len(d.order))
	for _, id := range d.order {
		if n, ok := d.members[id].(*ring.Node); ok {
			out = append(out, n)
		}
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Handle().Key < out[j].Handle().Key })
	return out
}

// RenderRing is the ring print of spec.md §6: columns
// `Key | ID | Pred | Succ | # Docs`, one row per registered node in
// ring order. If withFingers is true, each row is followed by that
// node's finger table via RenderFingerTable.
func (d *Directory) RenderRing(withFingers bool) string {
	var b strings.Builder
	b.WriteString("Key | ID | Pred | Succ | # Docs\n")
	for _, n := range d.sortedNodes() {
		b.WriteString(renderNodeRow(n))
		b.WriteByte('\n')
		if withFingers {
			b.WriteString(RenderFingerTable(n))
		}
	}
	return b.String()
}

func renderNodeRow(n *ring.Node) string {
	h := n.Handle()
	predStr := "none"
	if pred, ok := n.Predecessor(); ok {
		predStr = pred.ID
	}
	succStr := "none"
	if succ := n.Successor(); !succ.IsZero() {
		succStr = succ.ID
	}
	return fmt.Sprintf("%d | %s | %s | %s | %d", h.Key, h.ID, predStr, succStr, len(n.Documents()))
}

// RenderFingerTable is the finger-table print of spec.md §6:
// `i | Start | Succ(id:key)` for i in [0, m).
func RenderFingerTable(n *ring.Node) string {
	var b strings.Builder
	b.WriteString("i | Start | Succ(id:key)\n")
	for i, f := range n.FingerTable() {
		b.WriteString(fmt.Sprintf("%d | %d | %s:%d\n", i, f.Start, f.Node.ID, f.Node.Key))
	}
	return b.String()
}

// RenderNode is the print-node detail view: the node's ring row, its
// finger table, and every document it currently holds.
func RenderNode(n *ring.Node) string {
	var b strings.Builder
	b.WriteString(renderNodeRow(n))
	b.WriteByte('\n')
	b.WriteString(RenderFingerTable(n))
	for _, doc := range n.Documents() {
		b.WriteString(fmt.Sprintf("document: %s\n", doc.Name))
	}
	return b.String()
}

// RenderQueryResult is the document_query print of spec.md §6:
// "Document found" followed by filename and data, or "Document not
// found".
func RenderQueryResult(name string, result document.QueryResult) string {
	if !result.Found {
		return "Document not found"
	}
	return fmt.Sprintf("Document found\nfilename: %s\ndata: %s", name, string(result.Document.Value))
}
