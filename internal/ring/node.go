// Package ring implements the Chord protocol itself: a node's routing
// state (predecessor, successor list, finger table), the lookup engine
// that resolves a key to its owning node, and the stabilization loop
// that keeps routing state converging as the membership changes.
package ring

import (
	"context"
	"fmt"
	"sync"

	"chorddht/internal/chordspace"
	"chorddht/internal/document"
	"chorddht/internal/logger"
	"chorddht/internal/rpc"
)

// State is the lifecycle phase of a node.
type State int

const (
	// StateRunning is a node actively participating in the ring.
	StateRunning State = iota
	// StateLeaving is a node mid voluntary-departure handoff.
	StateLeaving
	// StateDead is a node that has left or failed and refuses all
	// further protocol operations.
	StateDead
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLeaving:
		return "leaving"
	default:
		return "dead"
	}
}

// Node is one Chord participant. Every mutation of pred, succ, or ft
// goes through the single mutex below — spec.md §5's single-writer
// rule — and no method holds that lock across an RPC: a method takes
// the lock only to read or write local state, releasing it before any
// call through dialer.
type Node struct {
	mu sync.Mutex

	sp   chordspace.Space
	self chordspace.NodeHandle

	succListSize int
	pred         chordspace.NodeHandle   // zero value = absent
	succ         []chordspace.NodeHandle // succ[0] is the immediate successor
	ft           *chordspace.FingerTable

	state State

	docs   *document.Store
	dialer rpc.Dialer
	lgr    logger.Logger
}

// Config bundles the construction parameters for New.
type Config struct {
	Space             chordspace.Space
	Self              chordspace.NodeHandle
	SuccessorListSize int
	Dialer            rpc.Dialer
	Logger            logger.Logger
}

// New builds a node that has not yet joined any ring: its successor
// list and finger table all point at itself, as if it were alone.
// Callers must call CreateRing (first node) or Join (every other node)
// before starting the maintenance loop.
func New(cfg Config) *Node {
	if cfg.SuccessorListSize < 1 {
		cfg.SuccessorListSize = 1
	}
	lgr := cfg.Logger
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	n := &Node{
		sp:           cfg.Space,
		self:         cfg.Self,
		succListSize: cfg.SuccessorListSize,
		succ:         []chordspace.NodeHandle{cfg.Self},
		ft:           chordspace.NewFingerTable(cfg.Space, cfg.Self.Key, cfg.Self),
		state:        StateRunning,
		docs:         document.New(),
		dialer:       cfg.Dialer,
		lgr:          lgr.Named("ring").WithNode(cfg.Self),
	}
	return n
}

// Handle returns the node's own, immutable handle.
func (n *Node) Handle() chordspace.NodeHandle { return n.self }

// Space returns the identifier space the node was built with.
func (n *Node) Space() chordspace.Space { return n.sp }

// State returns the node's current lifecycle phase.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Successor returns the node's immediate successor. If the node has
// not yet joined a ring larger than itself, that is itself.
func (n *Node) Successor() chordspace.NodeHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.succ[0]
}

// SuccessorList returns a copy of the full successor list.
func (n *Node) SuccessorList() []chordspace.NodeHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]chordspace.NodeHandle, len(n.succ))
	copy(out, n.succ)
	return out
}

// Predecessor returns the node's current predecessor and whether one
// is set at all.
func (n *Node) Predecessor() (chordspace.NodeHandle, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pred, !n.pred.IsZero()
}

// FingerTable returns a snapshot of the node's finger table.
func (n *Node) FingerTable() []chordspace.FingerEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ft.Snapshot()
}

// CreateRing initializes the node as the sole member of a brand new
// ring: its own successor and predecessor are itself-or-absent.
func (n *Node) CreateRing() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pred = chordspace.NodeHandle{}
	n.succ = []chordspace.NodeHandle{n.self}
	n.ft = chordspace.NewFingerTable(n.sp, n.self.Key, n.self)
	n.state = StateRunning
	n.lgr.Info("created new ring")
}

// Fail simulates an abrupt crash: the node is marked dead with no
// outgoing Leave calls to its neighbors, unlike a voluntary Leave. Ring
// maintenance elsewhere (Stabilize, CheckPredecessor) is what notices
// and routes around it.
func (n *Node) Fail() {
	n.mu.Lock()
	n.state = StateDead
	n.mu.Unlock()
	n.lgr.Warn("node failed")
}

// Join contacts introducer to learn the node's own successor, then
// seeds the successor list and finger table from it. It does not wait
// for stabilization to converge; the maintenance loop does that.
func (n *Node) Join(ctx context.Context, introducer chordspace.NodeHandle) error {
	peer, err := n.dialer.Dial(ctx, introducer)
	if err != nil {
		return fmt.Errorf("ring: join dial introducer: %w", err)
	}
	succ, err := peer.FindSuccessor(ctx, n.self.Key)
	if err != nil {
		return fmt.Errorf("ring: join find_successor(self): %w", err)
	}

	var succList []chordspace.NodeHandle
	if succ.Equal(n.self) {
		succList = []chordspace.NodeHandle{n.self}
	} else if succPeer, derr := n.dialer.Dial(ctx, succ); derr == nil {
		if list, lerr := succPeer.GetSuccessors(ctx); lerr == nil {
			succList = append([]chordspace.NodeHandle{succ}, list...)
		}
	}
	if len(succList) == 0 {
		succList = []chordspace.NodeHandle{succ}
	}

	n.mu.Lock()
	n.pred = chordspace.NodeHandle{}
	n.succ = capSuccessorList(succList, n.succListSize, n.self)
	n.ft = chordspace.NewFingerTable(n.sp, n.self.Key, n.succ[0])
	n.state = StateRunning
	n.mu.Unlock()

	n.lgr.Info("joined ring", logger.FNode("via", introducer), logger.FNode("successor", succ))
	return nil
}

// capSuccessorList keeps at most size entries of list, skipping zero
// handles, duplicates and self. It never pads a short list; only when
// nothing is left does it return [self].
func capSuccessorList(list []chordspace.NodeHandle, size int, self chordspace.NodeHandle) []chordspace.NodeHandle {
	out := make([]chordspace.NodeHandle, 0, size)
	seen := map[string]bool{self.ID: true}
	for _, h := range list {
		if len(out) == size {
			break
		}
		if h.IsZero() || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	if len(out) == 0 {
		out = append(out, self)
	}
	return out
}
