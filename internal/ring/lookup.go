package ring

import (
	"context"
	"fmt"

	"chorddht/internal/chordspace"
	"chorddht/internal/ringctx"
)

// FindSuccessor resolves key to the handle of the node responsible for
// it: the first node whose identifier is at or after key on the ring.
//
// This is the iterative-over-RPC lookup the rest of the ambient stack
// relies on being suspendable at each hop: rather than a node asking
// the next node to locally recurse into find_successor (which would
// need to run on the remote node's own goroutine), the caller walks
// the chain itself, one ClosestPrecedingNode/GetSuccessors round trip
// per hop, so the whole walk can be bounded, traced, and abandoned by
// the caller at any point.
func (n *Node) FindSuccessor(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, error) {
	h, _, err := n.FindSuccessorPath(ctx, key)
	return h, err
}

// FindSuccessorPath is FindSuccessor plus the ordered sequence of nodes
// consulted along the way, starting with the node the walk began at and
// ending with the returned successor. Diagnostic callers (document_query,
// the interactive CLI) use this so they can show or bound the hop path;
// FindSuccessor itself just discards it.
func (n *Node) FindSuccessorPath(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, []chordspace.NodeHandle, error) {
	if n.State() == StateDead {
		return chordspace.NodeHandle{}, nil, ErrDead
	}
	ctx = ringctx.EnsureTraceID(ctx, n.self.ID)
	h, path, err := n.findSuccessorFrom(ctx, n.self, key)
	if err == nil {
		return h, path, nil
	}
	// One retry, starting from our own successor instead of ourselves:
	// if our own view of the ring is stale mid-topology-change, the
	// successor's view may have already converged.
	succ := n.Successor()
	if succ.Equal(n.self) {
		return chordspace.NodeHandle{}, path, fmt.Errorf("ring: find_successor(%d): %w", key, err)
	}
	h2, path2, err2 := n.findSuccessorFrom(ctx, succ, key)
	if err2 != nil {
		return chordspace.NodeHandle{}, append(path, path2...), fmt.Errorf("ring: find_successor(%d): %w", key, err2)
	}
	return h2, append(path, path2...), nil
}

// findSuccessorFrom runs one bounded iterative walk starting at start,
// bounded by 2*m hops as spec.md requires, accumulating the path of
// every node consulted (including start and the final successor).
func (n *Node) findSuccessorFrom(ctx context.Context, start chordspace.NodeHandle, key chordspace.Key) (chordspace.NodeHandle, []chordspace.NodeHandle, error) {
	current := start
	currentSucc, err := n.successorOf(ctx, current)
	if err != nil {
		return chordspace.NodeHandle{}, nil, err
	}
	path := []chordspace.NodeHandle{current}

	limit := 2 * n.sp.Bits
	for hop := uint(0); hop < limit; hop++ {
		ctx = ringctx.IncHops(ctx)
		if current.Equal(currentSucc) || chordspace.InInterval(key, current.Key, currentSucc.Key, true) {
			path = append(path, currentSucc)
			return currentSucc, path, nil
		}

		next, err := n.closestPrecedingOf(ctx, current, key)
		if err != nil || next.Equal(current) {
			next = currentSucc
		}
		nextSucc, err := n.successorOf(ctx, next)
		if err != nil {
			return chordspace.NodeHandle{}, path, err
		}
		current, currentSucc = next, nextSucc
		path = append(path, current)
	}
	return chordspace.NodeHandle{}, path, ErrLookupDiverged
}

// successorOf returns handle's successor, either read locally (if
// handle is this node) or over RPC.
func (n *Node) successorOf(ctx context.Context, handle chordspace.NodeHandle) (chordspace.NodeHandle, error) {
	if handle.Equal(n.self) {
		return n.Successor(), nil
	}
	peer, err := n.dialer.Dial(ctx, handle)
	if err != nil {
		return chordspace.NodeHandle{}, fmt.Errorf("ring: dial %s: %w", handle.ID, err)
	}
	list, err := peer.GetSuccessors(ctx)
	if err != nil || len(list) == 0 {
		return chordspace.NodeHandle{}, fmt.Errorf("ring: get_successors %s: %w", handle.ID, err)
	}
	return list[0], nil
}

// closestPrecedingOf returns handle's best finger-table guess for the
// node immediately preceding key, either read locally or over RPC.
func (n *Node) closestPrecedingOf(ctx context.Context, handle chordspace.NodeHandle, key chordspace.Key) (chordspace.NodeHandle, error) {
	if handle.Equal(n.self) {
		return n.ClosestPrecedingNode(key), nil
	}
	peer, err := n.dialer.Dial(ctx, handle)
	if err != nil {
		return chordspace.NodeHandle{}, fmt.Errorf("ring: dial %s: %w", handle.ID, err)
	}
	return peer.ClosestPrecedingNode(ctx, key)
}

// ClosestPrecedingNode scans the finger table from the farthest entry
// down, returning the first node strictly between this node and key.
// If none qualifies, the node is its own closest preceding node.
func (n *Node) ClosestPrecedingNode(key chordspace.Key) chordspace.NodeHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := n.ft.Len() - 1; i >= 0; i-- {
		candidate := n.ft.At(i).Node
		if candidate.IsZero() || candidate.Equal(n.self) {
			continue
		}
		if chordspace.InInterval(candidate.Key, n.self.Key, key, false) {
			return candidate
		}
	}
	// Fall back to the closest successor-list entry that still
	// precedes key, since the finger table may lag a fresh join.
	for _, s := range n.succ {
		if s.IsZero() || s.Equal(n.self) {
			continue
		}
		if chordspace.InInterval(s.Key, n.self.Key, key, false) {
			return s
		}
	}
	return n.self
}
