// Package local is the in-process RPC transport: a Dialer that
// resolves NodeHandles through a shared directory.Directory instead of
// a network socket, and calls straight into the target *ring.Node. It
// is what the simulator CLI and the ring package's own tests use to
// run a multi-node Chord ring inside a single process.
package local

import (
	"context"
	"fmt"

	"chorddht/internal/chordspace"
	"chorddht/internal/directory"
	"chorddht/internal/document"
	"chorddht/internal/ring"
	"chorddht/internal/rpc"
)

// Dialer resolves handles against a directory of locally registered
// nodes.
type Dialer struct {
	dir *directory.Directory
}

// New returns a Dialer backed by dir.
func New(dir *directory.Directory) *Dialer {
	return &Dialer{dir: dir}
}

// Dial looks handle up in the directory. It fails if the node was
// never registered or has since deregistered — the local stand-in for
// a refused TCP connection.
func (d *Dialer) Dial(ctx context.Context, handle chordspace.NodeHandle) (rpc.Peer, error) {
	reg, ok := d.dir.Lookup(handle.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownPeer, handle.ID)
	}
	target, ok := reg.(*ring.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rpc.ErrUnknownPeer, handle.ID)
	}
	return &peer{node: target}, nil
}

// peer adapts a *ring.Node to rpc.Peer by calling straight into it.
// Every method still respects the node's own locking: none of this
// reaches past the node's public API.
type peer struct {
	node *ring.Node
}

func (p *peer) Handle() chordspace.NodeHandle { return p.node.Handle() }

func (p *peer) FindSuccessor(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, error) {
	if p.node.State() == ring.StateDead {
		return chordspace.NodeHandle{}, rpc.ErrUnreachable
	}
	return p.node.FindSuccessor(ctx, key)
}

func (p *peer) ClosestPrecedingNode(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, error) {
	if p.node.State() == ring.StateDead {
		return chordspace.NodeHandle{}, rpc.ErrUnreachable
	}
	return p.node.ClosestPrecedingNode(key), nil
}

func (p *peer) GetPredecessor(ctx context.Context) (chordspace.NodeHandle, bool, error) {
	if p.node.State() == ring.StateDead {
		return chordspace.NodeHandle{}, false, rpc.ErrUnreachable
	}
	h, ok := p.node.Predecessor()
	if !ok {
		return chordspace.NodeHandle{}, false, nil
	}
	return h, true, nil
}

func (p *peer) GetSuccessors(ctx context.Context) ([]chordspace.NodeHandle, error) {
	if p.node.State() == ring.StateDead {
		return nil, rpc.ErrUnreachable
	}
	return p.node.SuccessorList(), nil
}

func (p *peer) Notify(ctx context.Context, candidate chordspace.NodeHandle) error {
	if p.node.State() == ring.StateDead {
		return rpc.ErrUnreachable
	}
	p.node.Notify(ctx, candidate)
	return nil
}

func (p *peer) Ping(ctx context.Context) (rpc.PingResult, error) {
	st := p.node.State()
	if st == ring.StateDead {
		return rpc.PingResult{}, rpc.ErrUnreachable
	}
	rst := rpc.StateRunning
	if st == ring.StateLeaving {
		rst = rpc.StateDead
	}
	return rpc.PingResult{Handle: p.node.Handle(), State: rst}, nil
}

func (p *peer) StoreDocument(ctx context.Context, doc rpc.Document) error {
	if p.node.State() == ring.StateDead {
		return rpc.ErrUnreachable
	}
	p.node.StoreDocumentLocal(document.Document{Key: doc.Key, Name: doc.Name, Value: doc.Value})
	return nil
}

func (p *peer) RetrieveDocument(ctx context.Context, name string) (rpc.Document, bool, error) {
	if p.node.State() == ring.StateDead {
		return rpc.Document{}, false, rpc.ErrUnreachable
	}
	doc, ok := p.node.RetrieveDocumentLocal(name)
	if !ok {
		return rpc.Document{}, false, nil
	}
	return rpc.Document{Key: doc.Key, Name: doc.Name, Value: doc.Value}, true, nil
}

func (p *peer) RemoveDocument(ctx context.Context, name string) error {
	if p.node.State() == ring.StateDead {
		return rpc.ErrUnreachable
	}
	p.node.RemoveDocumentLocal(name)
	return nil
}

func (p *peer) Leave(ctx context.Context, leaving, successor chordspace.NodeHandle) error {
	if p.node.State() == ring.StateDead {
		return rpc.ErrUnreachable
	}
	p.node.HandleLeave(leaving, successor)
	return nil
}
