package ring

import (
	"context"
	"fmt"

	"chorddht/internal/chordspace"
	"chorddht/internal/document"
	"chorddht/internal/logger"
	"chorddht/internal/ringctx"
	"chorddht/internal/rpc"
)

// Put stores value under name: if this node owns name's key it is
// stored locally, otherwise the request is forwarded to the owner.
func (n *Node) Put(ctx context.Context, name string, value []byte) error {
	key := n.sp.Hash([]byte(name))
	owner, err := n.FindSuccessor(ctx, key)
	if err != nil {
		return err
	}
	if owner.Equal(n.self) {
		n.docs.Put(document.Document{Key: key, Name: name, Value: value})
		return nil
	}
	peer, err := n.dialer.Dial(ctx, owner)
	if err != nil {
		return fmt.Errorf("ring: put dial owner: %w", err)
	}
	return peer.StoreDocument(ctx, rpc.Document{Key: key, Name: name, Value: value})
}

// Get retrieves the value stored under name, routing to the owner if
// it is not this node.
func (n *Node) Get(ctx context.Context, name string) ([]byte, error) {
	key := n.sp.Hash([]byte(name))
	owner, err := n.FindSuccessor(ctx, key)
	if err != nil {
		return nil, err
	}
	if owner.Equal(n.self) {
		doc, err := n.docs.Get(name)
		if err != nil {
			return nil, err
		}
		return doc.Value, nil
	}
	peer, err := n.dialer.Dial(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("ring: get dial owner: %w", err)
	}
	doc, found, err := peer.RetrieveDocument(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, document.ErrNotFound
	}
	return doc.Value, nil
}

// Query is document_query: it resolves name's owner via
// FindSuccessorPath, inspects the owner's table for name, and reports
// found/not-found, the owner, and the ordered hop path the lookup
// walked, for diagnostic output (spec.md §4.E).
func (n *Node) Query(ctx context.Context, name string) (document.QueryResult, error) {
	ctx = ringctx.EnsureTraceID(ctx, n.self.ID)
	key := n.sp.Hash([]byte(name))
	owner, path, err := n.FindSuccessorPath(ctx, key)
	if err != nil {
		return document.QueryResult{}, err
	}
	result := document.QueryResult{Owner: owner, Path: path, TraceID: ringctx.TraceID(ctx)}

	if owner.Equal(n.self) {
		doc, err := n.docs.Get(name)
		if err != nil {
			return result, nil
		}
		result.Found = true
		result.Document = doc
		return result, nil
	}

	peer, err := n.dialer.Dial(ctx, owner)
	if err != nil {
		return result, fmt.Errorf("ring: query dial owner: %w", err)
	}
	doc, found, err := peer.RetrieveDocument(ctx, name)
	if err != nil {
		return result, err
	}
	if !found {
		return result, nil
	}
	result.Found = true
	result.Document = document.Document{Key: doc.Key, Name: doc.Name, Value: doc.Value}
	return result, nil
}

// Delete removes the value stored under name, routing to the owner if
// it is not this node.
func (n *Node) Delete(ctx context.Context, name string) error {
	key := n.sp.Hash([]byte(name))
	owner, err := n.FindSuccessor(ctx, key)
	if err != nil {
		return err
	}
	if owner.Equal(n.self) {
		n.docs.Delete(name)
		return nil
	}
	peer, err := n.dialer.Dial(ctx, owner)
	if err != nil {
		return fmt.Errorf("ring: delete dial owner: %w", err)
	}
	return peer.RemoveDocument(ctx, name)
}

// StoreDocumentLocal stores doc directly in this node's table; it
// exists for the RPC server adapter, which has already decided this
// node is the target and does not want FindSuccessor run again.
func (n *Node) StoreDocumentLocal(doc document.Document) {
	n.docs.Put(doc)
}

// RetrieveDocumentLocal reads doc directly from this node's table.
func (n *Node) RetrieveDocumentLocal(name string) (document.Document, bool) {
	doc, err := n.docs.Get(name)
	if err != nil {
		return document.Document{}, false
	}
	return doc, true
}

// RemoveDocumentLocal deletes doc directly from this node's table.
func (n *Node) RemoveDocumentLocal(name string) {
	n.docs.Delete(name)
}

// Documents returns every document this node currently holds, for
// diagnostics such as chordsim's print-node view.
func (n *Node) Documents() []document.Document {
	return n.docs.All()
}

// handOffToNewPredecessor transfers every document this node holds
// that now falls in (oldPred, candidate] to candidate, since those
// keys are candidate's responsibility once it is accepted as
// predecessor. Errors are logged, not returned: handoff lags behind a
// live ring and the next stabilize/resource-repair pass retries it.
func (n *Node) handOffToNewPredecessor(ctx context.Context, candidate, oldPred chordspace.NodeHandle) {
	lowerBound := oldPred.Key
	if oldPred.IsZero() {
		lowerBound = n.self.Key
	}
	owned := n.docs.Between(lowerBound, candidate.Key)
	if len(owned) == 0 {
		return
	}
	peer, err := n.dialer.Dial(ctx, candidate)
	if err != nil {
		n.lgr.Warn("handoff dial failed", logger.FNode("to", candidate), logger.F("err", err.Error()))
		return
	}
	var moved []string
	for _, doc := range owned {
		if err := peer.StoreDocument(ctx, rpc.Document{Key: doc.Key, Name: doc.Name, Value: doc.Value}); err != nil {
			n.lgr.Warn("handoff store failed", logger.FDocument("document", doc.Name, doc.Key), logger.F("err", err.Error()))
			continue
		}
		moved = append(moved, doc.Name)
	}
	n.docs.DeleteAll(moved)
	if len(moved) > 0 {
		n.lgr.Info("handed off documents", logger.FNode("to", candidate), logger.F("count", len(moved)))
	}
}

// Leave performs a voluntary departure: it hands every locally stored
// document to its successor, tells its predecessor and successor about
// each other, and marks itself dead so further RPCs are rejected.
func (n *Node) Leave(ctx context.Context) error {
	n.mu.Lock()
	if n.state != StateRunning {
		n.mu.Unlock()
		return ErrDead
	}
	n.state = StateLeaving
	pred := n.pred
	succ := n.succ[0]
	n.mu.Unlock()

	if !succ.Equal(n.self) {
		if peer, err := n.dialer.Dial(ctx, succ); err == nil {
			for _, doc := range n.docs.All() {
				_ = peer.StoreDocument(ctx, rpc.Document{Key: doc.Key, Name: doc.Name, Value: doc.Value})
			}
			_ = peer.Leave(ctx, n.self, chordspace.NodeHandle{})
		}
		if !pred.IsZero() {
			if peer, err := n.dialer.Dial(ctx, pred); err == nil {
				_ = peer.Leave(ctx, n.self, succ)
			}
		}
	}

	n.mu.Lock()
	n.state = StateDead
	n.mu.Unlock()
	n.lgr.Info("left ring")
	return nil
}

// HandleLeave processes another node's departure notice: if the
// leaving node was this node's successor, its announced replacement
// becomes the new successor candidate; if it was the predecessor, the
// predecessor slot is simply cleared for the next notify to fill.
func (n *Node) HandleLeave(leaving, replacement chordspace.NodeHandle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pred.Equal(leaving) {
		n.pred = chordspace.NodeHandle{}
	}
	if n.succ[0].Equal(leaving) && !replacement.IsZero() {
		n.succ = capSuccessorList(append([]chordspace.NodeHandle{replacement}, n.succ[1:]...), n.succListSize, n.self)
	}
}
