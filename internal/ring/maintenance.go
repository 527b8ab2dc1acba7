package ring

import (
	"context"
	"time"

	"chorddht/internal/chordspace"
	"chorddht/internal/logger"
)

// MaintenanceIntervals configures the three independent ticker loops,
// mirroring the teacher's chord/de Bruijn/storage stabilizer split but
// with the de Bruijn loop replaced by fix_fingers.
type MaintenanceIntervals struct {
	Stabilize        time.Duration
	FixFingers       time.Duration
	CheckPredecessor time.Duration
}

// StartMaintenance launches the stabilize, fix_fingers, and
// check_predecessor loops as independent goroutines, each on its own
// ticker, stopping when ctx is canceled. It returns immediately.
func (n *Node) StartMaintenance(ctx context.Context, iv MaintenanceIntervals) {
	go n.tickerLoop(ctx, iv.Stabilize, n.Stabilize)
	go n.tickerLoop(ctx, iv.FixFingers, n.fixFingersOnce)
	go n.tickerLoop(ctx, iv.CheckPredecessor, n.CheckPredecessor)
}

func (n *Node) tickerLoop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(ctx)
		}
	}
}

// Stabilize asks the current successor for its predecessor; if that
// predecessor lies strictly between this node and its successor, it is
// closer and becomes the new successor. Either way, the (possibly
// updated) successor is notified that this node might be its
// predecessor. On failure to reach the successor, the next entry in
// the successor list is promoted and the failed node is dropped.
func (n *Node) Stabilize(ctx context.Context) {
	if n.State() != StateRunning {
		return
	}
	succ := n.Successor()
	if succ.Equal(n.self) {
		// A node that is its own successor takes its predecessor (set by
		// a joining node's Notify) as its first successor.
		pred, ok := n.Predecessor()
		if !ok || pred.Equal(n.self) {
			return
		}
		n.mu.Lock()
		n.succ = capSuccessorList([]chordspace.NodeHandle{pred}, n.succListSize, n.self)
		n.mu.Unlock()
		succ = pred
	}

	peer, err := n.dialer.Dial(ctx, succ)
	if err != nil {
		n.promoteSuccessor(ctx, succ)
		return
	}
	x, hasPred, err := peer.GetPredecessor(ctx)
	if err != nil {
		n.promoteSuccessor(ctx, succ)
		return
	}

	newSucc := succ
	if hasPred && !x.IsZero() && chordspace.InInterval(x.Key, n.self.Key, succ.Key, false) {
		newSucc = x
	}

	n.mu.Lock()
	if !newSucc.Equal(n.succ[0]) {
		n.succ = capSuccessorList([]chordspace.NodeHandle{newSucc}, n.succListSize, n.self)
	}
	target := n.succ[0]
	n.mu.Unlock()

	n.refreshSuccessorList(ctx, target)

	if notifyPeer, err := n.dialer.Dial(ctx, target); err == nil {
		if err := notifyPeer.Notify(ctx, n.self); err != nil {
			n.lgr.Debug("notify failed", logger.FNode("successor", target), logger.F("err", err.Error()))
		}
	}
}

// refreshSuccessorList fetches target's own successor list and merges
// it behind target to keep this node's list at full size.
func (n *Node) refreshSuccessorList(ctx context.Context, target chordspace.NodeHandle) {
	if target.Equal(n.self) {
		return
	}
	peer, err := n.dialer.Dial(ctx, target)
	if err != nil {
		return
	}
	remote, err := peer.GetSuccessors(ctx)
	if err != nil {
		return
	}
	merged := append([]chordspace.NodeHandle{target}, remote...)

	n.mu.Lock()
	n.succ = capSuccessorList(merged, n.succListSize, n.self)
	n.mu.Unlock()
}

// promoteSuccessor drops a successor that failed to respond and
// advances to the next entry in the successor list. If the list
// exhausts, the node reverts to being alone.
func (n *Node) promoteSuccessor(ctx context.Context, failed chordspace.NodeHandle) {
	n.mu.Lock()
	next := dropAndAdvance(n.succ, failed, n.self)
	n.succ = next
	promoted := n.succ[0]
	n.mu.Unlock()

	n.lgr.Warn("successor unreachable, promoting next candidate",
		logger.FNode("failed", failed), logger.FNode("promoted", promoted))
}

func dropAndAdvance(list []chordspace.NodeHandle, failed, self chordspace.NodeHandle) []chordspace.NodeHandle {
	out := make([]chordspace.NodeHandle, 0, len(list))
	for _, h := range list {
		if h.Equal(failed) {
			continue
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		out = append(out, self)
	}
	return out
}

// Notify is called by a peer that believes it might be this node's
// predecessor. If this node has no predecessor, or candidate is
// strictly closer than the current one, candidate is adopted, and any
// documents candidate should now own are handed to it asynchronously.
func (n *Node) Notify(ctx context.Context, candidate chordspace.NodeHandle) {
	if n.State() != StateRunning || candidate.Equal(n.self) {
		return
	}

	n.mu.Lock()
	accept := n.pred.IsZero() || chordspace.InInterval(candidate.Key, n.pred.Key, n.self.Key, false)
	var oldPred chordspace.NodeHandle
	if accept {
		oldPred = n.pred
		n.pred = candidate
	}
	n.mu.Unlock()

	if !accept {
		return
	}
	n.lgr.Info("accepted new predecessor", logger.FNode("predecessor", candidate))
	go n.handOffToNewPredecessor(context.WithoutCancel(ctx), candidate, oldPred)
}

// FixFingers recomputes the finger table once, outside the periodic
// maintenance loop. The interactive CLI's fix-fingers command drives
// this directly so an operator can force convergence without waiting
// for the next tick.
func (n *Node) FixFingers(ctx context.Context) {
	n.fixFingersOnce(ctx)
}

// fixFingersOnce recomputes every finger table entry against the
// current, consistent table, then commits them all at once so a
// concurrent lookup never observes a half-updated table.
func (n *Node) fixFingersOnce(ctx context.Context) {
	if n.State() != StateRunning {
		return
	}
	n.mu.Lock()
	m := n.ft.Len()
	starts := make([]chordspace.Key, m)
	for i := 0; i < m; i++ {
		starts[i] = n.ft.At(i).Start
	}
	n.mu.Unlock()

	newNodes := make([]chordspace.NodeHandle, m)
	for i, start := range starts {
		h, err := n.FindSuccessor(ctx, start)
		if err != nil {
			newNodes[i] = n.self
			continue
		}
		newNodes[i] = h
	}

	n.mu.Lock()
	n.ft.Update(newNodes)
	n.mu.Unlock()
}

// CheckPredecessor pings the current predecessor; if it fails to
// respond, the predecessor is cleared, freeing the interval it owned
// for the next Notify to claim.
func (n *Node) CheckPredecessor(ctx context.Context) {
	if n.State() != StateRunning {
		return
	}
	n.mu.Lock()
	pred := n.pred
	n.mu.Unlock()
	if pred.IsZero() {
		return
	}

	peer, err := n.dialer.Dial(ctx, pred)
	alive := err == nil
	if alive {
		if _, perr := peer.Ping(ctx); perr != nil {
			alive = false
		}
	}
	if alive {
		return
	}

	n.mu.Lock()
	if n.pred.Equal(pred) {
		n.pred = chordspace.NodeHandle{}
	}
	n.mu.Unlock()
	n.lgr.Warn("predecessor unreachable, cleared", logger.FNode("predecessor", pred))
}
