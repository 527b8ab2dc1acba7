// Package grpcpeer is the networked RPC transport: a Dialer that pools
// grpc.ClientConns through internal/rpcpool and issues chordpb.Chord
// calls, and a Peer that adapts those calls back to the rpc.Peer shape
// the ring core speaks.
package grpcpeer

import (
	"context"
	"fmt"

	"chorddht/internal/api/chordpb"
	"chorddht/internal/chordspace"
	"chorddht/internal/rpc"
	"chorddht/internal/rpcpool"
)

// Dialer resolves NodeHandles to chordpb-backed peers over pooled
// gRPC connections keyed by endpoint.
type Dialer struct {
	pool *rpcpool.Pool
}

// New returns a Dialer backed by pool.
func New(pool *rpcpool.Pool) *Dialer {
	return &Dialer{pool: pool}
}

func (d *Dialer) Dial(ctx context.Context, handle chordspace.NodeHandle) (rpc.Peer, error) {
	conn, err := d.pool.Get(ctx, handle.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return &peer{handle: handle, client: chordpb.NewChordClient(conn), pool: d.pool}, nil
}

type peer struct {
	handle chordspace.NodeHandle
	client chordpb.ChordClient
	pool   *rpcpool.Pool
}

func (p *peer) Handle() chordspace.NodeHandle { return p.handle }

func toWire(h chordspace.NodeHandle) *chordpb.NodeHandle {
	return &chordpb.NodeHandle{Id: h.ID, Key: uint64(h.Key), Endpoint: h.Endpoint}
}

func fromWire(h *chordpb.NodeHandle) chordspace.NodeHandle {
	if h == nil {
		return chordspace.NodeHandle{}
	}
	return chordspace.NodeHandle{ID: h.Id, Key: chordspace.Key(h.Key), Endpoint: h.Endpoint}
}

func (p *peer) FindSuccessor(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, error) {
	reply, err := p.client.FindSuccessor(ctx, &chordpb.FindSuccessorRequest{Key: uint64(key)})
	if err != nil {
		return chordspace.NodeHandle{}, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return fromWire(reply.GetNode()), nil
}

func (p *peer) ClosestPrecedingNode(ctx context.Context, key chordspace.Key) (chordspace.NodeHandle, error) {
	reply, err := p.client.ClosestPreceding(ctx, &chordpb.ClosestPrecedingRequest{Key: uint64(key)})
	if err != nil {
		return chordspace.NodeHandle{}, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return fromWire(reply.GetNode()), nil
}

func (p *peer) GetPredecessor(ctx context.Context) (chordspace.NodeHandle, bool, error) {
	reply, err := p.client.GetPredecessor(ctx, &chordpb.Empty{})
	if err != nil {
		return chordspace.NodeHandle{}, false, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	if !reply.Present {
		return chordspace.NodeHandle{}, false, nil
	}
	return fromWire(reply.Node), true, nil
}

func (p *peer) GetSuccessors(ctx context.Context) ([]chordspace.NodeHandle, error) {
	reply, err := p.client.GetSuccessors(ctx, &chordpb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	out := make([]chordspace.NodeHandle, 0, len(reply.Nodes))
	for _, n := range reply.Nodes {
		out = append(out, fromWire(n))
	}
	return out, nil
}

func (p *peer) Notify(ctx context.Context, candidate chordspace.NodeHandle) error {
	_, err := p.client.Notify(ctx, &chordpb.NotifyRequest{Candidate: toWire(candidate)})
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return nil
}

func (p *peer) Ping(ctx context.Context) (rpc.PingResult, error) {
	reply, err := p.client.Ping(ctx, &chordpb.Empty{})
	if err != nil {
		return rpc.PingResult{}, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return rpc.PingResult{Handle: fromWire(reply.Node), State: rpc.State(reply.State)}, nil
}

func (p *peer) StoreDocument(ctx context.Context, doc rpc.Document) error {
	_, err := p.client.StoreDocument(ctx, &chordpb.StoreDocumentRequest{
		Document: &chordpb.Document{Key: uint64(doc.Key), Name: doc.Name, Value: doc.Value},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return nil
}

func (p *peer) RetrieveDocument(ctx context.Context, name string) (rpc.Document, bool, error) {
	reply, err := p.client.RetrieveDocument(ctx, &chordpb.RetrieveDocumentRequest{Name: name})
	if err != nil {
		return rpc.Document{}, false, fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	if !reply.Found {
		return rpc.Document{}, false, nil
	}
	d := reply.Document
	return rpc.Document{Key: chordspace.Key(d.GetKey()), Name: d.GetName(), Value: d.GetValue()}, true, nil
}

func (p *peer) RemoveDocument(ctx context.Context, name string) error {
	_, err := p.client.RemoveDocument(ctx, &chordpb.RemoveDocumentRequest{Name: name})
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return nil
}

func (p *peer) Leave(ctx context.Context, leaving, successor chordspace.NodeHandle) error {
	_, err := p.client.Leave(ctx, &chordpb.LeaveRequest{Leaving: toWire(leaving), Successor: toWire(successor)})
	if err != nil {
		return fmt.Errorf("%w: %v", rpc.ErrUnreachable, err)
	}
	return nil
}
