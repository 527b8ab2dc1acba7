package server

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chorddht/internal/api/chordpb"
	"chorddht/internal/chordspace"
	"chorddht/internal/document"
	"chorddht/internal/ring"
	"chorddht/internal/ringctx"
	"chorddht/internal/rpc"
	"chorddht/internal/telemetry/lookuptrace"
)

// chordService implements chordpb.ChordServer by delegating straight
// into a *ring.Node. It is the networked counterpart of
// internal/rpc/local's in-process peer adapter: the same narrow
// capability set, wired to the wire protocol instead of a directory.
type chordService struct {
	chordpb.UnimplementedChordServer
	node *ring.Node
}

// NewChordService builds a chordpb.ChordServer bound to n.
func NewChordService(n *ring.Node) chordpb.ChordServer {
	return &chordService{node: n}
}

func toWire(h chordspace.NodeHandle) *chordpb.NodeHandle {
	return &chordpb.NodeHandle{Id: h.ID, Key: uint64(h.Key), Endpoint: h.Endpoint}
}

func fromWire(h *chordpb.NodeHandle) chordspace.NodeHandle {
	if h == nil {
		return chordspace.NodeHandle{}
	}
	return chordspace.NodeHandle{ID: h.Id, Key: chordspace.Key(h.Key), Endpoint: h.Endpoint}
}

func (s *chordService) FindSuccessor(ctx context.Context, req *chordpb.FindSuccessorRequest) (*chordpb.NodeReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	ctx = lookuptrace.WithLookup(ctx)
	h, err := s.node.FindSuccessor(ctx, chordspace.Key(req.GetKey()))
	if err != nil {
		if errors.Is(err, ring.ErrLookupDiverged) {
			return nil, status.Error(codes.DeadlineExceeded, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "find_successor: %v", err)
	}
	return &chordpb.NodeReply{Node: toWire(h)}, nil
}

func (s *chordService) ClosestPreceding(ctx context.Context, req *chordpb.ClosestPrecedingRequest) (*chordpb.NodeReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	h := s.node.ClosestPrecedingNode(chordspace.Key(req.GetKey()))
	return &chordpb.NodeReply{Node: toWire(h)}, nil
}

func (s *chordService) GetPredecessor(ctx context.Context, _ *chordpb.Empty) (*chordpb.GetPredecessorReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	pred, ok := s.node.Predecessor()
	if !ok {
		return &chordpb.GetPredecessorReply{Present: false}, nil
	}
	return &chordpb.GetPredecessorReply{Node: toWire(pred), Present: true}, nil
}

func (s *chordService) GetSuccessors(ctx context.Context, _ *chordpb.Empty) (*chordpb.GetSuccessorsReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	list := s.node.SuccessorList()
	out := make([]*chordpb.NodeHandle, len(list))
	for i, h := range list {
		out[i] = toWire(h)
	}
	return &chordpb.GetSuccessorsReply{Nodes: out}, nil
}

func (s *chordService) Notify(ctx context.Context, req *chordpb.NotifyRequest) (*chordpb.Empty, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	if req.GetCandidate() == nil {
		return nil, status.Error(codes.InvalidArgument, "missing candidate")
	}
	s.node.Notify(ctx, fromWire(req.Candidate))
	return &chordpb.Empty{}, nil
}

func (s *chordService) Ping(ctx context.Context, _ *chordpb.Empty) (*chordpb.PingReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	state := int32(rpc.StateRunning)
	if s.node.State() != ring.StateRunning {
		state = int32(rpc.StateDead)
	}
	return &chordpb.PingReply{Node: toWire(s.node.Handle()), State: state}, nil
}

func (s *chordService) StoreDocument(ctx context.Context, req *chordpb.StoreDocumentRequest) (*chordpb.Empty, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	d := req.GetDocument()
	if d == nil || d.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "missing document")
	}
	s.node.StoreDocumentLocal(document.Document{Key: chordspace.Key(d.Key), Name: d.Name, Value: d.Value})
	return &chordpb.Empty{}, nil
}

func (s *chordService) RetrieveDocument(ctx context.Context, req *chordpb.RetrieveDocumentRequest) (*chordpb.RetrieveDocumentReply, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	doc, ok := s.node.RetrieveDocumentLocal(req.GetName())
	if !ok {
		return &chordpb.RetrieveDocumentReply{Found: false}, nil
	}
	return &chordpb.RetrieveDocumentReply{
		Found:    true,
		Document: &chordpb.Document{Key: uint64(doc.Key), Name: doc.Name, Value: doc.Value},
	}, nil
}

func (s *chordService) RemoveDocument(ctx context.Context, req *chordpb.RemoveDocumentRequest) (*chordpb.Empty, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	s.node.RemoveDocumentLocal(req.GetName())
	return &chordpb.Empty{}, nil
}

func (s *chordService) Leave(ctx context.Context, req *chordpb.LeaveRequest) (*chordpb.Empty, error) {
	if err := ringctx.Check(ctx); err != nil {
		return nil, err
	}
	if req.GetLeaving() == nil {
		return nil, status.Error(codes.InvalidArgument, "missing leaving node")
	}
	s.node.HandleLeave(fromWire(req.Leaving), fromWire(req.Successor))
	return &chordpb.Empty{}, nil
}
