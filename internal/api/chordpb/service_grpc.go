package chordpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Chord_FindSuccessor_FullMethodName      = "/chordpb.Chord/FindSuccessor"
	Chord_ClosestPreceding_FullMethodName   = "/chordpb.Chord/ClosestPreceding"
	Chord_GetPredecessor_FullMethodName     = "/chordpb.Chord/GetPredecessor"
	Chord_GetSuccessors_FullMethodName      = "/chordpb.Chord/GetSuccessors"
	Chord_Notify_FullMethodName             = "/chordpb.Chord/Notify"
	Chord_Ping_FullMethodName               = "/chordpb.Chord/Ping"
	Chord_StoreDocument_FullMethodName      = "/chordpb.Chord/StoreDocument"
	Chord_RetrieveDocument_FullMethodName   = "/chordpb.Chord/RetrieveDocument"
	Chord_RemoveDocument_FullMethodName     = "/chordpb.Chord/RemoveDocument"
	Chord_Leave_FullMethodName              = "/chordpb.Chord/Leave"
)

// ChordClient is the client API for the Chord RPC service.
type ChordClient interface {
	FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*NodeReply, error)
	ClosestPreceding(ctx context.Context, in *ClosestPrecedingRequest, opts ...grpc.CallOption) (*NodeReply, error)
	GetPredecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetPredecessorReply, error)
	GetSuccessors(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetSuccessorsReply, error)
	Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) (*Empty, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingReply, error)
	StoreDocument(ctx context.Context, in *StoreDocumentRequest, opts ...grpc.CallOption) (*Empty, error)
	RetrieveDocument(ctx context.Context, in *RetrieveDocumentRequest, opts ...grpc.CallOption) (*RetrieveDocumentReply, error)
	RemoveDocument(ctx context.Context, in *RemoveDocumentRequest, opts ...grpc.CallOption) (*Empty, error)
	Leave(ctx context.Context, in *LeaveRequest, opts ...grpc.CallOption) (*Empty, error)
}

type chordClient struct {
	cc grpc.ClientConnInterface
}

// NewChordClient wraps an established connection as a ChordClient.
func NewChordClient(cc grpc.ClientConnInterface) ChordClient {
	return &chordClient{cc}
}

func (c *chordClient) FindSuccessor(ctx context.Context, in *FindSuccessorRequest, opts ...grpc.CallOption) (*NodeReply, error) {
	out := new(NodeReply)
	if err := c.cc.Invoke(ctx, Chord_FindSuccessor_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) ClosestPreceding(ctx context.Context, in *ClosestPrecedingRequest, opts ...grpc.CallOption) (*NodeReply, error) {
	out := new(NodeReply)
	if err := c.cc.Invoke(ctx, Chord_ClosestPreceding_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) GetPredecessor(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetPredecessorReply, error) {
	out := new(GetPredecessorReply)
	if err := c.cc.Invoke(ctx, Chord_GetPredecessor_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) GetSuccessors(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetSuccessorsReply, error) {
	out := new(GetSuccessorsReply)
	if err := c.cc.Invoke(ctx, Chord_GetSuccessors_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, Chord_Notify_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingReply, error) {
	out := new(PingReply)
	if err := c.cc.Invoke(ctx, Chord_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) StoreDocument(ctx context.Context, in *StoreDocumentRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, Chord_StoreDocument_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) RetrieveDocument(ctx context.Context, in *RetrieveDocumentRequest, opts ...grpc.CallOption) (*RetrieveDocumentReply, error) {
	out := new(RetrieveDocumentReply)
	if err := c.cc.Invoke(ctx, Chord_RetrieveDocument_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) RemoveDocument(ctx context.Context, in *RemoveDocumentRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, Chord_RemoveDocument_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordClient) Leave(ctx context.Context, in *LeaveRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, Chord_Leave_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ChordServer is the server API for the Chord RPC service.
type ChordServer interface {
	FindSuccessor(context.Context, *FindSuccessorRequest) (*NodeReply, error)
	ClosestPreceding(context.Context, *ClosestPrecedingRequest) (*NodeReply, error)
	GetPredecessor(context.Context, *Empty) (*GetPredecessorReply, error)
	GetSuccessors(context.Context, *Empty) (*GetSuccessorsReply, error)
	Notify(context.Context, *NotifyRequest) (*Empty, error)
	Ping(context.Context, *Empty) (*PingReply, error)
	StoreDocument(context.Context, *StoreDocumentRequest) (*Empty, error)
	RetrieveDocument(context.Context, *RetrieveDocumentRequest) (*RetrieveDocumentReply, error)
	RemoveDocument(context.Context, *RemoveDocumentRequest) (*Empty, error)
	Leave(context.Context, *LeaveRequest) (*Empty, error)
}

// UnimplementedChordServer can be embedded by a partial implementation
// to satisfy ChordServer; every method returns codes.Unimplemented.
type UnimplementedChordServer struct{}

func (UnimplementedChordServer) FindSuccessor(context.Context, *FindSuccessorRequest) (*NodeReply, error) {
	return nil, status.Error(codes.Unimplemented, "method FindSuccessor not implemented")
}
func (UnimplementedChordServer) ClosestPreceding(context.Context, *ClosestPrecedingRequest) (*NodeReply, error) {
	return nil, status.Error(codes.Unimplemented, "method ClosestPreceding not implemented")
}
func (UnimplementedChordServer) GetPredecessor(context.Context, *Empty) (*GetPredecessorReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPredecessor not implemented")
}
func (UnimplementedChordServer) GetSuccessors(context.Context, *Empty) (*GetSuccessorsReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSuccessors not implemented")
}
func (UnimplementedChordServer) Notify(context.Context, *NotifyRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Notify not implemented")
}
func (UnimplementedChordServer) Ping(context.Context, *Empty) (*PingReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedChordServer) StoreDocument(context.Context, *StoreDocumentRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method StoreDocument not implemented")
}
func (UnimplementedChordServer) RetrieveDocument(context.Context, *RetrieveDocumentRequest) (*RetrieveDocumentReply, error) {
	return nil, status.Error(codes.Unimplemented, "method RetrieveDocument not implemented")
}
func (UnimplementedChordServer) RemoveDocument(context.Context, *RemoveDocumentRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveDocument not implemented")
}
func (UnimplementedChordServer) Leave(context.Context, *LeaveRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Leave not implemented")
}

// RegisterChordServer registers srv with s under the Chord service name.
func RegisterChordServer(s grpc.ServiceRegistrar, srv ChordServer) {
	s.RegisterService(&Chord_ServiceDesc, srv)
}

func _Chord_FindSuccessor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FindSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).FindSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_FindSuccessor_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).FindSuccessor(ctx, req.(*FindSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_ClosestPreceding_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ClosestPrecedingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).ClosestPreceding(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_ClosestPreceding_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).ClosestPreceding(ctx, req.(*ClosestPrecedingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_GetPredecessor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).GetPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_GetPredecessor_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).GetPredecessor(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_GetSuccessors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).GetSuccessors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_GetSuccessors_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).GetSuccessors(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Notify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(NotifyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Notify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_Notify_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Notify(ctx, req.(*NotifyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_Ping_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Ping(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_StoreDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StoreDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).StoreDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_StoreDocument_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).StoreDocument(ctx, req.(*StoreDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_RetrieveDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RetrieveDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).RetrieveDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_RetrieveDocument_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).RetrieveDocument(ctx, req.(*RetrieveDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_RemoveDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).RemoveDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_RemoveDocument_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).RemoveDocument(ctx, req.(*RemoveDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Chord_Leave_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LeaveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServer).Leave(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Chord_Leave_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChordServer).Leave(ctx, req.(*LeaveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Chord_ServiceDesc is the grpc.ServiceDesc for the Chord service.
var Chord_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "chordpb.Chord",
	HandlerType: (*ChordServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindSuccessor", Handler: _Chord_FindSuccessor_Handler},
		{MethodName: "ClosestPreceding", Handler: _Chord_ClosestPreceding_Handler},
		{MethodName: "GetPredecessor", Handler: _Chord_GetPredecessor_Handler},
		{MethodName: "GetSuccessors", Handler: _Chord_GetSuccessors_Handler},
		{MethodName: "Notify", Handler: _Chord_Notify_Handler},
		{MethodName: "Ping", Handler: _Chord_Ping_Handler},
		{MethodName: "StoreDocument", Handler: _Chord_StoreDocument_Handler},
		{MethodName: "RetrieveDocument", Handler: _Chord_RetrieveDocument_Handler},
		{MethodName: "RemoveDocument", Handler: _Chord_RemoveDocument_Handler},
		{MethodName: "Leave", Handler: _Chord_Leave_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chordpb/chord.proto",
}
