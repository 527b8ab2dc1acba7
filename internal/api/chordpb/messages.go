// Package chordpb holds the wire messages and gRPC service stubs for
// the Chord RPC surface. It is written by hand in the pre-APIv2
// protoc-gen-go style — struct tags plus Reset/String/ProtoMessage,
// no generated .proto/.pb.go in the retrieved sources to regenerate
// from — rather than a hand-rolled substitute for protobuf itself.
// google.golang.org/protobuf wraps any type satisfying this legacy
// shape through its v1 compatibility path, so these still marshal
// correctly over a real grpc.ClientConn.
package chordpb

import "fmt"

// NodeHandle is the wire form of chordspace.NodeHandle.
type NodeHandle struct {
	Id       string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Key      uint64 `protobuf:"varint,2,opt,name=key,proto3" json:"key,omitempty"`
	Endpoint string `protobuf:"bytes,3,opt,name=endpoint,proto3" json:"endpoint,omitempty"`
}

func (m *NodeHandle) Reset()         { *m = NodeHandle{} }
func (m *NodeHandle) String() string { return fmt.Sprintf("NodeHandle(%s)", m.GetId()) }
func (m *NodeHandle) ProtoMessage()  {}

func (m *NodeHandle) GetId() string {
	if m == nil {
		return ""
	}
	return m.Id
}
func (m *NodeHandle) GetKey() uint64 {
	if m == nil {
		return 0
	}
	return m.Key
}
func (m *NodeHandle) GetEndpoint() string {
	if m == nil {
		return ""
	}
	return m.Endpoint
}

// FindSuccessorRequest asks for the node responsible for Key.
type FindSuccessorRequest struct {
	Key uint64 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *FindSuccessorRequest) Reset()         { *m = FindSuccessorRequest{} }
func (m *FindSuccessorRequest) String() string { return fmt.Sprintf("FindSuccessorRequest(%d)", m.Key) }
func (m *FindSuccessorRequest) ProtoMessage()  {}

// ClosestPrecedingRequest asks for the best finger-table guess for Key.
type ClosestPrecedingRequest struct {
	Key uint64 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *ClosestPrecedingRequest) Reset() { *m = ClosestPrecedingRequest{} }
func (m *ClosestPrecedingRequest) String() string {
	return fmt.Sprintf("ClosestPrecedingRequest(%d)", m.Key)
}
func (m *ClosestPrecedingRequest) ProtoMessage() {}

// NodeReply wraps a single NodeHandle answer.
type NodeReply struct {
	Node *NodeHandle `protobuf:"bytes,1,opt,name=node,proto3" json:"node,omitempty"`
}

func (m *NodeReply) Reset()         { *m = NodeReply{} }
func (m *NodeReply) String() string { return fmt.Sprintf("NodeReply(%v)", m.Node) }
func (m *NodeReply) ProtoMessage()  {}
func (m *NodeReply) GetNode() *NodeHandle {
	if m == nil {
		return nil
	}
	return m.Node
}

// GetPredecessorReply answers whether the node has a predecessor, and
// what it is.
type GetPredecessorReply struct {
	Node    *NodeHandle `protobuf:"bytes,1,opt,name=node,proto3" json:"node,omitempty"`
	Present bool        `protobuf:"varint,2,opt,name=present,proto3" json:"present,omitempty"`
}

func (m *GetPredecessorReply) Reset()         { *m = GetPredecessorReply{} }
func (m *GetPredecessorReply) String() string { return fmt.Sprintf("GetPredecessorReply(%v)", m.Node) }
func (m *GetPredecessorReply) ProtoMessage()  {}

// GetSuccessorsReply is the responding node's full successor list.
type GetSuccessorsReply struct {
	Nodes []*NodeHandle `protobuf:"bytes,1,rep,name=nodes,proto3" json:"nodes,omitempty"`
}

func (m *GetSuccessorsReply) Reset()         { *m = GetSuccessorsReply{} }
func (m *GetSuccessorsReply) String() string { return fmt.Sprintf("GetSuccessorsReply(%d)", len(m.Nodes)) }
func (m *GetSuccessorsReply) ProtoMessage()  {}

// NotifyRequest announces a candidate predecessor.
type NotifyRequest struct {
	Candidate *NodeHandle `protobuf:"bytes,1,opt,name=candidate,proto3" json:"candidate,omitempty"`
}

func (m *NotifyRequest) Reset()         { *m = NotifyRequest{} }
func (m *NotifyRequest) String() string { return fmt.Sprintf("NotifyRequest(%v)", m.Candidate) }
func (m *NotifyRequest) ProtoMessage()  {}

// PingReply answers a liveness probe with the responder's own handle
// and lifecycle state.
type PingReply struct {
	Node  *NodeHandle `protobuf:"bytes,1,opt,name=node,proto3" json:"node,omitempty"`
	State int32       `protobuf:"varint,2,opt,name=state,proto3" json:"state,omitempty"`
}

func (m *PingReply) Reset()         { *m = PingReply{} }
func (m *PingReply) String() string { return fmt.Sprintf("PingReply(state=%d)", m.State) }
func (m *PingReply) ProtoMessage()  {}

// Document is the wire form of a stored name/value pair.
type Document struct {
	Key   uint64 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
	Name  string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Value []byte `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Document) Reset()         { *m = Document{} }
func (m *Document) String() string { return fmt.Sprintf("Document(%s)", m.Name) }
func (m *Document) ProtoMessage()  {}

// StoreDocumentRequest carries a document to its owner.
type StoreDocumentRequest struct {
	Document *Document `protobuf:"bytes,1,opt,name=document,proto3" json:"document,omitempty"`
}

func (m *StoreDocumentRequest) Reset()         { *m = StoreDocumentRequest{} }
func (m *StoreDocumentRequest) String() string { return "StoreDocumentRequest" }
func (m *StoreDocumentRequest) ProtoMessage()  {}

// RetrieveDocumentRequest asks for a document by name.
type RetrieveDocumentRequest struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *RetrieveDocumentRequest) Reset()         { *m = RetrieveDocumentRequest{} }
func (m *RetrieveDocumentRequest) String() string { return fmt.Sprintf("RetrieveDocumentRequest(%s)", m.Name) }
func (m *RetrieveDocumentRequest) ProtoMessage()  {}

// RetrieveDocumentReply answers a retrieve request.
type RetrieveDocumentReply struct {
	Document *Document `protobuf:"bytes,1,opt,name=document,proto3" json:"document,omitempty"`
	Found    bool      `protobuf:"varint,2,opt,name=found,proto3" json:"found,omitempty"`
}

func (m *RetrieveDocumentReply) Reset()         { *m = RetrieveDocumentReply{} }
func (m *RetrieveDocumentReply) String() string { return fmt.Sprintf("RetrieveDocumentReply(found=%v)", m.Found) }
func (m *RetrieveDocumentReply) ProtoMessage()  {}

// RemoveDocumentRequest asks the owner to delete a document by name.
type RemoveDocumentRequest struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *RemoveDocumentRequest) Reset()         { *m = RemoveDocumentRequest{} }
func (m *RemoveDocumentRequest) String() string { return fmt.Sprintf("RemoveDocumentRequest(%s)", m.Name) }
func (m *RemoveDocumentRequest) ProtoMessage()  {}

// LeaveRequest announces a voluntary departure, naming the departing
// node and, when known, the successor that should replace it.
type LeaveRequest struct {
	Leaving   *NodeHandle `protobuf:"bytes,1,opt,name=leaving,proto3" json:"leaving,omitempty"`
	Successor *NodeHandle `protobuf:"bytes,2,opt,name=successor,proto3" json:"successor,omitempty"`
}

func (m *LeaveRequest) Reset()         { *m = LeaveRequest{} }
func (m *LeaveRequest) String() string { return "LeaveRequest" }
func (m *LeaveRequest) ProtoMessage()  {}

// Empty is a zero-field message, used as the request of RPCs that take
// no arguments and as the reply of RPCs that return nothing.
type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return "Empty" }
func (m *Empty) ProtoMessage()  {}
