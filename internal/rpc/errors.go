package rpc

import "errors"

var (
	// ErrUnreachable means the dialer could not reach the target handle
	// at all (connection refused, DNS failure, context deadline).
	ErrUnreachable = errors.New("rpc: peer unreachable")

	// ErrNoPredecessor names the case of a remote node with no
	// predecessor set. GetPredecessor reports that case with ok == false
	// and a nil error; no adapter returns this value.
	ErrNoPredecessor = errors.New("rpc: remote has no predecessor")

	// ErrUnknownPeer is returned by the local (in-process) adapter when
	// asked to dial a handle that no registered node recognizes.
	ErrUnknownPeer = errors.New("rpc: unknown peer")

	// ErrRejected names a remote peer actively refusing a request. No
	// adapter returns it; a dead peer surfaces as ErrUnreachable or as
	// the transport's own error.
	ErrRejected = errors.New("rpc: request rejected by peer")
)
