package server

import (
	"fmt"
	"net"

	"google.golang.org/grpc"

	"chorddht/internal/api/chordpb"
	"chorddht/internal/logger"
	"chorddht/internal/ring"
)

// Server wraps a gRPC server hosting the Chord RPC service for one
// node.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	lgr        logger.Logger
}

// New creates a gRPC server bound to lis, serving n's Chord RPC
// surface. Both grpc.ServerOptions and server.Options may be passed.
func New(lis net.Listener, n *ring.Node, grpcOpts []grpc.ServerOption, srvOpts ...Option) (*Server, error) {
	s := &Server{
		grpcServer: grpc.NewServer(grpcOpts...),
		listener:   lis,
		lgr:        logger.NopLogger{},
	}
	for _, opt := range srvOpts {
		opt(s)
	}
	chordpb.RegisterChordServer(s.grpcServer, NewChordService(n))
	return s, nil
}

// Start runs the gRPC server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.grpcServer.Serve(s.listener); err != nil {
		return fmt.Errorf("gRPC server stopped: %w", err)
	}
	return nil
}

// Stop immediately stops the server and closes all active connections.
func (s *Server) Stop() {
	s.grpcServer.Stop()
}

// GracefulStop waits for in-flight RPCs to complete before returning.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
