package bootstrap

import (
	"context"

	"chorddht/internal/chordspace"
)

// StaticBootstrap returns a fixed, operator-supplied list of peers.
type StaticBootstrap struct {
	peers []string
}

func NewStaticBootstrap(peers []string) *StaticBootstrap {
	return &StaticBootstrap{peers: peers}
}

func (s *StaticBootstrap) Discover(ctx context.Context) ([]string, error) {
	return s.peers, nil
}

func (s *StaticBootstrap) Register(ctx context.Context, self chordspace.NodeHandle) error {
	return nil
}

func (s *StaticBootstrap) Deregister(ctx context.Context, self chordspace.NodeHandle) error {
	return nil
}
