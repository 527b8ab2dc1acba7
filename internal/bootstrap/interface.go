// Package bootstrap resolves the set of peers a node should attempt to
// join through, and optionally publishes the node's own address so
// later joiners can find it.
package bootstrap

import (
	"context"
	"fmt"

	"chorddht/internal/chordspace"
	"chorddht/internal/config"
)

// Bootstrap discovers ring peers and, for modes backed by a directory
// service, announces this node's own presence.
type Bootstrap interface {
	// Discover returns known peer addresses, or an empty slice if none
	// are known yet (the caller should then create a new ring).
	Discover(ctx context.Context) ([]string, error)
	// Register publishes self's address, a no-op for modes with no
	// directory to publish to (e.g. a static peer list).
	Register(ctx context.Context, self chordspace.NodeHandle) error
	// Deregister removes a previously published address.
	Deregister(ctx context.Context, self chordspace.NodeHandle) error
}

// New builds the Bootstrap implementation named by cfg.Mode.
func New(cfg config.BootstrapConfig) (Bootstrap, error) {
	switch cfg.Mode {
	case "static":
		return NewStaticBootstrap(cfg.Peers), nil
	case "dns":
		return NewDNSBootstrap(cfg), nil
	case "route53":
		return NewRoute53Bootstrap(cfg.Register)
	case "docker":
		return NewDockerBootstrap(cfg.Docker)
	default:
		return nil, fmt.Errorf("bootstrap: unsupported mode %q", cfg.Mode)
	}
}
