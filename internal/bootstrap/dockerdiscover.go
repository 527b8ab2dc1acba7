package bootstrap

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"chorddht/internal/chordspace"
	"chorddht/internal/config"
)

// DockerBootstrap discovers peers by listing sibling containers on a
// shared Docker network, filtered by a label every ring member
// carries. It has no directory to publish to, so Register/Deregister
// are no-ops: membership is derived from "is the container running",
// not from an explicit announcement.
type DockerBootstrap struct {
	cli     *client.Client
	network string
	label   string
	port    int
}

func NewDockerBootstrap(cfg config.DockerConfig) (*DockerBootstrap, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: docker client: %w", err)
	}
	return &DockerBootstrap{cli: cli, network: cfg.Network, label: cfg.Label, port: cfg.Port}, nil
}

func (d *DockerBootstrap) Discover(ctx context.Context) ([]string, error) {
	opts := container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("label", d.label)),
	}
	containers, err := d.cli.ContainerList(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: list containers: %w", err)
	}

	var peers []string
	for _, c := range containers {
		net, ok := c.NetworkSettings.Networks[d.network]
		if !ok || net.IPAddress == "" {
			continue
		}
		peers = append(peers, fmt.Sprintf("%s:%d", net.IPAddress, d.port))
	}
	return peers, nil
}

func (d *DockerBootstrap) Register(ctx context.Context, self chordspace.NodeHandle) error {
	return nil
}

func (d *DockerBootstrap) Deregister(ctx context.Context, self chordspace.NodeHandle) error {
	return nil
}
