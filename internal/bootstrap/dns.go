package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"

	"chorddht/internal/chordspace"
	"chorddht/internal/config"
)

// DNSBootstrap resolves peers by querying a DNS server directly for
// SRV records (one per ring member) when SRV mode is configured, and
// otherwise plain A/AAAA records against a fixed port. An empty SRV
// answer does not fall back to A/AAAA.
type DNSBootstrap struct {
	cfg    config.BootstrapConfig
	server string
}

func NewDNSBootstrap(cfg config.BootstrapConfig) *DNSBootstrap {
	server := cfg.Resolver
	if server == "" {
		server = "8.8.8.8:53"
	} else if !strings.Contains(server, ":") {
		server += ":53"
	}
	return &DNSBootstrap{cfg: cfg, server: server}
}

func (d *DNSBootstrap) Discover(ctx context.Context) ([]string, error) {
	client := &dns.Client{Timeout: 2 * time.Second}

	if d.cfg.SRV {
		return d.discoverSRV(ctx, client)
	}
	return d.discoverHost(ctx, client)
}

func (d *DNSBootstrap) discoverSRV(ctx context.Context, client *dns.Client) ([]string, error) {
	name := fmt.Sprintf("_%s._%s.%s", d.cfg.Service, d.cfg.Proto, d.cfg.DNSName)
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeSRV)

	in, _, err := client.ExchangeContext(ctx, msg, d.server)
	if err != nil || len(in.Answer) == 0 {
		return nil, nil
	}

	targets := map[string][]string{}
	for _, extra := range in.Extra {
		switch rr := extra.(type) {
		case *dns.A:
			targets[strings.TrimSuffix(rr.Hdr.Name, ".")] = append(targets[strings.TrimSuffix(rr.Hdr.Name, ".")], rr.A.String())
		case *dns.AAAA:
			targets[strings.TrimSuffix(rr.Hdr.Name, ".")] = append(targets[strings.TrimSuffix(rr.Hdr.Name, ".")], rr.AAAA.String())
		}
	}

	var out []string
	for _, ans := range in.Answer {
		srv, ok := ans.(*dns.SRV)
		if !ok {
			continue
		}
		target := strings.TrimSuffix(srv.Target, ".")
		ips := targets[target]
		if len(ips) == 0 {
			ips, _ = d.lookupA(ctx, client, target)
		}
		for _, ip := range ips {
			out = append(out, joinHostPort(ip, int(srv.Port)))
		}
	}
	return out, nil
}

func (d *DNSBootstrap) discoverHost(ctx context.Context, client *dns.Client) ([]string, error) {
	ips, err := d.lookupA(ctx, client, d.cfg.DNSName)
	if err != nil {
		return nil, nil
	}
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		out = append(out, joinHostPort(ip, d.cfg.Port))
	}
	return out, nil
}

func (d *DNSBootstrap) lookupA(ctx context.Context, client *dns.Client, name string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	in, _, err := client.ExchangeContext(ctx, msg, d.server)
	if err != nil {
		return nil, err
	}
	var ips []string
	for _, ans := range in.Answer {
		if a, ok := ans.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	if len(ips) > 0 {
		return ips, nil
	}
	msg6 := new(dns.Msg)
	msg6.SetQuestion(dns.Fqdn(name), dns.TypeAAAA)
	in6, _, err := client.ExchangeContext(ctx, msg6, d.server)
	if err != nil {
		return nil, err
	}
	for _, ans := range in6.Answer {
		if aaaa, ok := ans.(*dns.AAAA); ok {
			ips = append(ips, aaaa.AAAA.String())
		}
	}
	return ips, nil
}

func joinHostPort(ip string, port int) string {
	if strings.Contains(ip, ":") {
		return fmt.Sprintf("[%s]:%d", ip, port)
	}
	return fmt.Sprintf("%s:%d", ip, port)
}

// Register and Deregister are no-ops: plain DNS has no dynamic record
// to publish without a separate nsupdate/provider integration.
func (d *DNSBootstrap) Register(ctx context.Context, self chordspace.NodeHandle) error   { return nil }
func (d *DNSBootstrap) Deregister(ctx context.Context, self chordspace.NodeHandle) error { return nil }
