// Package rpcpool manages the gRPC client connections the ring core
// dials out through. It consolidates three mutually inconsistent pool
// shapes the original client package carried (a bare map keyed by
// address, a TTL-evicting connection manager, and an RPC wrapper with
// sentinel errors) into the one the rest of the system actually calls:
// dial-by-endpoint with reference counting, so a connection in active
// use by one lookup is never closed out from under a concurrent one.
package rpcpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"chorddht/internal/logger"
)

type entry struct {
	conn *grpc.ClientConn
	refs int
}

// Pool is a mutex-guarded, reference-counted map of endpoint ->
// *grpc.ClientConn. Unreferenced connections are closed only when
// CloseIdle or CloseAll is called; there is no eviction timer.
type Pool struct {
	mu          sync.Mutex
	conns       map[string]*entry
	dialTimeout time.Duration
	lgr         logger.Logger
}

// New returns an empty pool. Get builds connections with
// grpc.NewClient, which connects lazily and does not take the
// dialTimeout-bounded context, so dialTimeout does not limit connection
// setup.
func New(dialTimeout time.Duration, lgr logger.Logger) *Pool {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Pool{
		conns:       make(map[string]*entry),
		dialTimeout: dialTimeout,
		lgr:         lgr.Named("rpcpool"),
	}
}

// Get returns a connection to endpoint, dialing one if none exists yet,
// and increments its reference count. Callers must call Release when
// done with the connection.
func (p *Pool) Get(ctx context.Context, endpoint string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	if e, ok := p.conns[endpoint]; ok {
		e.refs++
		p.mu.Unlock()
		return e.conn, nil
	}
	p.mu.Unlock()

	dialCtx := ctx
	var cancel context.CancelFunc
	if p.dialTimeout > 0 {
		dialCtx, cancel = context.WithTimeout(ctx, p.dialTimeout)
		defer cancel()
	}
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("rpcpool: dial %s: %w", endpoint, err)
	}
	_ = dialCtx

	p.mu.Lock()
	if e, ok := p.conns[endpoint]; ok {
		e.refs++
		p.mu.Unlock()
		conn.Close()
		return e.conn, nil
	}
	p.conns[endpoint] = &entry{conn: conn, refs: 1}
	p.mu.Unlock()
	p.lgr.Debug("dialed new connection", logger.F("endpoint", endpoint))
	return conn, nil
}

// Release decrements endpoint's reference count. It does not close the
// connection even at zero refs: idle connections are reused by the
// next Get rather than torn down eagerly, since churn in a stabilizing
// ring makes the same few endpoints get dialed over and over.
func (p *Pool) Release(endpoint string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.conns[endpoint]; ok && e.refs > 0 {
		e.refs--
	}
}

// CloseIdle closes and forgets every connection with zero outstanding
// references, intended to be run on a slow periodic timer by callers
// that want bounded connection count over long process lifetimes.
func (p *Pool) CloseIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for endpoint, e := range p.conns {
		if e.refs == 0 {
			e.conn.Close()
			delete(p.conns, endpoint)
		}
	}
}

// CloseAll closes every pooled connection regardless of refcount, for
// use at process shutdown.
func (p *Pool) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for endpoint, e := range p.conns {
		e.conn.Close()
		delete(p.conns, endpoint)
	}
}
