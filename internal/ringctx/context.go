// Package ringctx carries per-request bookkeeping — trace IDs and hop
// counters — through a context.Context, and centralizes the
// cancellation check every RPC handler runs before doing real work.
package ringctx

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chorddht/internal/tracing"
)

type hopsKey struct{}

// Option configures the context built by New. Multiple options
// combine.
type Option func(*config)

type config struct {
	withTrace bool
	withHops  bool
	nodeID    string
	timeout   time.Duration
}

// WithTrace attaches a fresh trace ID scoped to nodeID.
func WithTrace(nodeID string) Option {
	return func(c *config) {
		c.withTrace = true
		c.nodeID = nodeID
	}
}

// WithTimeout bounds the returned context to d. The caller must defer
// the returned cancel function.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHops starts the hop counter at 0.
func WithHops() Option {
	return func(c *config) {
		c.withHops = true
	}
}

// New builds a context.Background() derived context configured by
// opts. The returned cancel func is nil if no timeout was requested.
func New(opts ...Option) (context.Context, context.CancelFunc) {
	c := &config{}
	for _, o := range opts {
		o(c)
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	} else {
		ctx = context.Background()
	}
	if c.withTrace {
		ctx, _ = tracing.AttachTraceID(ctx, c.nodeID)
	}
	if c.withHops {
		ctx = context.WithValue(ctx, hopsKey{}, 0)
	}
	return ctx, cancel
}

// TraceID returns the trace ID carried by ctx, or "" if none.
func TraceID(ctx context.Context) string {
	return tracing.FromContext(ctx)
}

// EnsureTraceID attaches a trace ID scoped to nodeID if ctx doesn't
// already carry one.
func EnsureTraceID(ctx context.Context, nodeID string) context.Context {
	return tracing.EnsureTraceID(ctx, nodeID)
}

// Hops returns the current hop counter, or -1 if ctx isn't tracking
// hops.
func Hops(ctx context.Context) int {
	if hops, ok := ctx.Value(hopsKey{}).(int); ok {
		return hops
	}
	return -1
}

// IncHops returns a context with the hop counter advanced by one. A
// context not already tracking hops is returned unchanged.
func IncHops(ctx context.Context) context.Context {
	hops, ok := ctx.Value(hopsKey{}).(int)
	if !ok {
		return ctx
	}
	return context.WithValue(ctx, hopsKey{}, hops+1)
}

// Check reports a gRPC status error if ctx has already been canceled
// or has exceeded its deadline, nil otherwise. RPC handlers call this
// before doing any real work.
func Check(ctx context.Context) error {
	switch ctx.Err() {
	case context.Canceled:
		return status.Error(codes.Canceled, "request was canceled by client")
	case context.DeadlineExceeded:
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return nil
	}
}
