// Package tracing generates and threads per-lookup trace identifiers
// through a find_successor walk, independent of whether OpenTelemetry
// spans are enabled: a trace ID is cheap enough to always attach, and
// lets a log line from any hop be correlated back to the lookup that
// caused it even when tracing export is off.
package tracing

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type traceKey struct{}

// GenerateTraceID builds a new trace identifier scoped to the node
// that originated the lookup: <nodeID>-<ULID>. The ULID component is
// time-sortable, so trace IDs emitted by one node naturally sort by
// when the lookup started.
func GenerateTraceID(nodeID string) string {
	return nodeID + "-" + ulid.Make().String()
}

// AttachTraceID returns a context carrying a freshly generated trace ID
// scoped to nodeID, plus that ID for immediate use by the caller.
func AttachTraceID(ctx context.Context, nodeID string) (context.Context, string) {
	id := GenerateTraceID(nodeID)
	return context.WithValue(ctx, traceKey{}, id), id
}

// WithTraceID attaches an already-known trace ID (e.g. one read off an
// incoming RPC) rather than generating a new one.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// FromContext returns the trace ID attached to ctx, or "" if none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

// EnsureTraceID returns ctx unchanged if it already carries a trace ID,
// or attaches a freshly generated one scoped to nodeID otherwise. This
// is what a lookup entry point calls so a trace ID is assigned exactly
// once, at the first node that handles the request.
func EnsureTraceID(ctx context.Context, nodeID string) context.Context {
	if FromContext(ctx) != "" {
		return ctx
	}
	ctx, _ = AttachTraceID(ctx, nodeID)
	return ctx
}
