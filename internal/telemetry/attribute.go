package telemetry

import (
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"chorddht/internal/chordspace"
)

// HandleAttributes expands a node handle into span/resource attributes
// under prefix, covering both its wire identity and ring position.
func HandleAttributes(prefix string, h chordspace.NodeHandle) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(prefix+".id", h.ID),
		attribute.String(prefix+".key", strconv.FormatUint(uint64(h.Key), 10)),
		attribute.String(prefix+".endpoint", h.Endpoint),
	}
}
