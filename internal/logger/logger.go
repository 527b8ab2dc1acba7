// Package logger is the structured logging interface the ring, RPC,
// and bootstrap packages depend on, kept deliberately small so tests
// can swap in NopLogger without pulling in zap.
package logger

import "chorddht/internal/chordspace"

// Field is one structured key/value pair attached to a log line.
type Field struct {
	Key string
	Val any
}

// Logger is the minimal structured logging surface used throughout the
// core. Named scopes a logger under a component name; With binds fields
// that every subsequent call carries.
type Logger interface {
	Named(name string) Logger
	With(fields ...Field) Logger
	WithNode(h chordspace.NodeHandle) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// F builds a Field concisely.
func F(key string, val any) Field { return Field{Key: key, Val: val} }

// FNode serializes a NodeHandle into a readable structured field.
func FNode(key string, h chordspace.NodeHandle) Field {
	return Field{
		Key: key,
		Val: map[string]any{
			"id":       h.ID,
			"key":      uint64(h.Key),
			"endpoint": h.Endpoint,
		},
	}
}

// FDocument serializes a document name/key pair into a structured field.
func FDocument(key string, name string, k chordspace.Key) Field {
	return Field{Key: key, Val: map[string]any{"name": name, "key": uint64(k)}}
}

// NopLogger discards everything. Used by tests and by binaries running
// with logging disabled.
type NopLogger struct{}

func (l NopLogger) Named(name string) Logger                          { return l }
func (l NopLogger) With(fields ...Field) Logger                       { return l }
func (l NopLogger) WithNode(h chordspace.NodeHandle) Logger           { return l }
func (l NopLogger) Debug(msg string, fields ...Field)                 {}
func (l NopLogger) Info(msg string, fields ...Field)  {}
func (l NopLogger) Warn(msg string, fields ...Field)  {}
func (l NopLogger) Error(msg string, fields ...Field) {}
