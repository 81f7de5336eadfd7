package logging

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Environment is the structured-logging metadata attached to every
// operation event.
type Environment struct {
	Service string
	Version string
	Commit  string
}

// NewJSONLogger returns a slog.Logger writing newline-delimited JSON
// to stdout.
func NewJSONLogger() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h)
}

// Fields accumulates extra key/value pairs over the lifetime of one
// operation (register/prove/verify), mirroring the teacher's
// request-scoped field accumulator but keyed to a CLI operation
// instead of an inbound HTTP request.
type Fields struct {
	mu     sync.Mutex
	fields map[string]any
}

// NewFields returns an empty field accumulator.
func NewFields() *Fields {
	return &Fields{fields: make(map[string]any)}
}

// Add records one field to be included in the operation's log event.
func (f *Fields) Add(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[key] = value
}

func (f *Fields) snapshot() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]any, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Track runs fn, timing it and collecting whatever fields fn records,
// then emits one structured log event describing the operation: its
// name, duration, outcome, and accumulated fields. The error fn
// returns (if any) is passed through unchanged.
func Track(logger *slog.Logger, env Environment, operation string, fn func(fields *Fields) error) error {
	start := time.Now()
	fields := NewFields()

	err := fn(fields)

	event := map[string]any{
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"service":     env.Service,
		"version":     env.Version,
		"commit":      env.Commit,
		"operation":   operation,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		event["outcome"] = "error"
		event["error"] = err.Error()
	} else {
		event["outcome"] = "success"
	}
	for k, v := range fields.snapshot() {
		event[k] = v
	}
	logger.Info("causalproof_operation", slog.Any("event", event))

	return err
}
