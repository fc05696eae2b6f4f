// Package testutil provides test-only helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Record is one captured log record.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that retains every record in memory so
// tests can assert on what a component logged. Safe for concurrent use.
type CaptureHandler struct {
	mu      sync.Mutex
	bound   []slog.Attr
	records *[]Record
}

// NewLogger returns a logger wired to a fresh capture handler.
func NewLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{records: &[]Record{}}
	return slog.New(h), h
}

func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.bound))
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, Record{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// WithAttrs returns a handler sharing the same record buffer with the extra
// attributes bound, so records logged through derived loggers stay visible.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make([]slog.Attr, 0, len(h.bound)+len(attrs))
	bound = append(bound, h.bound...)
	bound = append(bound, attrs...)
	return &CaptureHandler{bound: bound, records: h.records}
}

func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(*h.records))
	copy(out, *h.records)
	return out
}

// ContainsMessage reports whether any captured record at the given level
// contains the substring.
func (h *CaptureHandler) ContainsMessage(level slog.Level, message string) bool {
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute from the first record that
// carries it.
func (h *CaptureHandler) Attr(key string) (any, bool) {
	for _, r := range h.Records() {
		if v, ok := r.Attrs[key]; ok {
			return v, true
		}
	}
	return nil, false
}
