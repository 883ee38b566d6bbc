package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is one captured slog record.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogRecorder is a slog.Handler that keeps every record in memory.
//
// Thread-safety: safe for concurrent use. Handlers derived through WithAttrs
// share the parent's entry list.
type LogRecorder struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	attrs   []slog.Attr
}

// NewLogRecorder returns an empty recorder.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

// Logger returns a *slog.Logger writing to the recorder.
func (r *LogRecorder) Logger() *slog.Logger {
	return slog.New(r)
}

// Entries returns a copy of the captured records.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Count returns how many records at level were captured.
func (r *LogRecorder) Count(level slog.Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Last returns the most recent record and whether there was one.
func (r *LogRecorder) Last() (LogEntry, bool) {
	entries := r.Entries()
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (r *LogRecorder) Handle(_ context.Context, rec slog.Record) error {
	attrs := make(map[string]any, rec.NumAttrs()+len(r.attrs))
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, LogEntry{Level: rec.Level, Message: rec.Message, Attrs: attrs})
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &LogRecorder{mu: r.mu, entries: r.entries}
	next.attrs = append(append([]slog.Attr(nil), r.attrs...), attrs...)
	return next
}

// WithGroup is a no-op; groups are flattened.
func (r *LogRecorder) WithGroup(string) slog.Handler {
	return r
}
