// Package testutil provides test helpers shared across packages.
package testutil

import (
	"strings"
	"sync"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
)

// LogEntry is one message captured by RecordingLogger.
type LogEntry struct {
	Level   string
	Logger  string
	Message string
	Fields  map[string]interface{}
}

// RecordingLogger implements logging.Logger and keeps every entry in
// memory. Loggers derived through With and Named share the same entries.
type RecordingLogger struct {
	sink   *logSink
	name   string
	fields []logging.Field
}

type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{sink: &logSink{}}
}

func (l *RecordingLogger) log(level, msg string, fields []logging.Field) {
	all := make(map[string]interface{}, len(l.fields)+len(fields))
	for _, f := range l.fields {
		all[f.Key] = f.Value
	}
	for _, f := range fields {
		all[f.Key] = f.Value
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, LogEntry{Level: level, Logger: l.name, Message: msg, Fields: all})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.log("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.log("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.log("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.log("error", msg, fields) }
func (l *RecordingLogger) Fatal(msg string, fields ...logging.Field) { l.log("fatal", msg, fields) }

func (l *RecordingLogger) With(fields ...logging.Field) logging.Logger {
	merged := make([]logging.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &RecordingLogger{sink: l.sink, name: l.name, fields: merged}
}

// Named joins names with dots, as zap does.
func (l *RecordingLogger) Named(name string) logging.Logger {
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	return &RecordingLogger{sink: l.sink, name: full, fields: l.fields}
}

// Entries returns a copy of everything logged so far.
func (l *RecordingLogger) Entries() []LogEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]LogEntry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// Filter returns the entries at level whose message contains substr.
func (l *RecordingLogger) Filter(level, substr string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether an entry with exactly level and msg was logged.
func (l *RecordingLogger) Has(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

func (l *RecordingLogger) Reset() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = nil
}

//Personal.AI order the ending
