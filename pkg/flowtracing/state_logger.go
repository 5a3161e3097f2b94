package flowtracing

import (
	"context"

	"github.com/jt828/flowtrace/pkg/tracing"
)

// TraceStateLogger records the latest value of a named piece of state on a
// trace track, and optionally mirrors it to the text log.
type TraceStateLogger struct {
	backend tracing.Backend
	name    string
	logcat  bool
}

// NewTraceStateLogger returns a logger for the track name. With logcat set,
// every value is also written to the backend's text log.
func NewTraceStateLogger(backend tracing.Backend, name string, logcat bool) *TraceStateLogger {
	return &TraceStateLogger{
		backend: backend,
		name:    name,
		logcat:  logcat,
	}
}

// Name returns the track the logger records on.
func (l *TraceStateLogger) Name() string { return l.name }

// Log records value as the track's new state.
func (l *TraceStateLogger) Log(ctx context.Context, value string) {
	l.backend.State(ctx, l.name, value)
	if l.logcat {
		l.backend.Log(ctx, l.name, value)
	}
}
