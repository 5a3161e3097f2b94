package tracing

import "context"

// Backend receives trace markers. Calls are synchronous and inline with
// element delivery, so implementations should return quickly.
type Backend interface {
	// Counter sets the counter track to value.
	Counter(ctx context.Context, track string, value int64)
	// State records that the named track changed to value.
	State(ctx context.Context, track, value string)
	// Log writes a text log line tagged with tag.
	Log(ctx context.Context, tag, msg string)
}

type noopBackend struct{}

func (noopBackend) Counter(context.Context, string, int64) {}
func (noopBackend) State(context.Context, string, string)  {}
func (noopBackend) Log(context.Context, string, string)    {}

// NoopBackend discards every marker.
func NoopBackend() Backend {
	return noopBackend{}
}
