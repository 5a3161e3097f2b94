package observability

import "context"

// Observability bundles the logger, meter and tracer a process reports through.
// Start must be called before metrics are scraped and Close flushes pending
// spans.
type Observability interface {
	Close(ctx context.Context) error
	Logger() Logger
	Meter() Meter
	Start(ctx context.Context) error
	Tracer() Tracer
}
