package implementation

import (
	"context"

	"github.com/jt828/flowtrace/pkg/observability"
	"github.com/jt828/flowtrace/pkg/tracing"
)

const (
	counterMetricName = "flow_trace_counter"
	stateMetricName   = "flow_trace_state_changes_total"
	trackLabel        = "track"
	stateAttribute    = "flow.state"
)

type observabilityBackend struct {
	log     observability.Logger
	tracer  observability.Tracer
	counter observability.Gauge
	changes observability.Counter
}

// NewBackend publishes counter tracks as prometheus gauges, state changes as
// instant spans and log lines through the zap logger.
func NewBackend(obs observability.Observability) tracing.Backend {
	meter := obs.Meter()
	return &observabilityBackend{
		log:    obs.Logger(),
		tracer: obs.Tracer(),
		counter: meter.Gauge(counterMetricName, observability.MetricOpt{
			Help:      "Latest value published on a flow trace counter track.",
			LabelKeys: []string{trackLabel},
		}),
		changes: meter.Counter(stateMetricName, observability.MetricOpt{
			Help:      "Number of state changes recorded per flow trace track.",
			LabelKeys: []string{trackLabel},
		}),
	}
}

func (b *observabilityBackend) Counter(_ context.Context, track string, value int64) {
	b.counter.Set(float64(value), observability.Label{Key: trackLabel, Value: track})
}

func (b *observabilityBackend) State(ctx context.Context, track, value string) {
	_, span := b.tracer.Start(ctx, track)
	span.SetAttributes(observability.String(stateAttribute, value))
	span.End()

	b.changes.Inc(1, observability.Label{Key: trackLabel, Value: track})
}

func (b *observabilityBackend) Log(_ context.Context, tag, msg string) {
	b.log.Info(msg, observability.String("tag", tag))
}
