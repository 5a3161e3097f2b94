package implementation

import (
	"context"

	"github.com/jt828/flowtrace/pkg/observability"
)

const (
	defaultOTLPEndpoint = "localhost:4317"
	defaultMetricsAddr  = ":9090"
	defaultLogLevel     = "info"
)

type Config struct {
	ServiceName  string
	OTLPEndpoint string
	MetricsAddr  string
	LogLevel     string
}

func (c Config) withDefaults() Config {
	if c.OTLPEndpoint == "" {
		c.OTLPEndpoint = defaultOTLPEndpoint
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = defaultMetricsAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	return c
}

func NewObservability(cfg Config) (observability.Observability, error) {
	cfg = cfg.withDefaults()

	log, err := NewZapLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	meter := NewPrometheusMeter()

	tracer, shutdown, err := NewOtelTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	return &observabilityImplementation{
		log:         log,
		meter:       meter,
		tracer:      tracer,
		traceClose:  shutdown,
		metricsAddr: cfg.MetricsAddr,
	}, nil
}

// NewObservabilityWith assembles an Observability from already built parts.
// Start does not open a metrics listener.
func NewObservabilityWith(
	log observability.Logger,
	meter observability.Meter,
	tracer observability.Tracer,
) observability.Observability {
	return &observabilityImplementation{
		log:    log,
		meter:  meter,
		tracer: tracer,
	}
}
