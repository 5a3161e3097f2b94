package observability

type Meter interface {
	Counter(name string, opts ...MetricOpt) Counter
	Gauge(name string, opts ...MetricOpt) Gauge
}

type Counter interface {
	Inc(v float64, labels ...Label)
}

// Gauge holds the latest value set per label combination.
type Gauge interface {
	Set(v float64, labels ...Label)
}
