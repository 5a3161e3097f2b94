package observability

type Label struct {
	Key   string
	Value string
}

type MetricOpt struct {
	Help        string
	ConstLabels []Label
	LabelKeys   []string
}
