/*
Package observability exports FRASIG engine activity as Prometheus metrics.

Metrics are fed from domain.LifecycleHooks, so the engine itself has no
dependency on the metrics backend:

	m := observability.NewMetrics(prometheus.NewRegistry())
	eng, _ := frasig.New(parser, frasig.WithLifecycleHooks(m.Hooks()))
*/
package observability
