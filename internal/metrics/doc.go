// Package metrics provides build and watch metrics for bookbuilder.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers collectors on a
// caller-supplied registry and HTTPHandler exposes that registry.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	pub := publish.New(layout, publish.WithObserver(publish.NewMetricsObserver(rec)))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
