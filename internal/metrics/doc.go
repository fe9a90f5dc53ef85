// Package metrics records celerity-docs service metrics.
//
// Components depend on the Recorder interface. NoopRecorder is the default so
// callers never need nil checks; PrometheusRecorder is injected by `serve`
// and exposed through HTTPHandler at /metrics.
//
//	rec := metrics.NewPrometheusRecorder(reg)
//	svc := search.NewService(backend, search.WithRecorder(rec))
package metrics
