// Package metrics provides observability hooks for documentation generation runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	invoker := docgen.NewInvoker(store, gen, docgen.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// CLI runs are short-lived, so the collected values are written to a
// node-exporter textfile with WriteTextfile rather than scraped over HTTP.
package metrics
