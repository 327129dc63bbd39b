package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                *prom.Registry
	generationDuration *prom.HistogramVec
	configResults      *prom.CounterVec
	runDuration        prom.Histogram
	runOutcomes        *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A fresh registry is created when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		generationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docpipe",
			Name:      "generation_duration_seconds",
			Help:      "Duration of a single documentation generator invocation",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"project"}),
		configResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpipe",
			Name:      "configuration_results_total",
			Help:      "Documentation configuration results by outcome",
		}, []string{"project", "result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docpipe",
			Name:      "run_duration_seconds",
			Help:      "Total duration of a generation run across all projects",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpipe",
			Name:      "run_outcomes_total",
			Help:      "Generation runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.generationDuration, pr.configResults, pr.runDuration, pr.runOutcomes)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveGenerationDuration(project string, d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.WithLabelValues(project).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConfigResult(project string, result ResultLabel) {
	if p == nil {
		return
	}
	p.configResults.WithLabelValues(project, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes all gathered metrics in the text exposition format
// to path for the node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
