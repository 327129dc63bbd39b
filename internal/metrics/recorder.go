package metrics

import "time"

// ResultLabel enumerates per-configuration result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// RunOutcomeLabel enumerates final outcomes of a generation run.
type RunOutcomeLabel string

const (
	RunSuccess RunOutcomeLabel = "success"
	RunFailed  RunOutcomeLabel = "failed"
	RunAborted RunOutcomeLabel = "aborted"
)

// Recorder defines observability hooks for generation metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveGenerationDuration(project string, d time.Duration)
	IncConfigResult(project string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerationDuration(string, time.Duration) {}
func (NoopRecorder) IncConfigResult(string, ResultLabel)             {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)                   {}
