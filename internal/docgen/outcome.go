package docgen

import "sync/atomic"

// FailureRecorder accumulates error signals from generator loggers.
type FailureRecorder interface {
	RecordFailure()
}

// FailureFunc adapts a plain callback to FailureRecorder.
type FailureFunc func()

func (f FailureFunc) RecordFailure() {
	if f != nil {
		f()
	}
}

// Outcome is the result of one generation pass for a project.
type Outcome struct {
	failed atomic.Bool

	// OutputDirs lists output directories in processing order.
	OutputDirs []string
	Generated  int
	Skipped    int
}

// Success reports whether no error was recorded during the pass.
func (o *Outcome) Success() bool { return !o.failed.Load() }

// RecordFailure marks the pass failed. It can never be undone.
func (o *Outcome) RecordFailure() { o.failed.Store(true) }
