package docgen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/docpipe/internal/metrics"
)

// fakeGenerator records every invocation and replays scripted log lines.
type fakeGenerator struct {
	mu     sync.Mutex
	calls  []Inputs
	errors map[string][]string // output dir -> error lines to log
	warns  map[string][]string
	fail   map[string]error // output dir -> invocation error
}

func (f *fakeGenerator) Generate(_ context.Context, log Logger, in Inputs) error {
	f.mu.Lock()
	f.calls = append(f.calls, in)
	f.mu.Unlock()
	log.Info("generating " + in.OutputDir)
	for _, w := range f.warns[in.OutputDir] {
		log.Warn(w)
	}
	for _, e := range f.errors[in.OutputDir] {
		log.Error(e)
	}
	return f.fail[in.OutputDir]
}

type mapFS map[string]bool

func (m mapFS) Exists(path string) bool { return m[path] }

type staticResolver struct {
	deps []string
	err  error
}

func (s staticResolver) CalculateDependencies(context.Context, Project) ([]string, error) {
	return s.deps, s.err
}

var errBoom = errors.New("boom")

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

type countingRecorder struct {
	metrics.NoopRecorder
	results   map[metrics.ResultLabel]int
	durations int
}

func (c *countingRecorder) IncConfigResult(_ string, r metrics.ResultLabel) { c.results[r]++ }

func (c *countingRecorder) ObserveGenerationDuration(string, time.Duration) { c.durations++ }
