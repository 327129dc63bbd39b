package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/docpipe/internal/logfields"
	"git.home.luguber.info/inful/docpipe/internal/metrics"
)

// Inputs is everything a Generator needs for one configuration.
type Inputs struct {
	Classpath    []string
	SourceDirs   []string
	SamplesDirs  []string
	IncludeDirs  []string
	ModuleName   string
	OutputDir    string
	OutputFormat string
	SourceLinks  []LinkDefinition
}

// Generator renders documentation. Problems with the documentation itself are
// reported through log.Error; a returned error means the generator could not
// be run at all and aborts the pass.
type Generator interface {
	Generate(ctx context.Context, log Logger, in Inputs) error
}

// Preflight inspects inputs before the generator runs and reports through log.
type Preflight interface {
	Check(in Inputs, log Logger)
}

// FileSystem answers existence checks for source directories.
type FileSystem interface {
	Exists(path string) bool
}

// OSFileSystem checks the local filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Invoker runs the generator for every configuration registered for a project.
type Invoker struct {
	store     *Store
	generator Generator
	tool      string
	fs        FileSystem
	logger    *slog.Logger
	recorder  metrics.Recorder
	preflight Preflight
	now       func() time.Time
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithToolName sets the tag attached to generator log lines.
func WithToolName(name string) Option { return func(i *Invoker) { i.tool = name } }

func WithFileSystem(fs FileSystem) Option { return func(i *Invoker) { i.fs = fs } }

func WithLogger(l *slog.Logger) Option { return func(i *Invoker) { i.logger = l } }

func WithRecorder(r metrics.Recorder) Option { return func(i *Invoker) { i.recorder = r } }

func WithPreflight(p Preflight) Option { return func(i *Invoker) { i.preflight = p } }

// NewInvoker creates an invoker reading configurations from store.
func NewInvoker(store *Store, generator Generator, opts ...Option) *Invoker {
	i := &Invoker{
		store:     store,
		generator: generator,
		tool:      "dokka",
		fs:        OSFileSystem{},
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// OutputPath derives the output directory of cfg under buildDir.
func OutputPath(buildDir string, cfg Configuration) string {
	return filepath.Join(buildDir, cfg.EffectiveOutputDir())
}

// Generate processes the configurations of project in registration order.
// Errors logged by the generator mark the outcome failed but do not stop
// later configurations. An invocation error is returned immediately along
// with the partial outcome.
func (i *Invoker) Generate(ctx context.Context, project Project, classpath []string) (*Outcome, error) {
	outcome := &Outcome{}
	log := i.logger.With(logfields.Project(project.Name))

	for idx, cfg := range i.store.ConfigurationsFor(project.ID()) {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		clog := log.With(logfields.ConfigIndex(idx))

		if cfg.Skip {
			clog.Info("skip is true, not generating the documentation")
			outcome.Skipped++
			i.recorder.IncConfigResult(project.Name, metrics.ResultSkipped)
			continue
		}

		in := Inputs{
			Classpath:    classpath,
			SourceDirs:   i.existing(project.SourceDirs),
			SamplesDirs:  cfg.SamplesDirs,
			IncludeDirs:  cfg.IncludeDirs,
			ModuleName:   cfg.ModuleName,
			OutputDir:    OutputPath(project.BuildDir, cfg),
			OutputFormat: cfg.OutputFormat,
			SourceLinks:  ResolveSourceLinks(cfg.SourceLinks),
		}
		if in.OutputFormat == "" {
			in.OutputFormat = DefaultOutputFormat
		}

		failures := &passFailures{parent: outcome}
		genLog := NewGenerationLogger(clog, i.tool, failures)
		if i.preflight != nil {
			i.preflight.Check(in, genLog)
		}

		clog.Debug("Invoking documentation generator",
			logfields.OutputDir(in.OutputDir),
			logfields.Format(in.OutputFormat),
			logfields.Module(in.ModuleName),
			slog.Int("source_dirs", len(in.SourceDirs)),
			slog.Int("classpath", len(in.Classpath)))

		start := i.now()
		err := i.generator.Generate(ctx, genLog, in)
		elapsed := i.now().Sub(start)
		i.recorder.ObserveGenerationDuration(project.Name, elapsed)
		if err != nil {
			outcome.RecordFailure()
			i.recorder.IncConfigResult(project.Name, metrics.ResultFailed)
			return outcome, fmt.Errorf("generate documentation for %s into %s: %w", project.Name, in.OutputDir, err)
		}

		if failures.failed.Load() {
			i.recorder.IncConfigResult(project.Name, metrics.ResultFailed)
		} else {
			i.recorder.IncConfigResult(project.Name, metrics.ResultSuccess)
		}
		outcome.OutputDirs = append(outcome.OutputDirs, in.OutputDir)
		outcome.Generated++
		clog.Info("Documentation generated",
			logfields.OutputDir(in.OutputDir),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	}

	return outcome, nil
}

func (i *Invoker) existing(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if i.fs.Exists(d) {
			out = append(out, d)
		}
	}
	return out
}

// passFailures tracks errors of a single configuration and forwards them to
// the project outcome. Generators may log from several goroutines.
type passFailures struct {
	parent FailureRecorder
	failed atomic.Bool
}

func (p *passFailures) RecordFailure() {
	p.failed.Store(true)
	p.parent.RecordFailure()
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
