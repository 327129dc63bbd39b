package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docpipe/internal/classpath"
	"git.home.luguber.info/inful/docpipe/internal/config"
	"git.home.luguber.info/inful/docpipe/internal/docgen"
	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/generator"
	"git.home.luguber.info/inful/docpipe/internal/gitlinks"
	"git.home.luguber.info/inful/docpipe/internal/history"
	"git.home.luguber.info/inful/docpipe/internal/includes"
	"git.home.luguber.info/inful/docpipe/internal/logfields"
	"git.home.luguber.info/inful/docpipe/internal/metrics"
	"git.home.luguber.info/inful/docpipe/internal/notify"
	"git.home.luguber.info/inful/docpipe/internal/retry"
)

// GeneratorFactory creates the documentation generator for a run.
type GeneratorFactory func(cfg *config.Config, dryRun bool) docgen.Generator

// LinkDeriver derives a source link for a directory from its VCS metadata.
type LinkDeriver interface {
	Derive(dir string) (docgen.SourceLink, error)
}

// LinkDeriverFactory creates a LinkDeriver for a project.
type LinkDeriverFactory func(p config.ProjectConfig) LinkDeriver

// HistoryStore records per-project run entries.
type HistoryStore interface {
	Record(ctx context.Context, e history.Entry) error
}

// Notifier publishes run events.
type Notifier interface {
	Notify(ctx context.Context, e notify.Event) error
}

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	generatorFactory   GeneratorFactory
	linkDeriverFactory LinkDeriverFactory
	preflight          docgen.Preflight
	recorder           metrics.Recorder
	history            HistoryStore
	notifier           Notifier
	retry              retry.Policy
	logger             *slog.Logger
	newRunID           func() string
}

// NewService creates a DefaultService running generator.Process and
// deriving source links with go-git.
func NewService() *DefaultService {
	return &DefaultService{
		generatorFactory:   ProcessGenerator,
		linkDeriverFactory: GitLinkDeriver,
		preflight:          includes.Checker{},
		recorder:           metrics.NoopRecorder{},
		logger:             slog.Default(),
		retry:              retry.DefaultPolicy(),
		newRunID:           uuid.NewString,
	}
}

// WithGeneratorFactory allows injecting a custom generator (for testing).
func (s *DefaultService) WithGeneratorFactory(f GeneratorFactory) *DefaultService {
	s.generatorFactory = f
	return s
}

// WithLinkDeriverFactory allows injecting a custom link deriver.
func (s *DefaultService) WithLinkDeriverFactory(f LinkDeriverFactory) *DefaultService {
	s.linkDeriverFactory = f
	return s
}

// WithPreflight replaces the include file preflight; nil disables it.
func (s *DefaultService) WithPreflight(p docgen.Preflight) *DefaultService {
	s.preflight = p
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithHistory sets the history store. Recording failures are logged only.
func (s *DefaultService) WithHistory(h HistoryStore) *DefaultService {
	s.history = h
	return s
}

// WithNotifier sets the run event notifier. Publish failures are logged only.
func (s *DefaultService) WithNotifier(n Notifier) *DefaultService {
	s.notifier = n
	return s
}

// WithRetryPolicy sets the policy applied to retryable notification failures.
// An invalid policy is logged and the current one kept.
func (s *DefaultService) WithRetryPolicy(p retry.Policy) *DefaultService {
	if err := p.Validate(); err != nil {
		s.logger.Warn("Ignoring invalid retry policy", logfields.Error(err))
		return s
	}
	s.retry = p
	return s
}

// WithLogger sets the host logger.
func (s *DefaultService) WithLogger(l *slog.Logger) *DefaultService {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithRunIDFunc overrides run id generation.
func (s *DefaultService) WithRunIDFunc(f func() string) *DefaultService {
	s.newRunID = f
	return s
}

// ProcessGenerator builds a generator.Process from the generator section.
func ProcessGenerator(cfg *config.Config, dryRun bool) docgen.Generator {
	env := make([]string, 0, len(cfg.Generator.Env))
	for _, k := range slices.Sorted(maps.Keys(cfg.Generator.Env)) {
		env = append(env, k+"="+cfg.Generator.Env[k])
	}
	return &generator.Process{
		Command: slices.Clone(cfg.Generator.Command),
		Env:     env,
		Dir:     cfg.BaseDir,
		DryRun:  dryRun || cfg.Generator.DryRun,
	}
}

// GitLinkDeriver derives links from the git repository enclosing each directory.
func GitLinkDeriver(p config.ProjectConfig) LinkDeriver {
	return &gitlinks.Deriver{Forge: gitlinks.NormalizeForgeType(p.Forge), Ref: p.GitRef}
}

// Run executes a generation run.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Config == nil {
		return nil, derrors.ValidationFailed("config", "configuration is required")
	}
	selected, err := selectProjects(req.Config.Projects, req.Projects)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: s.newRunID(), StartTime: time.Now()}
	log := s.logger.With(logfields.RunID(result.RunID))

	if timeout := req.Config.Generator.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resolver := classpath.NewStatic()
	opts := []docgen.Option{
		docgen.WithToolName(req.Config.Generator.Name),
		docgen.WithLogger(log),
		docgen.WithRecorder(s.recorder),
	}
	if s.preflight != nil {
		opts = append(opts, docgen.WithPreflight(s.preflight))
	}
	plugin := docgen.NewPlugin(docgen.NewStore(), s.generatorFactory(req.Config, req.DryRun), resolver, opts...)

	for _, p := range selected {
		resolver.Declare(docgen.ProjectID(p.Name), p.Dependencies...)
		s.attachDocs(plugin, p, log)
	}

	log.Info("Starting documentation run", slog.Int("projects", len(selected)))

	var runErr error
	for _, p := range selected {
		pr, err := s.generateProject(ctx, plugin, p)
		if pr != nil {
			result.Projects = append(result.Projects, *pr)
		}
		if err != nil {
			runErr = err
			break
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.Status = runStatus(result, runErr)

	s.recorder.ObserveRunDuration(result.Duration)
	s.recorder.IncRunOutcome(runOutcomeLabel(result.Status, runErr))

	// A cancelled run context must not prevent reporting.
	reportCtx := context.WithoutCancel(ctx)
	s.recordHistory(reportCtx, result, log)
	s.publish(reportCtx, result, runErr, log)

	log.Info("Documentation run finished",
		slog.String("status", string(result.Status)),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))

	return result, runErr
}

func (s *DefaultService) attachDocs(plugin *docgen.Plugin, p config.ProjectConfig, log *slog.Logger) {
	var deriver LinkDeriver
	for _, doc := range p.Docs {
		links := make([]docgen.SourceLink, 0, len(doc.SourceLinks))
		for _, l := range doc.SourceLinks {
			if l.URL != "" {
				links = append(links, l)
				continue
			}
			if deriver == nil {
				deriver = s.linkDeriverFactory(p)
			}
			derived, err := deriver.Derive(l.Dir)
			if err != nil {
				log.Warn("Dropping source link without URL",
					logfields.Project(p.Name), logfields.Path(l.Dir), logfields.Error(err))
				continue
			}
			if l.URLSuffix != nil {
				derived.URLSuffix = l.URLSuffix
			}
			links = append(links, derived)
		}

		plugin.Directive(docgen.ProjectID(p.Name), func(c *docgen.Configuration) {
			c.SamplesDirs = slices.Clone(doc.SamplesDirs)
			c.IncludeDirs = slices.Clone(doc.IncludeDirs)
			c.OutputDir = doc.OutputDir
			if doc.OutputFormat != "" {
				c.OutputFormat = doc.OutputFormat
			}
			c.ModuleName = doc.ModuleName
			c.Skip = doc.Skip
			for _, l := range links {
				c.AddSourceLink(func(sl *docgen.SourceLink) { *sl = l })
			}
		})
	}
}

func (s *DefaultService) generateProject(ctx context.Context, plugin *docgen.Plugin, p config.ProjectConfig) (*ProjectResult, error) {
	start := time.Now()
	outcome, err := plugin.GenerateDoc(ctx, p.Project())

	var pr *ProjectResult
	if outcome != nil {
		pr = &ProjectResult{
			Name:       p.Name,
			Success:    outcome.Success() && err == nil,
			OutputDirs: outcome.OutputDirs,
			Generated:  outcome.Generated,
			Skipped:    outcome.Skipped,
			Duration:   time.Since(start),
		}
	} else if err != nil {
		pr = &ProjectResult{Name: p.Name, Duration: time.Since(start)}
	}

	if err == nil {
		return pr, nil
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pr, err
	case errors.Is(err, docgen.ErrDependencies):
		return pr, derrors.ResolveFailed(p.Name, err)
	default:
		return pr, derrors.GeneratorFailed(p.Name, err)
	}
}

func (s *DefaultService) recordHistory(ctx context.Context, r *Result, log *slog.Logger) {
	if s.history == nil {
		return
	}
	for _, p := range r.Projects {
		err := s.history.Record(ctx, history.Entry{
			RunID:      r.RunID,
			Project:    p.Name,
			Success:    p.Success,
			OutputDirs: p.OutputDirs,
			Generated:  p.Generated,
			Skipped:    p.Skipped,
			StartedAt:  r.StartTime,
			Duration:   p.Duration,
		})
		if err != nil {
			log.Warn("Failed to record run history", logfields.Project(p.Name),
				logfields.Error(derrors.HistoryError("record", err)))
		}
	}
}

func (s *DefaultService) publish(ctx context.Context, r *Result, runErr error, log *slog.Logger) {
	if s.notifier == nil {
		return
	}
	event := notify.Event{
		Type:       notify.EventRunCompleted,
		RunID:      r.RunID,
		Status:     string(r.Status),
		DurationMS: r.Duration.Milliseconds(),
	}
	if !r.Status.IsSuccess() {
		event.Type = notify.EventRunFailed
	}
	if runErr != nil {
		event.Error = runErr.Error()
	}
	for _, p := range r.Projects {
		event.Projects = append(event.Projects, notify.ProjectSummary{
			Name:       p.Name,
			Success:    p.Success,
			OutputDirs: p.OutputDirs,
			Generated:  p.Generated,
			Skipped:    p.Skipped,
		})
	}
	err := s.retry.Do(ctx, func() error { return s.notifier.Notify(ctx, event) })
	if err != nil {
		log.Warn("Failed to publish run event", logfields.Error(err))
	}
}

func selectProjects(all []config.ProjectConfig, names []string) ([]config.ProjectConfig, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]config.ProjectConfig, len(all))
	for _, p := range all {
		byName[p.Name] = p
	}
	var out []config.ProjectConfig
	for _, n := range names {
		p, ok := byName[n]
		if !ok {
			return nil, derrors.ValidationFailed("project", fmt.Sprintf("unknown project %q", n))
		}
		out = append(out, p)
	}
	return out, nil
}

func runStatus(r *Result, runErr error) Status {
	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		return StatusCancelled
	case runErr != nil:
		return StatusFailed
	case len(r.FailedProjects()) > 0:
		return StatusFailed
	default:
		return StatusSuccess
	}
}

func runOutcomeLabel(s Status, runErr error) metrics.RunOutcomeLabel {
	switch {
	case runErr != nil:
		return metrics.RunAborted
	case s == StatusSuccess:
		return metrics.RunSuccess
	default:
		return metrics.RunFailed
	}
}
