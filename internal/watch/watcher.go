// Package watch regenerates documentation when sources change and,
// optionally, on a fixed interval.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docpipe/internal/config"
	"git.home.luguber.info/inful/docpipe/internal/logfields"
)

// Trigger reasons passed to RebuildFunc.
const (
	ReasonChange   = "change"
	ReasonInterval = "interval"
)

// RebuildFunc runs one regeneration. Calls never overlap.
type RebuildFunc func(ctx context.Context, reason string) error

// Options tune a Watcher.
type Options struct {
	// Debounce is the quiet period after the last change before rebuilding.
	Debounce time.Duration
	// Interval schedules periodic rebuilds; zero disables them.
	Interval time.Duration
	// Ignore lists paths whose changes never trigger a rebuild.
	Ignore []string
}

// Watcher monitors directory trees and triggers debounced rebuilds.
type Watcher struct {
	roots   []string
	opts    Options
	rebuild RebuildFunc

	watcher *fsnotify.Watcher
	runCh   chan string

	mu      sync.RWMutex // guards roots and opts.Ignore
	running bool
}

// New creates a watcher over roots. Missing roots are skipped when Run starts.
func New(roots []string, opts Options, rebuild RebuildFunc) (*Watcher, error) {
	if rebuild == nil {
		return nil, errors.New("rebuild function is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	opts.Ignore = cleanPaths(opts.Ignore)

	return &Watcher{
		roots:   dedupe(roots),
		opts:    opts,
		rebuild: rebuild,
		watcher: fw,
		runCh:   make(chan string, 1),
	}, nil
}

// Paths returns the directories to watch for cfg and the paths to ignore:
// the config file directory plus every project input, minus build output.
func Paths(cfg *config.Config) (roots, ignore []string) {
	roots = append(roots, cfg.BaseDir)
	for _, p := range cfg.Projects {
		roots = append(roots, p.SourceDirs...)
		for _, d := range p.Docs {
			roots = append(roots, d.IncludeDirs...)
			roots = append(roots, d.SamplesDirs...)
		}
		ignore = append(ignore, p.BuildDir)
	}
	if cfg.History.Path != "" {
		ignore = append(ignore, cfg.History.Path)
	}
	if cfg.Metrics.Textfile != "" {
		ignore = append(ignore, cfg.Metrics.Textfile)
	}
	return roots, ignore
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	w.mu.Lock()
	w.running = true
	roots := slices.Clone(w.roots)
	w.mu.Unlock()
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}

	if w.opts.Interval > 0 {
		scheduler, err := w.schedule(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Error("Error stopping scheduler", logfields.Error(err))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.runLoop(ctx)
	}()

	slog.Info("Watching for changes",
		slog.Int("roots", len(roots)),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("interval", w.opts.Interval))

	w.watchLoop(ctx)
	<-done
	return nil
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		slog.Debug("Skipping missing watch root", logfields.Path(root))
		return nil
	}
	if !info.IsDir() {
		root = filepath.Dir(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are not watched
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (w.ignored(path) || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

// SetPaths replaces the roots and ignore list, typically after a configuration
// reload. New roots are watched immediately when Run is active; directories
// that are no longer roots stay watched until Run returns.
func (w *Watcher) SetPaths(roots, ignore []string) error {
	w.mu.Lock()
	known := make(map[string]struct{}, len(w.roots))
	for _, r := range w.roots {
		known[r] = struct{}{}
	}
	w.roots = dedupe(roots)
	w.opts.Ignore = cleanPaths(ignore)
	next := slices.Clone(w.roots)
	running := w.running
	w.mu.Unlock()

	if !running {
		return nil
	}
	for _, root := range next {
		if _, ok := known[root]; ok {
			continue
		}
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) ignored(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.opts.Ignore {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// watchLoop monitors file system events and debounces them.
func (w *Watcher) watchLoop(ctx context.Context) {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) || strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.opts.Debounce, func() { w.trigger(ReasonChange) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// trigger queues a rebuild; a pending one absorbs the request.
func (w *Watcher) trigger(reason string) {
	select {
	case w.runCh <- reason:
	default:
	}
}

// runLoop executes queued rebuilds one at a time.
func (w *Watcher) runLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.runCh:
			slog.Info("Regenerating documentation", slog.String("reason", reason))
			if err := w.rebuild(ctx, reason); err != nil {
				slog.Error("Regeneration failed", slog.String("reason", reason), logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(func() {
			if ctx.Err() == nil {
				w.trigger(ReasonInterval)
			}
		}),
		gocron.WithName("periodic-regeneration"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic regeneration job: %w", err)
	}
	s.Start()
	return s, nil
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
