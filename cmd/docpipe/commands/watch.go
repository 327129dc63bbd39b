package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpipe/internal/build"
	"git.home.luguber.info/inful/docpipe/internal/logfields"
	"git.home.luguber.info/inful/docpipe/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Project []string `short:"p" help:"Regenerate only the named project (repeatable)"`
	DryRun  bool     `name:"dry-run" help:"Print generator command lines without running them"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := newRunner(ctx, cfg, global.Logger)
	defer func() { _ = r.Close() }()

	// Generator failures are reported per run; watching continues.
	res, err := r.run(ctx, build.Request{Config: cfg, Projects: w.Project, DryRun: w.DryRun})
	printResult(res)
	if err != nil {
		global.Logger.Warn("Initial generation failed", logfields.Error(err))
	}

	var watcher *watch.Watcher
	roots, ignore := watch.Paths(cfg)
	watcher, err = watch.New(roots, watch.Options{
		Debounce: cfg.Watch.DebounceDuration(),
		Interval: cfg.Watch.IntervalDuration(),
		Ignore:   ignore,
	}, func(ctx context.Context, _ string) error {
		// Reload so edits to the configuration file take effect.
		current, err := loadConfig(root)
		if err != nil {
			return err
		}
		if err := watcher.SetPaths(watch.Paths(current)); err != nil {
			global.Logger.Warn("Failed to watch new paths", logfields.Error(err))
		}
		res, err := r.run(ctx, build.Request{Config: current, Projects: w.Project, DryRun: w.DryRun})
		printResult(res)
		return err
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
