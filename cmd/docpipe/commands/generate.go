package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpipe/internal/build"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Project []string `short:"p" help:"Generate only the named project (repeatable)"`
	DryRun  bool     `name:"dry-run" help:"Print generator command lines without running them"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := newRunner(ctx, cfg, global.Logger)
	defer func() { _ = r.Close() }()

	res, err := r.run(ctx, build.Request{Config: cfg, Projects: g.Project, DryRun: g.DryRun})
	printResult(res)
	return err
}
