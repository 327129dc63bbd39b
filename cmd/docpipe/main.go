package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpipe/cmd/docpipe/commands"
	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/version"
)

// newParser builds the command line parser; extra options are applied last.
func newParser(cli *commands.CLI, extra ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("docpipe"),
		kong.Description("Generate API documentation for configured projects"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	}
	return kong.New(cli, append(opts, extra...)...)
}

func main() {
	var cli commands.CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
