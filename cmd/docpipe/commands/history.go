package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Project string `short:"p" help:"Only show runs of this project"`
	Limit   int    `short:"n" help:"Maximum number of entries" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return derrors.ValidationFailed("history.path", "run history is not configured")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return derrors.HistoryError("open", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), h.Project, h.Limit)
	if err != nil {
		return derrors.HistoryError("query", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tRUN\tPROJECT\tSTATUS\tGENERATED\tSKIPPED\tDURATION\tOUTPUT")
	for _, e := range entries {
		status := "success"
		if !e.Success {
			status = "failed"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			e.StartedAt.Format(time.RFC3339), shortID(e.RunID), e.Project, status,
			e.Generated, e.Skipped, e.Duration.Round(time.Millisecond), strings.Join(e.OutputDirs, ","))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
