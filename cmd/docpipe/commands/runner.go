package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpipe/internal/build"
	"git.home.luguber.info/inful/docpipe/internal/config"
	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/history"
	"git.home.luguber.info/inful/docpipe/internal/logfields"
	"git.home.luguber.info/inful/docpipe/internal/metrics"
	"git.home.luguber.info/inful/docpipe/internal/notify"
)

// runner owns the run service and the resources it reports to.
type runner struct {
	service   *build.DefaultService
	recorder  *metrics.PrometheusRecorder
	textfile  string
	history   *history.SQLiteStore
	publisher *notify.Publisher
}

// newRunner wires metrics, history and notifications from cfg. Reporting
// backends that cannot be opened are logged and left out.
func newRunner(ctx context.Context, cfg *config.Config, logger *slog.Logger) *runner {
	r := &runner{service: build.NewService().WithLogger(logger)}

	if cfg.Metrics.Textfile != "" {
		r.recorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		r.textfile = cfg.Metrics.Textfile
		r.service.WithRecorder(r.recorder)
	}

	if cfg.History.Path != "" {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			logger.Warn("Run history disabled", logfields.Error(derrors.HistoryError("open", err)))
		} else {
			r.history = store
			r.service.WithHistory(store)
		}
	}

	if cfg.Notify.NATSURL != "" {
		pub, err := notify.NewPublisher(ctx, cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			logger.Warn("Run notifications disabled", logfields.Error(derrors.NotifyError(cfg.Notify.Subject, err)))
		} else {
			r.publisher = pub
			r.service.WithNotifier(pub)
		}
	}
	return r
}

// run executes one generation and converts a failed outcome into an error.
func (r *runner) run(ctx context.Context, req build.Request) (*build.Result, error) {
	res, err := r.service.Run(ctx, req)
	if r.recorder != nil {
		if werr := r.recorder.WriteTextfile(r.textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(r.textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return res, err
	}
	if !res.Status.IsSuccess() {
		return res, derrors.GenerationReportedErrors(res.FailedProjects())
	}
	return res, nil
}

func (r *runner) Close() error {
	var errs []error
	if r.history != nil {
		errs = append(errs, r.history.Close())
	}
	if r.publisher != nil {
		errs = append(errs, r.publisher.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close runner: %w", err)
	}
	return nil
}

func printResult(res *build.Result) {
	if res == nil {
		return
	}
	fmt.Printf("Run %s: %s (%s)\n", res.RunID, res.Status, res.Duration.Round(time.Millisecond))
	for _, p := range res.Projects {
		state := "ok"
		if !p.Success {
			state = "errors"
		}
		fmt.Printf("  %-20s %-6s generated=%d skipped=%d\n", p.Name, state, p.Generated, p.Skipped)
		for _, dir := range p.OutputDirs {
			fmt.Printf("    %s\n", dir)
		}
	}
}
