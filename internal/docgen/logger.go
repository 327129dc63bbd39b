package docgen

import (
	"log/slog"

	"git.home.luguber.info/inful/docpipe/internal/logfields"
)

// Logger is the logging capability handed to a Generator. Error calls mark
// the surrounding generation pass as failed.
type Logger interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// GenerationLogger forwards generator messages to the host logger.
type GenerationLogger struct {
	host     *slog.Logger
	failures FailureRecorder
}

// NewGenerationLogger binds host logging for tool with the failures accumulator.
func NewGenerationLogger(host *slog.Logger, tool string, failures FailureRecorder) *GenerationLogger {
	if host == nil {
		host = slog.Default()
	}
	if failures == nil {
		failures = FailureFunc(nil)
	}
	return &GenerationLogger{host: host.With(logfields.Tool(tool)), failures: failures}
}

// Info goes to the verbose channel.
func (l *GenerationLogger) Info(message string) { l.host.Debug(message) }

func (l *GenerationLogger) Warn(message string) { l.host.Warn(message) }

func (l *GenerationLogger) Error(message string) {
	l.host.Error(message)
	l.failures.RecordFailure()
}
