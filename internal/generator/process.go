// Package generator runs an external documentation generator process and
// translates its output into generation log channels.
package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

const (
	// maxLineSize bounds a single line of generator output.
	maxLineSize = 1024 * 1024
	// waitDelay bounds Wait once the context is done and the process was killed.
	waitDelay = 5 * time.Second
)

// Process invokes a Dokka-compatible command line generator.
type Process struct {
	// Command is the program and leading arguments, e.g. ["java", "-jar", "dokka-fatjar.jar"].
	Command []string
	// Env entries in KEY=VALUE form added to the inherited environment.
	Env []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// DryRun logs the command line instead of running it.
	DryRun bool
}

// Generate runs the command for in. A non-zero exit is reported through
// log.Error; only failures to start the process are returned.
func (p *Process) Generate(ctx context.Context, log docgen.Logger, in docgen.Inputs) error {
	if len(p.Command) == 0 {
		return fmt.Errorf("%w: empty command", ErrGeneratorNotFound)
	}
	args := append(append([]string(nil), p.Command[1:]...), Args(in)...)

	if p.DryRun {
		log.Info("dry run: " + p.Command[0] + " " + strings.Join(args, " "))
		return nil
	}

	bin, err := exec.LookPath(p.Command[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneratorNotFound, err)
	}
	if err := os.MkdirAll(in.OutputDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = p.Dir
	cmd.Env = append(os.Environ(), p.Env...)
	cmd.WaitDelay = waitDelay
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneratorStart, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneratorStart, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneratorStart, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); forwardLines(stdout, log) }()
	go func() { defer wg.Done(); forwardLines(stderr, log) }()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Error(fmt.Sprintf("generator exited with status %d", exitErr.ExitCode()))
			return nil
		}
		return fmt.Errorf("%w: %w", ErrGeneratorStart, err)
	}
	return nil
}

// forwardLines logs every output line. When a line cannot be read the rest of
// the stream is discarded so the process never blocks on a full pipe.
func forwardLines(r io.Reader, log docgen.Logger) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch Classify(line) {
		case LevelError:
			log.Error(line)
		case LevelWarn:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
	if err := sc.Err(); err != nil {
		log.Error(fmt.Sprintf("reading generator output: %v", err))
		_, _ = io.Copy(io.Discard, r)
	}
}
