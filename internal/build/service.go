package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docpipe/internal/config"
)

// Service is the canonical interface for executing documentation runs.
type Service interface {
	// Run attaches every configured documentation block to a fresh session
	// store and generates the selected projects in configuration order.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a run.
type Request struct {
	// Config is the loaded, normalized configuration.
	Config *config.Config

	// Projects restricts the run to the named projects; empty means all.
	Projects []string

	// DryRun logs generator command lines instead of executing them.
	DryRun bool
}

// Result contains the outcome of a run.
type Result struct {
	RunID    string
	Status   Status
	Projects []ProjectResult

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// ProjectResult is the generation outcome of a single project.
type ProjectResult struct {
	Name       string
	Success    bool
	OutputDirs []string
	Generated  int
	Skipped    int
	Duration   time.Duration
}

// FailedProjects returns the names of projects whose generation reported errors.
func (r *Result) FailedProjects() []string {
	var out []string
	for _, p := range r.Projects {
		if !p.Success {
			out = append(out, p.Name)
		}
	}
	return out
}

// Status represents the outcome of a run.
type Status string

const (
	// StatusSuccess indicates no generator reported an error.
	StatusSuccess Status = "success"

	// StatusFailed indicates at least one generator reported an error, or a
	// generator could not be invoked.
	StatusFailed Status = "failed"

	// StatusCancelled indicates the run context ended before completion.
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the run completed without errors.
func (s Status) IsSuccess() bool { return s == StatusSuccess }
