package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies the kind of run event.
type EventType string

const (
	EventRunCompleted EventType = "run.completed"
	EventRunFailed    EventType = "run.failed"
)

// ProjectSummary is the per-project part of a run event.
type ProjectSummary struct {
	Name       string   `json:"name"`
	Success    bool     `json:"success"`
	OutputDirs []string `json:"output_dirs,omitempty"`
	Generated  int      `json:"generated"`
	Skipped    int      `json:"skipped"`
}

// Event is published once per run.
type Event struct {
	Type       EventType        `json:"type"`
	RunID      string           `json:"run_id"`
	Status     string           `json:"status"`
	Projects   []ProjectSummary `json:"projects"`
	DurationMS int64            `json:"duration_ms"`
	Timestamp  time.Time        `json:"timestamp"`
	Error      string           `json:"error,omitempty"`
}

// Encode serializes the event, stamping the timestamp when unset.
func (e Event) Encode() ([]byte, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}
