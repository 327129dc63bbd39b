package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEncode(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := Event{
		Type:   EventRunCompleted,
		RunID:  "abc",
		Status: "success",
		Projects: []ProjectSummary{
			{Name: "core", Success: true, OutputDirs: []string{"/b/doc"}, Generated: 1},
		},
		DurationMS: 42,
		Timestamp:  ts,
	}.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run.completed", decoded["type"])
	assert.Equal(t, "abc", decoded["run_id"])
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded["timestamp"])
	assert.NotContains(t, decoded, "error")

	projects, ok := decoded["projects"].([]any)
	require.True(t, ok)
	require.Len(t, projects, 1)
	assert.Equal(t, "core", projects[0].(map[string]any)["name"])
}

func TestEventEncode_StampsTimestamp(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	data, err := Event{Type: EventRunFailed}.Encode()
	require.NoError(t, err)

	var e Event
	require.NoError(t, json.Unmarshal(data, &e))
	assert.True(t, e.Timestamp.After(before))
}

func TestNewPublisher_RequiresURL(t *testing.T) {
	_, err := NewPublisher(t.Context(), " ", "docpipe.runs")
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestPublisher_CloseNil(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Close())
}
