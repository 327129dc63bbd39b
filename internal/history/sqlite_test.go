package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RecordAndRecent(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, Entry{
		RunID: "run-1", Project: "core", Success: true,
		OutputDirs: []string{"/p/build/doc"}, Generated: 1,
		StartedAt: base, Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, store.Record(ctx, Entry{
		RunID: "run-2", Project: "core", Success: false,
		Generated: 2, Skipped: 1, StartedAt: base.Add(time.Minute),
	}))
	require.NoError(t, store.Record(ctx, Entry{
		RunID: "run-2", Project: "api", Success: true, StartedAt: base.Add(2 * time.Minute),
	}))

	entries, err := store.Recent(ctx, "core", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "run-2", entries[0].RunID, "newest first")
	assert.False(t, entries[0].Success)
	assert.Equal(t, 2, entries[0].Generated)
	assert.Equal(t, 1, entries[0].Skipped)
	assert.Empty(t, entries[0].OutputDirs)

	assert.Equal(t, "run-1", entries[1].RunID)
	assert.True(t, entries[1].Success)
	assert.Equal(t, []string{"/p/build/doc"}, entries[1].OutputDirs)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)
	assert.True(t, base.Equal(entries[1].StartedAt))
}

func TestSQLiteStore_RecentAllProjectsWithLimit(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	base := time.Now()

	for i, p := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, Entry{RunID: "r", Project: p, StartedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := store.Recent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Project)
	assert.Equal(t, "b", entries[1].Project)
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(t.Context(), Entry{RunID: "r1", Project: "core", Success: true}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.Recent(t.Context(), "core", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "r1", entries[0].RunID)
}

func TestSQLiteStore_RecentEmpty(t *testing.T) {
	entries, err := newStore(t).Recent(t.Context(), "missing", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
