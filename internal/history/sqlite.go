package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is the recorded outcome of one project within a run.
type Entry struct {
	RunID      string        `json:"run_id"`
	Project    string        `json:"project"`
	Success    bool          `json:"success"`
	OutputDirs []string      `json:"output_dirs"`
	Generated  int           `json:"generated"`
	Skipped    int           `json:"skipped"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// SQLiteStore persists entries using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the history database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		project TEXT NOT NULL,
		success INTEGER NOT NULL,
		output_dirs TEXT NOT NULL,
		generated INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ns INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project);
	CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends an entry.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs := e.OutputDirs
	if dirs == nil {
		dirs = []string{}
	}
	dirsJSON, err := json.Marshal(dirs)
	if err != nil {
		return fmt.Errorf("marshal output dirs: %w", err)
	}

	startedAt := e.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, project, success, output_dirs, generated, skipped, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Project, e.Success, string(dirsJSON), e.Generated, e.Skipped,
		startedAt.UnixNano(), int64(e.Duration),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. An empty project
// matches every project; a non-positive limit means no limit.
func (s *SQLiteStore) Recent(ctx context.Context, project string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT run_id, project, success, output_dirs, generated, skipped, started_at, duration_ns FROM runs`
	var args []any
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			dirsJSON  string
			startedNS int64
			durNS     int64
		)
		if err := rows.Scan(&e.RunID, &e.Project, &e.Success, &dirsJSON, &e.Generated, &e.Skipped, &startedNS, &durNS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(dirsJSON), &e.OutputDirs); err != nil {
			return nil, fmt.Errorf("unmarshal output dirs: %w", err)
		}
		e.StartedAt = time.Unix(0, startedNS)
		e.Duration = time.Duration(durNS)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
