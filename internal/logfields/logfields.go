package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyProject     = "project"
	KeyConfigIndex = "config_index"
	KeyModule      = "module"
	KeyOutputDir   = "output_dir"
	KeyFormat      = "format"
	KeyTool        = "tool"
	KeyPath        = "path"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Project(name string) slog.Attr    { return slog.String(KeyProject, name) }
func ConfigIndex(i int) slog.Attr      { return slog.Int(KeyConfigIndex, i) }
func Module(name string) slog.Attr     { return slog.String(KeyModule, name) }
func OutputDir(dir string) slog.Attr   { return slog.String(KeyOutputDir, dir) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Tool(name string) slog.Attr       { return slog.String(KeyTool, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
