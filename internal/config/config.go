package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docpipe.yaml"

// Config represents the application configuration
type Config struct {
	Version   string          `yaml:"version,omitempty"`
	Generator GeneratorConfig `yaml:"generator"`
	Projects  []ProjectConfig `yaml:"projects"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Notify    NotifyConfig    `yaml:"notify,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`

	// BaseDir is the directory relative paths are resolved against.
	BaseDir string `yaml:"-"`
}

// GeneratorConfig describes the external documentation generator command.
type GeneratorConfig struct {
	Name    string            `yaml:"name,omitempty"`
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env,omitempty"`
	DryRun  bool              `yaml:"dry_run,omitempty"`
	Timeout string            `yaml:"timeout,omitempty"` // Bounds a whole run; empty means unbounded
}

// ProjectConfig represents one buildable unit and its documentation blocks.
type ProjectConfig struct {
	Name         string                 `yaml:"name"`
	Root         string                 `yaml:"root,omitempty"`
	BuildDir     string                 `yaml:"build_dir,omitempty"`
	SourceDirs   []string               `yaml:"source_dirs,omitempty"`
	Dependencies []string               `yaml:"dependencies,omitempty"` // Paths or globs, relative to root
	Forge        string                 `yaml:"forge,omitempty"`        // Overrides forge detection for derived source links
	GitRef       string                 `yaml:"git_ref,omitempty"`      // Ref used in derived source links; defaults to HEAD commit
	Docs         []docgen.Configuration `yaml:"docs,omitempty"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// NotifyConfig controls run event publishing.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
	Interval string `yaml:"interval,omitempty"` // Periodic regeneration; empty disables
}

// Project converts the project entry into the generation model.
func (p ProjectConfig) Project() docgen.Project {
	return docgen.Project{
		Name:       p.Name,
		Root:       p.Root,
		BuildDir:   p.BuildDir,
		SourceDirs: append([]string(nil), p.SourceDirs...),
	}
}

// TimeoutDuration returns the parsed generator timeout, zero when unset.
func (g GeneratorConfig) TimeoutDuration() time.Duration { return parseDuration(g.Timeout) }

// DebounceDuration returns the parsed watch debounce.
func (w WatchConfig) DebounceDuration() time.Duration { return parseDuration(w.Debounce) }

// IntervalDuration returns the parsed regeneration interval, zero when unset.
func (w WatchConfig) IntervalDuration() time.Duration { return parseDuration(w.Interval) }

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// Load loads, normalizes and validates configuration from the specified file
func Load(configPath string) (*Config, error) {
	// A missing .env file is not an error; a malformed one is.
	if err := loadEnvFile(filepath.Dir(configPath)); err != nil && !errors.Is(err, ErrNoEnvFile) {
		return nil, derrors.ConfigInvalid(configPath, err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, derrors.ConfigInvalid(configPath, err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg, filepath.Dir(absPath))
	return cfg, nil
}

// Parse decodes YAML configuration after expanding environment variables.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
