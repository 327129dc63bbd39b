package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/gitlinks"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	cv := &configurationValidator{config: cfg}
	return cv.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateGenerator(); err != nil {
		return err
	}
	if err := cv.validateProjects(); err != nil {
		return err
	}
	return cv.validateDurations()
}

func (cv *configurationValidator) validateGenerator() error {
	if slices.ContainsFunc(cv.config.Generator.Command, func(s string) bool { return strings.TrimSpace(s) == "" }) {
		return derrors.ValidationFailed("generator.command", "command entries must not be empty")
	}
	return nil
}

func (cv *configurationValidator) validateProjects() error {
	if len(cv.config.Projects) == 0 {
		return derrors.ValidationFailed("projects", "at least one project must be configured")
	}

	seen := make(map[string]struct{}, len(cv.config.Projects))
	for i, p := range cv.config.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return derrors.ValidationFailed(field+".name", "project name is required")
		}
		if _, dup := seen[p.Name]; dup {
			return derrors.ValidationFailed(field+".name", fmt.Sprintf("duplicate project name %q", p.Name))
		}
		seen[p.Name] = struct{}{}

		if p.Forge != "" && gitlinks.NormalizeForgeType(p.Forge) == "" {
			return derrors.ValidationFailed(field+".forge", fmt.Sprintf("unsupported forge %q", p.Forge))
		}

		for j, d := range p.Docs {
			if err := validateOutputDir(d.OutputDir); err != nil {
				return derrors.ValidationFailed(fmt.Sprintf("%s.docs[%d].output_dir", field, j), err.Error())
			}
			for k, l := range d.SourceLinks {
				if strings.TrimSpace(l.Dir) == "" {
					return derrors.ValidationFailed(fmt.Sprintf("%s.docs[%d].source_links[%d].dir", field, j, k), "source link directory is required")
				}
			}
		}
	}
	return nil
}

// validateOutputDir requires a path inside the build directory.
func validateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("output_dir %q must be relative to the build directory", dir)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output_dir %q must not leave the build directory", dir)
	}
	return nil
}

func (cv *configurationValidator) validateDurations() error {
	durations := []struct{ field, value string }{
		{"generator.timeout", cv.config.Generator.Timeout},
		{"watch.debounce", cv.config.Watch.Debounce},
		{"watch.interval", cv.config.Watch.Interval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return derrors.ValidationFailed(d.field, fmt.Sprintf("invalid duration %q", d.value))
		}
		if v < 0 {
			return derrors.ValidationFailed(d.field, "duration must not be negative")
		}
	}
	return nil
}
