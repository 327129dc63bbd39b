package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

const (
	DefaultGeneratorName = "dokka"
	DefaultBuildDir      = "build"
	DefaultDebounce      = "2s"
	DefaultSubject       = "docpipe.runs"
)

// DefaultSourceDirs are used when a project declares none.
var DefaultSourceDirs = []string{"src/main/kotlin", "src/main/java"}

// Normalize applies defaults and turns every path into an absolute one.
// Project roots resolve against baseDir, all other project paths against
// the project root. Dependency patterns stay relative for the resolver.
func Normalize(cfg *Config, baseDir string) {
	cfg.BaseDir = baseDir

	if cfg.Generator.Name == "" {
		cfg.Generator.Name = DefaultGeneratorName
	}
	if len(cfg.Generator.Command) == 0 {
		cfg.Generator.Command = []string{cfg.Generator.Name}
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Notify.NATSURL != "" && cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultSubject
	}
	cfg.History.Path = absIfSet(baseDir, cfg.History.Path)
	cfg.Metrics.Textfile = absIfSet(baseDir, cfg.Metrics.Textfile)

	for i := range cfg.Projects {
		normalizeProject(&cfg.Projects[i], baseDir)
	}
}

func normalizeProject(p *ProjectConfig, baseDir string) {
	if p.Root == "" {
		p.Root = "."
	}
	p.Root = abs(baseDir, p.Root)

	if p.BuildDir == "" {
		p.BuildDir = DefaultBuildDir
	}
	p.BuildDir = abs(p.Root, p.BuildDir)

	if len(p.SourceDirs) == 0 {
		p.SourceDirs = append([]string(nil), DefaultSourceDirs...)
	}
	p.SourceDirs = absAll(p.Root, p.SourceDirs)

	for i := range p.Docs {
		d := &p.Docs[i]
		if d.OutputFormat == "" {
			d.OutputFormat = docgen.DefaultOutputFormat
		}
		d.SamplesDirs = absAll(p.Root, d.SamplesDirs)
		d.IncludeDirs = absAll(p.Root, d.IncludeDirs)
		for j := range d.SourceLinks {
			d.SourceLinks[j].Dir = abs(p.Root, d.SourceLinks[j].Dir)
		}
	}
}

func abs(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func absIfSet(base, p string) string {
	if p == "" {
		return ""
	}
	return abs(base, p)
}

func absAll(base string, paths []string) []string {
	if paths == nil {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = abs(base, p)
	}
	return out
}
