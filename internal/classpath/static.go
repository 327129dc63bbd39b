// Package classpath resolves the dependency artifacts declared for a project.
package classpath

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

// Static resolves dependencies from declared paths and glob patterns.
type Static struct {
	patterns map[docgen.ProjectID][]string
}

// NewStatic creates an empty resolver.
func NewStatic() *Static {
	return &Static{patterns: make(map[docgen.ProjectID][]string)}
}

// Declare sets the dependency patterns of a project. Relative patterns
// are resolved against the project root at resolution time.
func (s *Static) Declare(project docgen.ProjectID, patterns ...string) {
	s.patterns[project] = append([]string(nil), patterns...)
}

// CalculateDependencies expands the declared patterns in order. Globs expand
// in lexical order and drop silently when nothing matches; literal paths are
// kept even if missing. Duplicates keep their first position.
func (s *Static) CalculateDependencies(_ context.Context, project docgen.Project) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, pattern := range s.patterns[project.ID()] {
		if !filepath.IsAbs(pattern) && project.Root != "" {
			pattern = filepath.Join(project.Root, pattern)
		}
		if !hasMeta(pattern) {
			add(filepath.Clean(pattern))
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand dependency pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func hasMeta(p string) bool { return strings.ContainsAny(p, `*?[\`) }
