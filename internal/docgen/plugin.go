package docgen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrDependencies wraps failures of the project's Resolver.
var ErrDependencies = errors.New("calculate dependencies")

// Resolver calculates the resolved dependency artifacts of a project.
type Resolver interface {
	CalculateDependencies(ctx context.Context, project Project) ([]string, error)
}

// Plugin is the session object a build orchestrator talks to: configurations
// are attached with Directive and generated with GenerateDoc.
type Plugin struct {
	store    *Store
	invoker  *Invoker
	resolver Resolver
}

// NewPlugin wires a store, generator and resolver into a Plugin.
func NewPlugin(store *Store, generator Generator, resolver Resolver, opts ...Option) *Plugin {
	return &Plugin{
		store:    store,
		invoker:  NewInvoker(store, generator, opts...),
		resolver: resolver,
	}
}

// Store returns the session store.
func (p *Plugin) Store() *Store { return p.store }

// Directive attaches a configuration built by init to project.
func (p *Plugin) Directive(project ProjectID, init func(*Configuration)) {
	Attach(p.store, project, init)
}

// GenerateDoc resolves the project classpath and generates every configuration
// attached to it. Resolution errors are returned without generating anything.
func (p *Plugin) GenerateDoc(ctx context.Context, project Project) (*Outcome, error) {
	deps, err := p.resolver.CalculateDependencies(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrDependencies, project.Name, err)
	}
	classpath, err := Classpath(deps, project.BuildDir)
	if err != nil {
		return nil, err
	}
	return p.invoker.Generate(ctx, project, classpath)
}

// Classpath makes every dependency absolute and appends buildDir so compiled
// but unpackaged classes are visible to the generator.
func Classpath(deps []string, buildDir string) ([]string, error) {
	out := make([]string, 0, len(deps)+1)
	for _, d := range deps {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, fmt.Errorf("resolve classpath entry %s: %w", d, err)
		}
		out = append(out, abs)
	}
	return append(out, buildDir), nil
}
