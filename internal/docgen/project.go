package docgen

// ProjectID identifies a project within a build session.
type ProjectID string

// Project is a buildable unit with source directories, dependencies and a
// build output directory. Paths are expected to be absolute.
type Project struct {
	Name       string
	Root       string
	BuildDir   string
	SourceDirs []string
}

// ID returns the store key for the project.
func (p Project) ID() ProjectID { return ProjectID(p.Name) }
