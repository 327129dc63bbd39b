package classpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestStatic_ExpandsGlobsInOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "libs", "b.jar"))
	touch(t, filepath.Join(root, "libs", "a.jar"))
	touch(t, filepath.Join(root, "libs", "notes.txt"))

	s := NewStatic()
	s.Declare("core", "/opt/kotlin/kotlin-stdlib.jar", "libs/*.jar", "libs/a.jar", "missing/*.jar")

	got, err := s.CalculateDependencies(t.Context(), docgen.Project{Name: "core", Root: root})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"/opt/kotlin/kotlin-stdlib.jar",
		filepath.Join(root, "libs", "a.jar"),
		filepath.Join(root, "libs", "b.jar"),
	}, got)
}

func TestStatic_UnknownProject(t *testing.T) {
	got, err := NewStatic().CalculateDependencies(t.Context(), docgen.Project{Name: "none"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatic_MalformedPattern(t *testing.T) {
	s := NewStatic()
	s.Declare("core", "/libs/[.jar")
	_, err := s.CalculateDependencies(t.Context(), docgen.Project{Name: "core"})
	require.Error(t, err)
}
