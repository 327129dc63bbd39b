package includes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

type warnings []string

func (w *warnings) Info(string)    {}
func (w *warnings) Warn(m string)  { *w = append(*w, m) }
func (w *warnings) Error(string)   {}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHeadings(t *testing.T) {
	src := []byte("# Module core\n\nCore utilities.\n\n## Details\n\n# Package com.acme.core\n\nText\n\n# Overview\n")
	assert.Equal(t, []Heading{
		{Kind: HeadingModule, Name: "core"},
		{Kind: HeadingPackage, Name: "com.acme.core"},
	}, Headings(src))

	assert.Empty(t, Headings([]byte("Just text\n\n## Module nested\n")))
}

func TestChecker(t *testing.T) {
	dir := t.TempDir()
	good := write(t, filepath.Join(dir, "docs", "module.md"), "# Module core\n\nDocs.\n")
	write(t, filepath.Join(dir, "docs", "packages", "util.md"), "# Package com.acme.util\n")
	write(t, filepath.Join(dir, "docs", "notes.txt"), "ignored")
	bare := write(t, filepath.Join(dir, "bare.md"), "No heading here.\n")
	other := write(t, filepath.Join(dir, "other.md"), "# Module cli\n")

	var w warnings
	in := docgen.Inputs{
		ModuleName:  "core",
		IncludeDirs: []string{filepath.Join(dir, "docs"), good, bare, other, filepath.Join(dir, "missing.md")},
	}
	Checker{}.Check(in, &w)

	require.Len(t, w, 3)
	assert.Contains(t, w[0], "bare.md has no Module or Package heading")
	assert.Contains(t, w[1], `documents module "cli" but the configured module is "core"`)
	assert.Contains(t, w[2], "missing.md")
}
