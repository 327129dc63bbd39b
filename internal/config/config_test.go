package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
projects:
  - name: core
    root: core
    docs:
      - module_name: core
        include_dirs: [docs/module.md]
        source_links:
          - dir: src/main/kotlin
            url: https://example.com/blob/main
history:
  path: .docpipe/history.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, DefaultGeneratorName, cfg.Generator.Name)
	assert.Equal(t, []string{DefaultGeneratorName}, cfg.Generator.Command)
	assert.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	assert.Equal(t, filepath.Join(dir, ".docpipe", "history.db"), cfg.History.Path)

	p := cfg.Projects[0]
	root := filepath.Join(dir, "core")
	assert.Equal(t, root, p.Root)
	assert.Equal(t, filepath.Join(root, "build"), p.BuildDir)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "main", "kotlin"),
		filepath.Join(root, "src", "main", "java"),
	}, p.SourceDirs)

	d := p.Docs[0]
	assert.Equal(t, "html", d.OutputFormat)
	assert.Equal(t, "", d.OutputDir, "output dir default is applied at generation time")
	assert.Equal(t, []string{filepath.Join(root, "docs", "module.md")}, d.IncludeDirs)
	assert.Equal(t, filepath.Join(root, "src", "main", "kotlin"), d.SourceLinks[0].Dir)
	assert.Nil(t, d.SourceLinks[0].URLSuffix)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	de, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryConfig, de.Category)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
projects:
  - name: core
    colour: blue
`)
	_, err := Load(path)
	require.Error(t, err)

	de, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryConfig, de.Category)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCPIPE_TEST_JAR", "/opt/dokka/cli.jar")
	path := writeConfig(t, t.TempDir(), `
generator:
  command: [java, -jar, "${DOCPIPE_TEST_JAR}"]
projects:
  - name: core
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"java", "-jar", "/opt/dokka/cli.jar"}, cfg.Generator.Command)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCPIPE_TEST_PROJECT=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DOCPIPE_TEST_PROJECT") })

	path := writeConfig(t, dir, `
projects:
  - name: ${DOCPIPE_TEST_PROJECT}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Projects[0].Name)
}

func TestLoad_MalformedDotEnvIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCPIPE-BROKEN=1\n"), 0o600))
	path := writeConfig(t, dir, "projects: [{name: core}]\n")

	_, err := Load(path)
	require.Error(t, err)
	de, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryConfig, de.Category)
}

func TestLoadEnvFile_MissingIsSentinel(t *testing.T) {
	assert.ErrorIs(t, loadEnvFile(t.TempDir()), ErrNoEnvFile)
}

func TestLoad_NotifySubjectDefault(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
projects:
  - name: core
notify:
  nats_url: nats://localhost:4222
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSubject, cfg.Notify.Subject)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"no projects", `projects: []`, "projects"},
		{"missing name", `projects: [{root: a}]`, "projects[0].name"},
		{"duplicate name", `projects: [{name: a}, {name: a}]`, "projects[1].name"},
		{"bad forge", `projects: [{name: a, forge: svn}]`, "projects[0].forge"},
		{"absolute output dir", `projects: [{name: a, docs: [{output_dir: /tmp/out}]}]`, "projects[0].docs[0].output_dir"},
		{"escaping output dir", `projects: [{name: a, docs: [{output_dir: ../out}]}]`, "projects[0].docs[0].output_dir"},
		{"empty link dir", `projects: [{name: a, docs: [{source_links: [{url: x}]}]}]`, "projects[0].docs[0].source_links[0].dir"},
		{"blank command", "generator: {command: [dokka, ' ']}\nprojects: [{name: a}]", "generator.command"},
		{"bad timeout", "generator: {timeout: soon}\nprojects: [{name: a}]", "generator.timeout"},
		{"negative interval", "watch: {interval: -1s}\nprojects: [{name: a}]", "watch.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = ValidateConfig(cfg)
			require.Error(t, err)
			de, ok := derrors.As(err)
			require.True(t, ok)
			assert.Equal(t, derrors.CategoryValidation, de.Category)
			assert.Equal(t, tt.field, de.Context["field"])
		})
	}
}

func TestValidateConfig_AcceptsNestedOutputDir(t *testing.T) {
	cfg, err := Parse([]byte(`projects: [{name: a, forge: gitea, docs: [{output_dir: docs/api}]}]`))
	require.NoError(t, err)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "core", cfg.Projects[0].Name)
	require.Len(t, cfg.Projects[0].Docs, 2)
	assert.True(t, cfg.Projects[0].Docs[1].Skip)

	require.Error(t, Init(path, false), "existing file must not be overwritten")
	require.NoError(t, Init(path, true))
}
