package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugin_GenerateDocAppendsBuildDir(t *testing.T) {
	gen := &fakeGenerator{}
	host, _ := captureLogger()
	p := NewPlugin(NewStore(), gen, staticResolver{deps: []string{"/libs/kotlin-stdlib.jar", "/libs/guice.jar"}},
		WithFileSystem(mapFS{}), WithLogger(host))
	p.Directive("core", func(c *Configuration) { c.ModuleName = "core" })

	outcome, err := p.GenerateDoc(t.Context(), Project{Name: "core", BuildDir: "/work/core/build"})

	require.NoError(t, err)
	assert.True(t, outcome.Success())
	require.Len(t, gen.calls, 1)
	assert.Equal(t, []string{"/libs/kotlin-stdlib.jar", "/libs/guice.jar", "/work/core/build"}, gen.calls[0].Classpath)
	assert.Len(t, p.Store().ConfigurationsFor("core"), 1)
}

func TestPlugin_ResolverErrorIsReturned(t *testing.T) {
	gen := &fakeGenerator{}
	p := NewPlugin(NewStore(), gen, staticResolver{err: errBoom})
	p.Directive("core", nil)

	outcome, err := p.GenerateDoc(t.Context(), Project{Name: "core", BuildDir: "/b"})

	require.ErrorIs(t, err, errBoom)
	require.ErrorIs(t, err, ErrDependencies)
	assert.Nil(t, outcome)
	assert.Empty(t, gen.calls)
}

func TestClasspath_MakesEntriesAbsolute(t *testing.T) {
	cp, err := Classpath([]string{"libs/a.jar"}, "/b")
	require.NoError(t, err)
	require.Len(t, cp, 2)
	assert.True(t, len(cp[0]) > 0 && cp[0][0] == '/')
	assert.Equal(t, "/b", cp[1])
}
