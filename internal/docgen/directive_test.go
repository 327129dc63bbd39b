package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach_AppliesDefaultsAndInit(t *testing.T) {
	s := NewStore()
	Attach(s, "core", func(c *Configuration) {
		c.ModuleName = "core"
		c.AddSourceLink(func(l *SourceLink) {
			l.Dir = "src/main/kotlin"
			l.URL = "https://github.com/acme/core/blob/main/src/main/kotlin"
			l.URLSuffix = Suffix("#L")
		})
		c.AddSourceLink(func(l *SourceLink) {
			l.Dir = "src/main/java"
			l.URL = "https://github.com/acme/core/blob/main/src/main/java"
		})
	})
	Attach(s, "core", nil)

	cfgs := s.ConfigurationsFor("core")
	require.Len(t, cfgs, 2)

	first := cfgs[0]
	assert.Equal(t, "html", first.OutputFormat)
	assert.Equal(t, "doc", first.EffectiveOutputDir())
	assert.False(t, first.Skip)
	require.Len(t, first.SourceLinks, 2)
	assert.Equal(t, "#L", *first.SourceLinks[0].URLSuffix)
	assert.Nil(t, first.SourceLinks[1].URLSuffix)

	assert.Equal(t, *NewConfiguration(), cfgs[1])
}

func TestEffectiveOutputDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "doc"},
		{"   ", "doc"},
		{"custom", "custom"},
		{"api/html", "api/html"},
	}
	for _, tt := range tests {
		c := Configuration{OutputDir: tt.in}
		assert.Equal(t, tt.want, c.EffectiveOutputDir(), "output dir %q", tt.in)
	}
}
