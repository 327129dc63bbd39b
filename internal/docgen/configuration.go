package docgen

import "slices"

const (
	// DefaultOutputDir is used when a configuration leaves OutputDir blank.
	DefaultOutputDir = "doc"
	// DefaultOutputFormat is the generator format when none is configured.
	DefaultOutputFormat = "html"
)

// SourceLink maps a local source directory to a browsable URL.
// A nil URLSuffix means no suffix is appended.
type SourceLink struct {
	Dir       string  `yaml:"dir" json:"dir"`
	URL       string  `yaml:"url" json:"url"`
	URLSuffix *string `yaml:"url_suffix,omitempty" json:"url_suffix,omitempty"`
}

// Configuration is one documentation-generation parameter set attached to a project.
type Configuration struct {
	SamplesDirs  []string     `yaml:"samples_dirs,omitempty"`
	IncludeDirs  []string     `yaml:"include_dirs,omitempty"`
	OutputDir    string       `yaml:"output_dir,omitempty"`
	OutputFormat string       `yaml:"output_format,omitempty"`
	SourceLinks  []SourceLink `yaml:"source_links,omitempty"`
	ModuleName   string       `yaml:"module_name,omitempty"`
	Skip         bool         `yaml:"skip,omitempty"`
}

// NewConfiguration returns a configuration with default values.
func NewConfiguration() *Configuration {
	return &Configuration{OutputFormat: DefaultOutputFormat}
}

// AddSourceLink appends a source link built by init.
func (c *Configuration) AddSourceLink(init func(*SourceLink)) {
	var link SourceLink
	if init != nil {
		init(&link)
	}
	c.SourceLinks = append(c.SourceLinks, link)
}

// EffectiveOutputDir returns OutputDir, or DefaultOutputDir when blank.
func (c *Configuration) EffectiveOutputDir() string {
	if isBlank(c.OutputDir) {
		return DefaultOutputDir
	}
	return c.OutputDir
}

// Clone returns a deep copy of the configuration.
func (c *Configuration) Clone() Configuration {
	out := *c
	out.SamplesDirs = slices.Clone(c.SamplesDirs)
	out.IncludeDirs = slices.Clone(c.IncludeDirs)
	if c.SourceLinks != nil {
		out.SourceLinks = make([]SourceLink, len(c.SourceLinks))
		for i, l := range c.SourceLinks {
			out.SourceLinks[i] = l.clone()
		}
	}
	return out
}

func (l SourceLink) clone() SourceLink {
	if l.URLSuffix != nil {
		s := *l.URLSuffix
		l.URLSuffix = &s
	}
	return l
}

// Suffix is a convenience for building optional URL suffixes.
func Suffix(s string) *string { return &s }
