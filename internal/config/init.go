package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Version: "1",
		Generator: GeneratorConfig{
			Name:    DefaultGeneratorName,
			Command: []string{"java", "-jar", "dokka-cli.jar"},
			Timeout: "10m",
		},
		Projects: []ProjectConfig{
			{
				Name:         "core",
				Root:         "core",
				BuildDir:     DefaultBuildDir,
				SourceDirs:   DefaultSourceDirs,
				Dependencies: []string{"libs/*.jar"},
				Docs: []docgen.Configuration{
					{
						ModuleName:   "core",
						OutputFormat: docgen.DefaultOutputFormat,
						IncludeDirs:  []string{"docs/module.md"},
						SourceLinks: []docgen.SourceLink{
							{
								Dir:       "src/main/kotlin",
								URL:       "https://github.com/example/project/blob/main/core/src/main/kotlin",
								URLSuffix: docgen.Suffix("#L"),
							},
						},
					},
					{
						OutputDir:    "javadoc",
						OutputFormat: "javadoc",
						Skip:         true,
					},
				},
			},
		},
		History: HistoryConfig{Path: ".docpipe/history.db"},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
