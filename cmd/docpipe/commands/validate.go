package commands

import "fmt"

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	docs := 0
	for _, p := range cfg.Projects {
		docs += len(p.Docs)
	}
	fmt.Printf("Configuration valid: %d project(s), %d documentation block(s)\n", len(cfg.Projects), docs)
	return nil
}
