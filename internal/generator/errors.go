package generator

import "errors"

// Sentinel errors for generator invocation failures. They are wrapped with
// context at the call site and abort the generation pass.
var (
	ErrGeneratorNotFound = errors.New("documentation generator binary not found")
	ErrGeneratorStart    = errors.New("documentation generator could not be started")
	ErrOutputDir         = errors.New("documentation output directory could not be created")
)
