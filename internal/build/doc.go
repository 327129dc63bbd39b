// Package build provides the canonical generation run pipeline for docpipe.
// All execution paths (CLI generate, watch mode, tests) route through Service.
package build
