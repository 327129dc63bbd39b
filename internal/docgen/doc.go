// Package docgen binds documentation configurations to projects and drives an
// external documentation generator over them.
//
// A build session constructs one Store, registers configurations through
// Attach (or Plugin.Directive) while the build description is evaluated, and
// then calls Plugin.GenerateDoc once per project. Each pass yields a single
// Outcome whose success flag only ever moves from true to false.
package docgen
