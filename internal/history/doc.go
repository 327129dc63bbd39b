// Package history records generation runs in a SQLite database so past
// outcomes can be listed per project.
package history
