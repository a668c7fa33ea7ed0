// Package docgen exposes commands that generate reference material for the
// command line interface: Markdown pages for every command and completion
// scripts for the common shells.
package docgen
