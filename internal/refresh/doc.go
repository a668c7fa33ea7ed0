// Package refresh rewrites a documentation file below a marker line, replacing
// the generated section with fenced blocks that capture the standard output of
// the documented tool's commands.
package refresh
