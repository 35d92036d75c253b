// Package reporting renders scheduler reports and service status for the
// terminal.
//
// The renderers take the plain data structures produced by the scheduler and
// backend and turn them into aligned, colored output. They never talk to the
// container runtime themselves: everything they print was observed by an
// earlier phase, which keeps rendering trivially testable against a buffer.
//
// Column alignment is computed with go-runewidth on the raw text before any
// styling is applied, so multi-cell glyphs and ANSI escape sequences never
// skew the table.
package reporting
