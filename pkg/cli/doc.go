// Package cli provides shared plumbing for the murmur command line tool:
// settings persistence, the on-disk directory layout, output formatting and
// the terminal UI components used by the live recording view.
package cli
