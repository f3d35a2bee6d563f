// Package main is the entry point for the murmur CLI.
//
// Usage:
//
//	murmur [flags] <command> [args]
//
// Commands:
//
//	record   - Capture and transcribe a session from the microphone
//	list     - List stored recordings
//	show     - Show one recording's transcript
//	rename   - Rename a recording
//	delete   - Delete recordings
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/murmurapp/murmur/cmd/murmur/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
