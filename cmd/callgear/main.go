// Package main is the entry point for the callgear server CLI.
//
// Usage:
//
//	callgear [flags] <command>
//
// Commands:
//
//	serve      - Run the call bridge server
//	config     - Show the resolved configuration
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/callgear/cmd/callgear/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
