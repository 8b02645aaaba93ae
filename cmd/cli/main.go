// Package main is the entry point for the baticost CLI.
package main

import (
	"os"

	"baticost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
