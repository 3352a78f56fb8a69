// Package main is the entry point for the waterblend CLI.
package main

import (
	"os"

	"waterblend/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
