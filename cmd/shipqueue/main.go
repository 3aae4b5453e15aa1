// Package main provides the shipqueue CLI for extracting buildable
// ships and equipment from X4 game data.
package main

import (
	"os"

	"github.com/x4tools/shipqueue/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
