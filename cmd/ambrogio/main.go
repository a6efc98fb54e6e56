// Package main is the entry point for the ambrogio CLI tool.
package main

import (
	"os"

	"github.com/ambrogio-dev/ambrogio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
