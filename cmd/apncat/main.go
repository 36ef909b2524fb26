// Package main is the entry point for the apncat CLI.
package main

import (
	"os"

	"apncat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
