// Package main provides the pgparse command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/pgparse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
