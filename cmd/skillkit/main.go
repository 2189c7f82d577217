// skillkit - validation and packaging tools for plugin components

package main

import (
	"os"

	"github.com/skillkit-dev/skillkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
