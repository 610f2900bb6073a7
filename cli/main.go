package main

import (
	"os"

	"github.com/sqlmorph/sqlmorph/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
