package main

import (
	"os"

	"github.com/thenoetrevino/lista/cmd"
	"github.com/thenoetrevino/lista/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCodeOf(err))
	}
}
