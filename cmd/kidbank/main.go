package main

import (
	"os"

	"github.com/kidbank-dev/kidbank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
