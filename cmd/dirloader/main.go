package main

import (
	"os"

	"github.com/harrison/dirloader/internal/cmd"
)

// Version is the current version of the dirloader application
const Version = "0.1.0"

func main() {
	if cmd.Version == "dev" {
		cmd.Version = Version
	}

	// cobra prints the error itself
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
