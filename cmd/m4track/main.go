package main

import (
	"os"

	"github.com/bukabox/M4tracking-sub000/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
