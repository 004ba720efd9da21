package main

import (
	"os"

	"github.com/extremtechniker/gokey/cmd"
)

func main() {
	root := cmd.RootCommand()
	root.AddCommand(cmd.ApiCommand())
	root.AddCommand(cmd.TokenCommand())
	root.AddCommand(cmd.KeygenCommand())
	root.AddCommand(cmd.KeySourceCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
