// Command holocron shows Star Wars characters with their films, starships and vehicles.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/holocron/internal/cli"
	"github.com/rshade/holocron/pkg/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.Execute()
}
