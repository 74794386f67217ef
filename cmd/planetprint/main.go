// Command planetprint scores carbon-footprint questionnaires from the
// command line and over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/planetprint/internal/cli"
	"github.com/rshade/planetprint/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(version.Info() + "\n")
	return root.Execute()
}

// exitCode maps the error returned by run to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
