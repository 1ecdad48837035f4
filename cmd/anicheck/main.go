// Command anicheck runs the filename parser conformance harness.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/anicheck/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
