package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns the status carried by a cli.Exit error, or 1.
func exitCode(err error) int {
	var coder cli.ExitCoder
	if stderrors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}
	return 1
}
