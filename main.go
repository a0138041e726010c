package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/visualeyes/storylint/cmd"
	"github.com/visualeyes/storylint/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Commands report their own failures through the output formatter and
	// return an *cli.ExitError; anything else is a usage or startup error.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
