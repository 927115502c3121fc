// Command ls-almanac is a terminal almanac: civil and sidereal time,
// coordinate conversion, and Sun, Moon and star positions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/config"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidArgs = 2
	exitConvergence = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps invalid input to 2 and a failed Kepler iteration to 3.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, civil.ErrInvalidDate),
		errors.Is(err, civil.ErrInvalidTime),
		errors.Is(err, civil.ErrInvalidAngle),
		errors.Is(err, astro.ErrUnknownStar),
		errors.Is(err, config.ErrUnknownSite),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, errInvalidInput):
		return exitInvalidArgs
	case errors.Is(err, astro.ErrNoConvergence):
		return exitConvergence
	default:
		return exitFailure
	}
}
