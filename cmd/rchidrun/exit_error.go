package main

import (
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/sys"
)

// exitAborted is the exit status when the user declines an install.
const exitAborted = 2

// exitError carries a process exit status out of a RunE handler.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode maps an error to a process exit status. A guest's own non-zero
// exit status is passed through.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var guestExit *sys.ExitError
	if errors.As(err, &guestExit) && guestExit.ExitCode() != 0 && guestExit.ExitCode() < 256 {
		return int(guestExit.ExitCode())
	}
	return 1
}
