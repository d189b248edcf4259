package assistant

import (
	"errors"
	"os/exec"
)

// exitCode splits a command error into an exit status and a launch error.
// A process that ran and failed yields (code, nil); one that could not be
// started yields (0, err).
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
