package sysaccess

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ProcessError reports a failed external process invocation with the
// command's stderr attached.
type ProcessError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("sysaccess: run %s: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// RunProcess executes an external command and returns its stdout.
func (*OS) RunProcess(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ProcessError{
			Command: name + " " + strings.Join(args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
