// Package executil runs the external tools the image editor delegates to.
package executil

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CmdError reports a failed external command together with the full argv
// that was invoked, so the terminal error identifies the delegate call.
type CmdError struct {
	Argv   []string
	Stderr string
	Err    error
}

func (e *CmdError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", strings.Join(e.Argv, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CmdError) Unwrap() error { return e.Err }

// Run executes a single external command and waits for it, capturing stderr
// for the error message.
func Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CmdError{
			Argv:   append([]string{name}, args...),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
