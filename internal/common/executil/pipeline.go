package executil

import (
	"bytes"
	"os/exec"
	"strings"
)

// RunPipeline chains commands stdout-to-stdin and returns the final stage's
// trimmed output. Every stage is started before any output is collected;
// starting stages lazily would let a full pipe buffer block an upstream
// writer against a not-yet-running reader.
func RunPipeline(cmds ...*exec.Cmd) (string, error) {
	if len(cmds) == 0 {
		return "", nil
	}

	for i := 0; i < len(cmds)-1; i++ {
		out, err := cmds[i].StdoutPipe()
		if err != nil {
			return "", &CmdError{Argv: cmds[i].Args, Err: err}
		}
		cmds[i+1].Stdin = out
	}

	var buf bytes.Buffer
	last := cmds[len(cmds)-1]
	last.Stdout = &buf

	for _, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			return "", &CmdError{Argv: cmd.Args, Err: err}
		}
	}

	var firstErr error
	for _, cmd := range cmds {
		if err := cmd.Wait(); err != nil && firstErr == nil {
			firstErr = &CmdError{Argv: cmd.Args, Err: err}
		}
	}

	return strings.TrimSpace(buf.String()), firstErr
}
