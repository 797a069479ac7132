// Package internalexec runs external commands while capturing their output.
package internalexec

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Result captures stdout/stderr and the exit status of a command run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes cmd, collecting its output. When echo is non-nil both streams
// are copied to it as they are produced. A command that started and exited
// non-zero reports its exit code alongside the error.
func Run(cmd *exec.Cmd, echo io.Writer) (Result, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	stdout := io.Writer(&stdoutBuf)
	stderr := io.Writer(&stderrBuf)
	if echo != nil {
		stdout = io.MultiWriter(echo, &stdoutBuf)
		stderr = io.MultiWriter(echo, &stderrBuf)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else if err != nil {
		res.ExitCode = -1
	}
	return res, err
}

// PrimaryOutput returns stderr if present, otherwise stdout.
func PrimaryOutput(res Result) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}
