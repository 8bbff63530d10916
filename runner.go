package stormext

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

// Command is one out-of-process toolchain call.
type Command struct {
	Name string
	Args []string
	Dir  string            // Working directory (empty = current)
	Env  map[string]string // Full environment (nil = inherit)
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes toolchain commands.
//
// Run returns the combined stdout/stderr of the process. A process that ran
// and exited non-zero yields an error carrying an ExitStatus() int method
// (an *exec.ExitError, or a mage error from mg.Fatal in tests). Any other
// error means the process could not be started.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stream, if set, receives the process output as it is produced in
	// addition to it being captured.
	Stream io.Writer
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if cmd.Env != nil {
		c.Env = environList(cmd.Env)
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r != nil && r.Stream != nil {
		out = io.MultiWriter(&buf, r.Stream)
	}
	c.Stdout = out
	c.Stderr = out

	err := c.Run()
	return buf.Bytes(), err
}

// exitStatus reports the exit code of a finished command and whether the
// process ran at all.
func exitStatus(err error) (code int, ran bool) {
	if err == nil {
		return 0, true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return sh.ExitStatus(exitErr), true
	}

	var status interface{ ExitStatus() int }
	if errors.As(err, &status) {
		return status.ExitStatus(), true
	}

	return -1, false
}

// outputLines splits captured output into lines, dropping a trailing empty
// line. Returns nil for empty output.
func outputLines(output []byte) []string {
	text := strings.TrimRight(string(output), "\r\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
