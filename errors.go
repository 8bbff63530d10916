package stormext

import (
	"errors"
	"fmt"
	"strings"
)

// Process exit codes for each failure class. The error types expose them
// through ExitStatus() so mage and the CLI exit with them.
const (
	ExitToolchainUnavailable = 3
	ExitGenerationFailed     = 4
	ExitCompilationFailed    = 5
)

var (
	// ErrToolchainUnavailable is matched by every *ToolchainUnavailableError.
	ErrToolchainUnavailable = errors.New("toolchain unavailable")

	// ErrDuplicateExtension is returned when two extensions share a name.
	ErrDuplicateExtension = errors.New("duplicate extension name")

	// ErrNoExtensions is returned when a run has nothing to build.
	ErrNoExtensions = errors.New("no extensions to build")
)

// ToolchainUnavailableError reports that the build generator could not be
// invoked. Targets lists every extension the run would have built.
type ToolchainUnavailableError struct {
	Tool    string
	Targets []string
	Output  []string
	Err     error
}

func (e *ToolchainUnavailableError) Error() string {
	msg := fmt.Sprintf("%s must be installed to build the extensions", e.Tool)
	if len(e.Targets) > 0 {
		msg = fmt.Sprintf("%s must be installed to build the following extensions: %s",
			e.Tool, strings.Join(e.Targets, ", "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	if len(e.Output) > 0 {
		msg += "\n\n" + strings.Join(e.Output, "\n")
	}
	return msg
}

func (e *ToolchainUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrToolchainUnavailable}
	}
	return []error{ErrToolchainUnavailable, e.Err}
}

func (e *ToolchainUnavailableError) ExitStatus() int { return ExitToolchainUnavailable }

// OutputDirConflictError reports two extensions that share a source
// directory but would be placed in different output directories. The source
// directory is configured once, so CMake can only honour one of them.
type OutputDirConflictError struct {
	SourceDir         string
	Target            string
	OutputDir         string
	Conflict          string
	ConflictOutputDir string
}

func (e *OutputDirConflictError) Error() string {
	return fmt.Sprintf("extensions %s and %s share source dir %s but need different output dirs (%s, %s)",
		e.Target, e.Conflict, e.SourceDir, e.OutputDir, e.ConflictOutputDir)
}

// GenerationError reports a non-zero exit of the build generator for one
// source directory. No target of that directory is built after it.
type GenerationError struct {
	SourceDir string
	ExitCode  int
	Output    []string
	Err       error
}

func (e *GenerationError) Error() string {
	step := fmt.Sprintf("CMake configure of %s (exit code %d)", e.SourceDir, e.ExitCode)
	return BuildError(step, e.Output, e.Err).Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) ExitStatus() int { return ExitGenerationFailed }

// CompilationError reports a non-zero exit of the build tool for one target.
type CompilationError struct {
	Target   string
	ExitCode int
	Output   []string
	Err      error
}

// Silent reports whether the build tool exited without printing anything.
// That usually means it was killed rather than that it failed cleanly.
func (e *CompilationError) Silent() bool {
	return len(e.Output) == 0
}

func (e *CompilationError) Error() string {
	step := fmt.Sprintf("CMake build of %s (exit code %d)", e.Target, e.ExitCode)
	if e.Silent() {
		return BuildError(step+" produced no output; the build tool may have been killed", nil, e.Err).Error()
	}
	return BuildError(step, e.Output, e.Err).Error()
}

func (e *CompilationError) Unwrap() error { return e.Err }

func (e *CompilationError) ExitStatus() int { return ExitCompilationFailed }

// BuildFailure is returned by a run in which at least one target did not
// build. Failed and Errors are in declaration order.
type BuildFailure struct {
	Failed []string
	Errors []error
}

func (e *BuildFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d extension(s) failed to build: %s", len(e.Failed), strings.Join(e.Failed, ", "))
	for _, err := range e.Errors {
		b.WriteString("\n\n")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *BuildFailure) Unwrap() []error { return e.Errors }

func (e *BuildFailure) ExitStatus() int { return ExitCompilationFailed }
