package stormext

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// BuildType is the CMake build configuration.
type BuildType string

const (
	BuildDebug   BuildType = "Debug"
	BuildRelease BuildType = "Release"
)

// BuildTypeFor maps the debug flag to a build type.
func BuildTypeFor(debug bool) BuildType {
	if debug {
		return BuildDebug
	}
	return BuildRelease
}

// DefaultParallel is the job count used when Options.Parallel is not set.
const DefaultParallel = 2

// Dotted module path, e.g. "stormpy.core".
const extensionNamePattern = `^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`

// Extension describes one native build target.
//
// Name is the fully-qualified module name (e.g. "stormpy.core") and doubles
// as the CMake target name. SourceDir is the absolute directory containing
// the CMakeLists.txt that declares the target.
type Extension struct {
	Name      string
	SourceDir string
}

// NewExtension returns an Extension with an absolute source directory.
//
// The directory is not checked for existence; CMake reports a bad source
// directory when the build files are generated.
func NewExtension(name, sourceDir string) (Extension, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Extension{}, errors.New("extension name is empty")
	}
	if !MatchesPattern(name, extensionNamePattern) {
		return Extension{}, fmt.Errorf("invalid extension name %q", name)
	}
	if sourceDir == "" {
		sourceDir = "."
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return Extension{}, fmt.Errorf("resolve source dir for %s: %w", name, err)
	}
	return Extension{Name: name, SourceDir: abs}, nil
}

// Options are the per-invocation inputs of a build run.
//
//   - Debug selects the Debug build type (Release otherwise)
//   - DependencyDir, if set, is forwarded to CMake as storm_DIR
//   - Version is embedded into the compiled modules through CXXFLAGS
//   - BuildTemp is the root of the per-source work directories
//   - LibDir is the root the compiled modules are placed under
type Options struct {
	Debug         bool
	DependencyDir string
	Version       string

	BuildTemp   string
	LibDir      string
	Interpreter string // Python executable handed to CMake (default: python3 or python on PATH)
	Parallel    int    // Jobs for the build tool (0 = DefaultParallel)

	// Environ is the environment the run starts from. Nil means os.Environ().
	Environ []string
}

// BuildConfig is the resolved configuration shared by every target of a run.
type BuildConfig struct {
	BuildType     BuildType
	Parallel      int
	DependencyDir string
	Interpreter   string

	BuildTemp string
	LibDir    string

	// Env is the full environment handed to every toolchain process.
	Env map[string]string
}

// OutputDir returns the directory the compiled module for ext must land in.
func (c *BuildConfig) OutputDir(ext Extension) string {
	return ExtensionOutputDir(c.LibDir, ext.Name)
}

// WorkDir returns the work directory for a source directory.
func (c *BuildConfig) WorkDir(sourceDir string) string {
	return workDirFor(c.BuildTemp, sourceDir)
}

// TargetResult is the outcome of building one extension.
type TargetResult struct {
	Name       string
	SourceDir  string
	WorkDir    string
	OutputDir  string
	Attempted  bool     // False when the run stopped before this target
	Success    bool     // True if the target built
	Output     []string // Lines captured from the build tool
	Extensions []string // Compiled modules found in OutputDir
	Error      error
}

// Report is the per-target outcome of a run, in declaration order.
type Report struct {
	BuildType BuildType
	Targets   []*TargetResult
}

// Failed returns the names of targets that did not build.
func (r *Report) Failed() []string {
	var names []string
	for _, t := range r.Targets {
		if !t.Success {
			names = append(names, t.Name)
		}
	}
	return names
}

// Succeeded returns the names of targets that built.
func (r *Report) Succeeded() []string {
	var names []string
	for _, t := range r.Targets {
		if t.Success {
			names = append(names, t.Name)
		}
	}
	return names
}

// Target returns the result for name, or nil.
func (r *Report) Target(name string) *TargetResult {
	for _, t := range r.Targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}
