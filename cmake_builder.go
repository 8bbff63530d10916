package stormext

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Build tool constants
const (
	cmakeProgram = "cmake"
	cmakeEnvVar  = "CMAKE" // overrides the cmake binary
)

// CmakeToolchain drives CMake configure and build runs.
type CmakeToolchain struct {
	// Program is the cmake binary (default: $CMAKE, then "cmake").
	Program string

	// Runner executes the processes (default: &ExecRunner{}).
	Runner Runner
}

// NewCmakeToolchain returns a CmakeToolchain using runner, or an ExecRunner
// when runner is nil.
func NewCmakeToolchain(runner Runner) *CmakeToolchain {
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &CmakeToolchain{Runner: runner}
}

// Name returns the toolchain name
func (t *CmakeToolchain) Name() string {
	return "CMake"
}

// CheckAvailable runs "cmake --version".
func (t *CmakeToolchain) CheckAvailable(ctx context.Context) error {
	output, err := t.runner().Run(ctx, Command{
		Name: t.program(),
		Args: []string{"--version"},
	})
	if err == nil {
		return nil
	}

	unavailable := &ToolchainUnavailableError{Tool: t.program(), Err: err}
	if _, ran := exitStatus(err); ran {
		unavailable.Output = outputLines(output)
	}
	return unavailable
}

// Generate configures sourceDir into workDir.
func (t *CmakeToolchain) Generate(ctx context.Context, config *BuildConfig, sourceDir, workDir, outputDir string) error {
	cmd := Command{
		Name: t.program(),
		Args: t.GenerateArgs(config, sourceDir, outputDir),
		Dir:  workDir,
		Env:  config.Env,
	}

	output, err := t.runner().Run(ctx, cmd)
	if err == nil {
		return nil
	}

	code, _ := exitStatus(err)
	return &GenerationError{
		SourceDir: sourceDir,
		ExitCode:  code,
		Output:    outputLines(output),
		Err:       err,
	}
}

// Build compiles a single target in an already configured workDir.
func (t *CmakeToolchain) Build(ctx context.Context, config *BuildConfig, target, workDir string) ([]string, error) {
	cmd := Command{
		Name: t.program(),
		Args: t.BuildArgs(config, target),
		Dir:  workDir,
		Env:  config.Env,
	}

	output, err := t.runner().Run(ctx, cmd)
	lines := outputLines(output)
	if err == nil {
		return lines, nil
	}

	code, _ := exitStatus(err)
	return lines, &CompilationError{
		Target:   target,
		ExitCode: code,
		Output:   lines,
		Err:      err,
	}
}

// GenerateArgs returns the cmake arguments of the configure step.
func (t *CmakeToolchain) GenerateArgs(config *BuildConfig, sourceDir, outputDir string) []string {
	args := []string{
		sourceDir,
		fmt.Sprintf("-DCMAKE_LIBRARY_OUTPUT_DIRECTORY=%s", outputDir),
	}

	if config.Interpreter != "" {
		args = append(args, fmt.Sprintf("-DPYTHON_EXECUTABLE=%s", config.Interpreter))
	}

	args = append(args, fmt.Sprintf("-DCMAKE_BUILD_TYPE=%s", config.BuildType))

	// Pre-located Storm installation
	if config.DependencyDir != "" {
		args = append(args, fmt.Sprintf("-Dstorm_DIR=%s", config.DependencyDir))
	}

	return args
}

// BuildArgs returns the cmake arguments of the build step for target.
func (t *CmakeToolchain) BuildArgs(config *BuildConfig, target string) []string {
	args := []string{"--build", ".", "--target", target, "--config", string(config.BuildType)}

	if config.Parallel > 0 {
		args = append(args, "--parallel", strconv.Itoa(config.Parallel))
	}

	return args
}

func (t *CmakeToolchain) program() string {
	if t.Program != "" {
		return t.Program
	}
	if program := os.Getenv(cmakeEnvVar); program != "" {
		return program
	}
	return cmakeProgram
}

func (t *CmakeToolchain) runner() Runner {
	if t.Runner != nil {
		return t.Runner
	}
	return &ExecRunner{}
}
