package stormext

import "context"

// Toolchain defines the calls the Orchestrator makes into the native build system.
//
// CmakeToolchain is the implementation used in practice. The interface exists
// so the orchestration rules (generate once per source directory, build every
// target, collect failures) can be exercised without a compiler.
//
// # Lifecycle
//
//  1. CheckAvailable() - once per run, before any target is touched
//  2. Generate() - once per source directory, only when its work dir is new
//  3. Build() - once per target
//
// # Thread Safety
//
// Implementations should be stateless. The Orchestrator calls them from a
// single goroutine.
type Toolchain interface {
	// Name returns the human-readable name of the toolchain.
	//
	// Used in error messages and logs. Example: "CMake"
	Name() string

	// CheckAvailable verifies the build generator can be invoked.
	//
	// Returns a *ToolchainUnavailableError if it cannot. The Orchestrator
	// fills in the targets that would have been built.
	CheckAvailable(ctx context.Context) error

	// Generate writes the build files for sourceDir into workDir.
	//
	// outputDir is where compiled modules of this source directory land.
	// Returns a *GenerationError if the generator exits non-zero.
	Generate(ctx context.Context, config *BuildConfig, sourceDir, workDir, outputDir string) error

	// Build compiles one target inside an already generated workDir.
	//
	// Returns the captured output lines, and a *CompilationError if the
	// build tool exits non-zero.
	Build(ctx context.Context, config *BuildConfig, target, workDir string) ([]string, error)
}
