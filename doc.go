// Package stormext builds the native extension modules of stormpy.
//
// Every extension module (stormpy.core, stormpy.info, ...) is a CMake target
// declared in a source directory's CMakeLists.txt. This package turns one
// packaging invocation into the sequence of CMake calls that produces them:
// a version check, one configure run per source directory, and one build per
// target.
//
// # Basic Usage
//
//	exts, version, err := stormext.LoadManifest("stormpy.toml")
//	if err != nil {
//	    return err
//	}
//
//	orch := stormext.NewOrchestrator(stormext.NewCmakeToolchain(nil), logger)
//	report, err := orch.Run(ctx, exts, stormext.Options{
//	    Debug:         false,
//	    DependencyDir: "/opt/storm/build",
//	    Version:       version,
//	    BuildTemp:     "build/temp",
//	    LibDir:        "build/lib",
//	})
//
// # Architecture
//
//	Orchestrator
//	├── ResolveConfig   (once per run)
//	└── Toolchain       (CmakeToolchain)
//	    ├── CheckAvailable  cmake --version
//	    ├── Generate        cmake <source> -D...   (only when the work dir is new)
//	    └── Build           cmake --build . --target <name>
//
// Work directories are cached by existence: once a source directory has a
// work directory, it is never configured again. Remove the work directory
// (or run "mage clean") to force a fresh configure.
//
// # Failures
//
// A missing toolchain or a failed configure stops the run. A failed target
// build does not: every target is attempted and the run fails afterwards with
// a *BuildFailure naming each target that did not build.
//
// # Requirements
//
// Requires Go 1.25 or later and CMake on PATH.
package stormext
