//go:build mage

package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/stormpy/stormext"
)

const (
	manifest  = "stormpy.toml"
	buildTemp = "build/temp"
	buildLib  = "build/lib"
)

// Build compiles every extension with the Release configuration.
func Build(ctx context.Context) error {
	return build(ctx, false)
}

// Debug compiles every extension with the Debug configuration.
func Debug(ctx context.Context) error {
	return build(ctx, true)
}

// Check verifies that CMake can be invoked.
func Check(ctx context.Context) error {
	err := stormext.NewCmakeToolchain(nil).CheckAvailable(ctx)

	var unavailable *stormext.ToolchainUnavailableError
	if errors.As(err, &unavailable) {
		// Name the targets when the manifest loads.
		if extensions, _, loadErr := stormext.LoadManifest(manifest); loadErr == nil {
			for _, ext := range extensions {
				unavailable.Targets = append(unavailable.Targets, ext.Name)
			}
		}
	}
	return err
}

// Clean removes the CMake work directories so the next build configures again.
func Clean() error {
	return sh.Rm(buildTemp)
}

func build(ctx context.Context, debug bool) error {
	extensions, version, err := stormext.LoadManifest(manifest)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "mage"})
	runner := &stormext.ExecRunner{}
	if mg.Verbose() {
		logger.SetLevel(log.DebugLevel)
		runner.Stream = os.Stderr
	}

	orch := stormext.NewOrchestrator(stormext.NewCmakeToolchain(runner), logger)
	_, err = orch.Run(ctx, extensions, stormext.Options{
		Debug:         debug,
		DependencyDir: os.Getenv("STORM_DIR"),
		Version:       version,
		BuildTemp:     buildTemp,
		LibDir:        buildLib,
	})
	return err
}
