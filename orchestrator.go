package stormext

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Orchestrator builds a set of extensions with a Toolchain.
//
// # Usage
//
//	orch := stormext.NewOrchestrator(stormext.NewCmakeToolchain(nil), logger)
//	report, err := orch.Run(ctx, extensions, opts)
//
// # Run Order
//
// A run processes its extensions in declaration order:
//  1. Resolve the configuration once
//  2. Check the toolchain is available
//  3. Generate build files for every source directory whose work directory
//     does not exist yet
//  4. Build every target, even after an earlier target failed
//
// # Thread Safety
//
// An Orchestrator holds no per-run state. Runs against disjoint BuildTemp
// and LibDir directories may proceed concurrently.
type Orchestrator struct {
	toolchain Toolchain
	logger    *log.Logger
}

// NewOrchestrator returns an Orchestrator. A nil logger discards log output.
func NewOrchestrator(toolchain Toolchain, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{toolchain: toolchain, logger: logger}
}

// sourceGroup is the set of extensions sharing one source directory.
type sourceGroup struct {
	sourceDir string
	workDir   string
	targets   []*TargetResult
}

// Run builds every extension.
//
// # Return Values
//
// The Report is nil when the extensions are rejected before any toolchain
// call. Otherwise it has one entry per extension, in declaration order, even
// when an error is returned.
//
// # Error Handling
//
//   - Extensions of one source directory with different output
//     directories: *OutputDirConflictError, before any toolchain call
//   - Toolchain unavailable: *ToolchainUnavailableError naming every
//     extension; nothing is generated or built
//   - Generation failed: *GenerationError; the run stops before any build
//   - Any target failed to build: *BuildFailure, after all targets have
//     been attempted
func (o *Orchestrator) Run(ctx context.Context, extensions []Extension, opts Options) (*Report, error) {
	if err := validateExtensions(extensions); err != nil {
		return nil, err
	}

	config := ResolveConfig(opts)
	report := &Report{BuildType: config.BuildType}
	groups, err := groupBySource(config, extensions, report)
	if err != nil {
		return nil, err
	}

	if err := o.toolchain.CheckAvailable(ctx); err != nil {
		return report, o.unavailable(err, extensions)
	}

	for _, group := range groups {
		if err := o.prepare(ctx, config, group); err != nil {
			for _, target := range group.targets {
				target.Error = err
			}
			return report, err
		}
	}

	var failure BuildFailure
	for _, target := range report.Targets {
		if err := o.build(ctx, config, target); err != nil {
			failure.Failed = append(failure.Failed, target.Name)
			failure.Errors = append(failure.Errors, err)
		}
	}

	if len(failure.Failed) > 0 {
		o.logger.Error("build failed", "failed", failure.Failed, "succeeded", report.Succeeded())
		return report, &failure
	}

	o.logger.Info("build finished", "targets", len(report.Targets), "type", config.BuildType)
	return report, nil
}

// prepare ensures the group's work directory exists and generates build
// files the first time it is created. An existing work directory is reused
// as is, whatever its contents.
func (o *Orchestrator) prepare(ctx context.Context, config *BuildConfig, group *sourceGroup) error {
	created, err := ensureDir(group.workDir)
	if err != nil {
		return fmt.Errorf("create work dir for %s: %w", group.sourceDir, err)
	}
	if !created {
		o.logger.Debug("reusing work dir", "source", group.sourceDir, "work_dir", group.workDir)
		return nil
	}

	// One configure serves every target of the source directory.
	outputDir := group.targets[0].OutputDir
	o.logger.Info("generating build files", "source", group.sourceDir, "work_dir", group.workDir, "type", config.BuildType)
	if err := o.toolchain.Generate(ctx, config, group.sourceDir, group.workDir, outputDir); err != nil {
		o.logger.Error("generation failed", "source", group.sourceDir, "err", err)
		return err
	}
	return nil
}

// build compiles one target and records the outcome.
func (o *Orchestrator) build(ctx context.Context, config *BuildConfig, target *TargetResult) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		target.Error = ctxErr
		return ctxErr
	}

	target.Attempted = true
	o.logger.Info("building", "target", target.Name, "work_dir", target.WorkDir)

	output, err := o.toolchain.Build(ctx, config, target.Name, target.WorkDir)
	target.Output = output
	if err != nil {
		target.Error = err
		var compileErr *CompilationError
		if errors.As(err, &compileErr) && compileErr.Silent() {
			o.logger.Error("build produced no output", "target", target.Name, "exit_code", compileErr.ExitCode)
		} else {
			o.logger.Error("build failed", "target", target.Name, "err", err)
		}
		return err
	}

	extensions, err := findBuiltExtensions(target.OutputDir, target.Name)
	if err != nil {
		o.logger.Warn("could not list built modules", "target", target.Name, "err", err)
	}
	target.Extensions = extensions
	target.Success = true
	o.logger.Info("built", "target", target.Name, "modules", len(extensions))
	return nil
}

// unavailable completes a CheckAvailable failure with the targets of the run.
func (o *Orchestrator) unavailable(err error, extensions []Extension) error {
	names := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		names = append(names, ext.Name)
	}

	var unavailable *ToolchainUnavailableError
	if errors.As(err, &unavailable) {
		unavailable.Targets = names
	} else {
		unavailable = &ToolchainUnavailableError{Tool: o.toolchain.Name(), Targets: names, Err: err}
	}
	o.logger.Error("toolchain unavailable", "tool", unavailable.Tool, "targets", names)
	return unavailable
}

// groupBySource creates one TargetResult per extension in report and groups
// them by source directory, both in declaration order.
//
// A source directory is configured once with a single library output
// directory, so every extension of a group must derive the same OutputDir.
func groupBySource(config *BuildConfig, extensions []Extension, report *Report) ([]*sourceGroup, error) {
	var groups []*sourceGroup
	bySource := make(map[string]*sourceGroup)

	for _, ext := range extensions {
		target := &TargetResult{
			Name:      ext.Name,
			SourceDir: ext.SourceDir,
			WorkDir:   config.WorkDir(ext.SourceDir),
			OutputDir: config.OutputDir(ext),
		}
		report.Targets = append(report.Targets, target)

		group, ok := bySource[ext.SourceDir]
		if !ok {
			group = &sourceGroup{sourceDir: ext.SourceDir, workDir: target.WorkDir}
			bySource[ext.SourceDir] = group
			groups = append(groups, group)
		} else if first := group.targets[0]; first.OutputDir != target.OutputDir {
			return nil, &OutputDirConflictError{
				SourceDir:         ext.SourceDir,
				Target:            first.Name,
				OutputDir:         first.OutputDir,
				Conflict:          target.Name,
				ConflictOutputDir: target.OutputDir,
			}
		}
		group.targets = append(group.targets, target)
	}

	return groups, nil
}

func validateExtensions(extensions []Extension) error {
	if len(extensions) == 0 {
		return ErrNoExtensions
	}
	seen := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if _, ok := seen[ext.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, ext.Name)
		}
		seen[ext.Name] = struct{}{}
	}
	return nil
}
