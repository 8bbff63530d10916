package internal

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stormpy/stormext"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [extension...]",
		Short: "Build the extension modules",
		Long: `Build configures and compiles the extension modules declared in the manifest.

With no arguments every declared extension is built. Naming extensions
restricts the run to them.`,
		RunE: runBuild,
	}

	flags := cmd.Flags()
	flags.BoolP("debug", "g", false, "build with the Debug configuration instead of Release")
	flags.String("storm-dir", "", "path to the storm root (binary) location")
	addLayoutFlags(flags)
	flags.IntP("parallel", "j", stormext.DefaultParallel, "number of parallel build jobs")
	flags.String("python", "", "Python executable handed to CMake (default: python3 on PATH)")
	flags.String("version-info", "", "version embedded into the modules (default: manifest version)")
	return cmd
}

// addLayoutFlags registers the manifest and build directory flags shared by
// build and list.
func addLayoutFlags(flags *pflag.FlagSet) {
	flags.String("manifest", "stormpy.toml", "extension manifest")
	flags.String("build-temp", "build/temp", "directory for CMake work directories")
	flags.String("build-lib", "build/lib", "directory the compiled modules are placed under")
}

func runBuild(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(v, cmd.ErrOrStderr())

	extensions, opts, err := loadBuild(v, args)
	if err != nil {
		return err
	}

	orch := stormext.NewOrchestrator(newToolchain(v, cmd.ErrOrStderr()), logger)
	report, err := orch.Run(cmd.Context(), extensions, opts)
	if report != nil {
		printReport(cmd.OutOrStdout(), report)
	}
	return err
}

// loadBuild reads the manifest and turns the resolved settings into
// orchestrator options.
func loadBuild(v *viper.Viper, args []string) ([]stormext.Extension, stormext.Options, error) {
	declared, version, err := stormext.LoadManifest(v.GetString("manifest"))
	if err != nil {
		return nil, stormext.Options{}, err
	}

	extensions, err := stormext.SelectExtensions(declared, args)
	if err != nil {
		return nil, stormext.Options{}, err
	}

	if override := v.GetString("version-info"); override != "" {
		version = override
	}

	opts := stormext.Options{
		Debug:         v.GetBool("debug"),
		DependencyDir: v.GetString("storm-dir"),
		Version:       version,
		BuildTemp:     v.GetString("build-temp"),
		LibDir:        v.GetString("build-lib"),
		Interpreter:   v.GetString("python"),
		Parallel:      v.GetInt("parallel"),
	}
	return extensions, opts, nil
}

func newToolchain(v *viper.Viper, stream io.Writer) *stormext.CmakeToolchain {
	runner := &stormext.ExecRunner{}
	if v.GetBool("verbose") {
		runner.Stream = stream
	}
	return stormext.NewCmakeToolchain(runner)
}

func printReport(w io.Writer, report *stormext.Report) {
	fmt.Fprintf(w, "%s build:\n", report.BuildType)
	for _, target := range report.Targets {
		fmt.Fprintf(w, "  %-24s %s\n", target.Name, targetStatus(target))
		for _, module := range target.Extensions {
			fmt.Fprintf(w, "    %s\n", module)
		}
	}
}

func targetStatus(target *stormext.TargetResult) string {
	switch {
	case target.Success:
		return "ok"
	case !target.Attempted:
		return "not built"
	default:
		return "FAILED"
	}
}
